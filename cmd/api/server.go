package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"novinky-backend/pkg/container"
)

// Serve runs both HTTP surfaces plus the in-process job worker and
// scheduler. The publish/admin surface and the anonymous read surface
// listen on separate ports but share all state.
func Serve() {
	appContainer, err := container.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer appContainer.Cleanup()

	appSrv := &http.Server{
		Addr:           fmt.Sprintf(":%s", appContainer.Config.App.AppPort),
		Handler:        SetupAppRouter(appContainer),
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	webSrv := &http.Server{
		Addr:         fmt.Sprintf(":%s", appContainer.Config.App.WebPort),
		Handler:      SetupWebRouter(appContainer),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Publish surface listening on %s", appSrv.Addr)
		if err := appSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start publish server: %v", err)
		}
	}()

	go func() {
		log.Printf("Read surface listening on %s", webSrv.Addr)
		if err := webSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start web server: %v", err)
		}
	}()

	go func() {
		if err := appContainer.JobServer.Start(); err != nil {
			log.Fatalf("Failed to start job worker: %v", err)
		}
	}()

	if err := appContainer.Scheduler.RegisterPageJobs(); err != nil {
		log.Fatalf("Failed to register scheduled jobs: %v", err)
	}
	go func() {
		if err := appContainer.Scheduler.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	}()

	// first weather fetch happens at startup so pages rendered before
	// the first hourly tick already carry a value
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = appContainer.Header.UpdateWeather(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	appContainer.Scheduler.Shutdown()
	appContainer.JobServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := appSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Publish server forced to shutdown: %v", err)
	}
	if err := webSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Web server forced to shutdown: %v", err)
	}

	log.Println("Servers exited gracefully")
}
