package queue

import (
	"context"

	"github.com/hibiken/asynq"

	"novinky-backend/internal/domains/pages"
	"novinky-backend/internal/domains/pages/job"
	"novinky-backend/pkg/logger"
)

// Server runs the in-process asynq worker that executes the scheduled
// page jobs.
type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewServer(redisAddress, redisPassword string, redisDB int, index *pages.CacheIndex, header *pages.Header) *Server {
	mux := asynq.NewServeMux()
	mux.Handle(job.TypeRefreshPages, job.NewRefreshPagesHandler(index, header))
	mux.Handle(job.TypeUpdateWeather, job.NewUpdateWeatherHandler(header))

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddress, Password: redisPassword, DB: redisDB},
		asynq.Config{
			Concurrency: 2,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task failed: "+task.Type(), err)
			}),
		},
	)

	return &Server{server: srv, mux: mux}
}

func (s *Server) Start() error {
	return s.server.Run(s.mux)
}

func (s *Server) Shutdown() {
	s.server.Shutdown()
}
