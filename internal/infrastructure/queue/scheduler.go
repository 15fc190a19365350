package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"novinky-backend/internal/domains/pages/job"
	"novinky-backend/pkg/logger"
)

// Scheduler enqueues the recurring page jobs. Cron expressions are
// evaluated on the Prague clock so the midnight rollover matches the
// date shown in the header.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress, redisPassword string, redisDB int) *Scheduler {
	location, err := time.LoadLocation("Europe/Prague")
	if err != nil {
		location = time.UTC
	}

	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress, Password: redisPassword, DB: redisDB},
		&asynq.SchedulerOpts{
			Location: location,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterPageJobs wires the nightly refresh and the hourly weather
// update.
func (s *Scheduler) RegisterPageJobs() error {
	if err := s.registerRefreshPagesJob(); err != nil {
		return err
	}
	return s.registerUpdateWeatherJob()
}

// midnight: the header date changes, so every aggregate page goes stale
func (s *Scheduler) registerRefreshPagesJob() error {
	task := asynq.NewTask(job.TypeRefreshPages, nil)

	_, err := s.scheduler.Register(
		"0 0 * * *",
		task,
		asynq.MaxRetry(1),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register RefreshPages job", err)
		return err
	}

	logger.Info("Registered RefreshPages: daily at midnight", nil)
	return nil
}

func (s *Scheduler) registerUpdateWeatherJob() error {
	task := asynq.NewTask(job.TypeUpdateWeather, nil)

	_, err := s.scheduler.Register(
		"0 * * * *",
		task,
		asynq.MaxRetry(2),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register UpdateWeather job", err)
		return err
	}

	logger.Info("Registered UpdateWeather: hourly", nil)
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
