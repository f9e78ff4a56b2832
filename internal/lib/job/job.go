// Package job runs background work on Asynq: resolution e-mails and the
// periodic session purge.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/mipp-portal/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// PurgeSchedule is the cron spec for the session purge.
const PurgeSchedule = "@every 6h"

// Enqueuer is the producer side used by services.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type JobService struct {
	Client    *asynq.Client
	server    *asynq.Server
	scheduler *asynq.Scheduler
	scheduled bool
	logger    *zerolog.Logger

	mailer      ResolutionMailer
	purger      SessionPurger
	institution string
	purgeAfter  time.Duration
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: &asynqLogger{logger: logger},
		},
	)

	loc, err := time.LoadLocation(cfg.Portal.TimeZone)
	if err != nil {
		loc = time.UTC
	}

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: loc,
		Logger:   &asynqLogger{logger: logger},
	})

	return &JobService{
		Client:    client,
		server:    server,
		scheduler: scheduler,
		logger:    logger,
	}
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskResolutionEmail, j.handleResolutionEmailTask)
	mux.HandleFunc(TaskPurgeSessions, j.handlePurgeSessionsTask)
	return mux
}

// Start launches the workers and the scheduler. Neither call blocks.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(j.mux()); err != nil {
		return err
	}

	if j.purger != nil {
		if _, err := j.scheduler.Register(PurgeSchedule, NewPurgeSessionsTask()); err != nil {
			return err
		}
		if err := j.scheduler.Start(); err != nil {
			return err
		}
		j.scheduled = true
	}

	return nil
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	if j.scheduled {
		j.scheduler.Shutdown()
	}
	j.server.Shutdown()
	j.Client.Close()
}

// asynqLogger routes asynq's internal logging through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }
