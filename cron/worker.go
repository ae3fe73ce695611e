package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/Azarenkov/aitu-web-app/config"
	"github.com/Azarenkov/aitu-web-app/services/producer"
	"github.com/Azarenkov/aitu-web-app/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeProducerPoll = "producer:poll"

// InitPollWorker runs the polling loop in background: a scheduler enqueues a
// poll task at the configured interval and a single-concurrency server
// drives one batch per task. Concurrency must stay at 1 — the snapshot
// read-then-overwrite cycle assumes a single active poller.
func InitPollWorker(producerSvc producer.ProducerService) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeProducerPoll, handlePollTask(producerSvc))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	interval := fmt.Sprintf("@every %ds", config.AppConfig.PollIntervalSeconds)
	if _, err := scheduler.Register(interval, asynq.NewTask(TypeProducerPoll, nil)); err != nil {
		logger.Fatal("failed to register poll task", zap.Error(err))
	}

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Fatal("poll scheduler stopped", zap.Error(err))
		}
	}()

	// Start async worker with retry logic
	go func() {
		logger.Info("starting poll worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("failed to start poll worker",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("max poll worker retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handlePollTask threads the pagination offset across ticks. The offset is
// plain state because the server runs this handler with concurrency 1.
func handlePollTask(producerSvc producer.ProducerService) asynq.HandlerFunc {
	logger := utils.GetLogger()
	var offset int64

	return func(ctx context.Context, task *asynq.Task) error {
		next, err := producerSvc.ProcessNext(ctx, config.AppConfig.BatchLimit, offset)
		if err != nil {
			logger.Error("poll batch failed", zap.Int64("offset", offset), zap.Error(err))
			return err
		}
		if next == 0 && offset != 0 {
			logger.Info("poll pass complete, restarting from the first account")
		}
		offset = next
		return nil
	}
}

func monitorRedisConnection() {
	logger := utils.GetLogger()

	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
