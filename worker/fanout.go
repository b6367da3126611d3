// Package worker runs the asynq server that forwards schedule decisions to
// connected clients.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"propcare/config"
	"propcare/models"
	"propcare/services/notification"
	"propcare/services/tasks"
	"propcare/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ChannelPublisher writes a message to a pub/sub channel.
type ChannelPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type RedisChannelPublisher struct {
	client *redis.Client
}

func NewRedisChannelPublisher(client *redis.Client) *RedisChannelPublisher {
	return &RedisChannelPublisher{client: client}
}

func (p *RedisChannelPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}

// QueueRedisOpt is the asynq connection shared by producer and worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// StartFanoutWorker runs the worker in the background and returns the server
// so the caller can shut it down.
func StartFanoutWorker(pub ChannelPublisher) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeDecisionFanout, HandleDecisionFanout(pub))

	go func() {
		logger.Info("Starting decision fan-out worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Fan-out worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Fan-out worker gave up; decisions stay queued")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleDecisionFanout publishes the decision once per recipient. A failed
// publish fails the task so asynq retries it.
func HandleDecisionFanout(pub ChannelPublisher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		d, err := tasks.ParseDecisionTask(task)
		if err != nil {
			logger.Error("Dropping malformed decision task", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		payload, err := json.Marshal(event{Type: "schedule.decision", Decision: d})
		if err != nil {
			return err
		}

		for _, ch := range channels(d) {
			if err := pub.Publish(ctx, ch, payload); err != nil {
				logger.Warn("Failed to publish decision",
					zap.String("decisionId", d.ID), zap.String("channel", ch), zap.Error(err))
				return err
			}
		}
		logger.Debug("Decision fanned out", zap.String("decisionId", d.ID), zap.Int("recipients", len(d.Recipients)))
		return nil
	}
}

type event struct {
	Type     string                  `json:"type"`
	Decision models.ScheduleDecision `json:"decision"`
}

func channels(d models.ScheduleDecision) []string {
	seen := make(map[string]struct{}, len(d.Recipients))
	out := make([]string, 0, len(d.Recipients))
	for _, r := range d.Recipients {
		if r.UserID == "" {
			continue
		}
		ch := notification.EventChannel(r.OrgID, r.UserID)
		if _, ok := seen[ch]; ok {
			continue
		}
		seen[ch] = struct{}{}
		out = append(out, ch)
	}
	return out
}
