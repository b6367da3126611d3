// Package notification hands settled schedule decisions to the fan-out
// queue. Delivery to clients happens in the worker.
package notification

import (
	"context"
	"errors"
	"fmt"

	"propcare/models"
	"propcare/services/tasks"
	"propcare/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type Publisher interface {
	PublishDecision(ctx context.Context, d models.ScheduleDecision) error
}

// EventChannel is the pub/sub channel one user in one org listens on.
func EventChannel(orgID, userID string) string {
	return fmt.Sprintf("events:%s:%s", orgID, userID)
}

// Enqueuer is the subset of *asynq.Client the publisher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type AsynqPublisher struct {
	client Enqueuer
}

func NewAsynqPublisher(client Enqueuer) *AsynqPublisher {
	return &AsynqPublisher{client: client}
}

func (p *AsynqPublisher) PublishDecision(ctx context.Context, d models.ScheduleDecision) error {
	task, opts, err := tasks.NewDecisionTask(d)
	if err != nil {
		return fmt.Errorf("build decision task: %w", err)
	}
	info, err := p.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		utils.GetLogger().Debug("Decision already queued", zap.String("decisionId", d.ID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue decision %s: %w", d.ID, err)
	}
	utils.GetLogger().Info("Decision queued for fan-out",
		zap.String("decisionId", d.ID),
		zap.String("caseId", d.CaseID),
		zap.String("taskId", info.ID),
		zap.Int("recipients", len(d.Recipients)))
	return nil
}

// NopPublisher drops decisions. Used when no queue is configured.
type NopPublisher struct{}

func (NopPublisher) PublishDecision(context.Context, models.ScheduleDecision) error { return nil }
