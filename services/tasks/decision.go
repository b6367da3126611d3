package tasks

import (
	"encoding/json"
	"fmt"

	"propcare/models"

	"github.com/hibiken/asynq"
)

const TypeDecisionFanout = "decision:fanout"

const fanoutMaxRetry = 5

func NewDecisionTask(d models.ScheduleDecision) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeDecisionFanout, b)
	opts := []asynq.Option{
		asynq.MaxRetry(fanoutMaxRetry),
		asynq.Queue("default"),
	}
	if d.ID != "" {
		// One delivery per decision even if the producer retries.
		opts = append(opts, asynq.TaskID("decision:"+d.ID))
	}
	return task, opts, nil
}

func ParseDecisionTask(t *asynq.Task) (models.ScheduleDecision, error) {
	var d models.ScheduleDecision
	if t.Type() != TypeDecisionFanout {
		return d, fmt.Errorf("unexpected task type %q", t.Type())
	}
	if err := json.Unmarshal(t.Payload(), &d); err != nil {
		return d, fmt.Errorf("invalid decision payload: %w", err)
	}
	return d, nil
}
