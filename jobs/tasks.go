package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTrendWarmup is the task type for pre-populating trend series caches.
	TaskTrendWarmup = "trend:warmup"
)

// TrendWarmupPayload selects which granularities to warm. Empty means all.
type TrendWarmupPayload struct {
	Granularities []string `json:"granularities,omitempty"`
}

// NewTrendWarmupTask constructs an Asynq task.
func NewTrendWarmupTask(payload TrendWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTrendWarmup, data), nil
}
