package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskResolutionEmail = "email:resolution"
	TaskPurgeSessions   = "sessions:purge"
)

// ResolutionEmailPayload tells a requester that their request was answered.
type ResolutionEmailPayload struct {
	To         string `json:"to"`
	Nombre     string `json:"nombre"`
	Tipo       string `json:"tipo"`
	Folio      int64  `json:"folio"`
	Decision   string `json:"decision"`
	Comentario string `json:"comentario,omitempty"`
	Aprobado   bool   `json:"aprobado"`
}

// NewResolutionEmailTask builds the notification task. It is retried three
// times and killed after 30 seconds.
func NewResolutionEmailTask(p ResolutionEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskResolutionEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewPurgeSessionsTask builds the periodic session cleanup task.
func NewPurgeSessionsTask() *asynq.Task {
	return asynq.NewTask(
		TaskPurgeSessions,
		nil,
		asynq.MaxRetry(1),
		asynq.Queue("low"),
		asynq.Timeout(2*time.Minute),
	)
}
