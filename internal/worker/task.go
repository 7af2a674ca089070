// Package worker delivers application status notifications, through an
// asynq queue when Redis is available and inline otherwise.
package worker

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeStatusChanged task type of a status notification
const TypeStatusChanged = "application:status_changed"

// StatusChangedPayload body of a status notification task
type StatusChangedPayload struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
	Comment       string `json:"comment"`
}

// NewStatusChangedTask encodes p as an asynq task
func NewStatusChangedTask(p StatusChangedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", TypeStatusChanged, err)
	}
	return asynq.NewTask(TypeStatusChanged, body), nil
}

func decodeStatusChanged(t *asynq.Task) (StatusChangedPayload, error) {
	var p StatusChangedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("decode %s payload: %w", TypeStatusChanged, err)
	}
	return p, nil
}
