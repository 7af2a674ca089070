package worker

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"school-admissions/backend/pkg/mailer"
)

var statusLabels = map[string]string{
	"submitted":    "Submitted",
	"pending":      "Pending",
	"under_review": "Under Review",
	"approved":     "Approved",
	"rejected":     "Rejected",
}

// Processor turns notification tasks into email
type Processor struct {
	mail   mailer.Mailer
	logger *zap.Logger
}

func NewProcessor(mail mailer.Mailer, logger *zap.Logger) *Processor {
	return &Processor{mail: mail, logger: logger}
}

// HandleStatusChanged sends the status email for p
func (p *Processor) HandleStatusChanged(ctx context.Context, payload StatusChangedPayload) error {
	if payload.Email == "" {
		return fmt.Errorf("%s: empty recipient", TypeStatusChanged)
	}
	msg, err := statusMessage(payload)
	if err != nil {
		return err
	}
	if err := p.mail.Send(ctx, msg); err != nil {
		return fmt.Errorf("send status email for %s: %w", payload.ApplicationID, err)
	}
	p.logger.Info("status notification sent",
		zap.String("application_id", payload.ApplicationID),
		zap.String("status", payload.Status),
	)
	return nil
}

// ProcessTask asynq handler for TypeStatusChanged
func (p *Processor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	payload, err := decodeStatusChanged(t)
	if err != nil {
		// malformed payloads never succeed on retry
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	return p.HandleStatusChanged(ctx, payload)
}

var statusHTML = template.Must(template.New("status").Parse(
	`<p>Dear {{.Name}},</p>` +
		`<p>The status of your application <strong>{{.ApplicationID}}</strong> is now: <strong>{{.Label}}</strong>.</p>` +
		`{{if .Comment}}<p>Notes from the admissions office:<br>{{.Comment}}</p>{{end}}` +
		`<p>Regards,<br>Admissions Office</p>`,
))

func statusMessage(p StatusChangedPayload) (mailer.Message, error) {
	label, ok := statusLabels[p.Status]
	if !ok {
		label = p.Status
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "Applicant"
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Dear %s,\n\n", name)
	fmt.Fprintf(&text, "The status of your application %s is now: %s.\n", p.ApplicationID, label)
	if p.Comment != "" {
		fmt.Fprintf(&text, "\nNotes from the admissions office:\n%s\n", p.Comment)
	}
	text.WriteString("\nRegards,\nAdmissions Office\n")

	var html bytes.Buffer
	if err := statusHTML.Execute(&html, map[string]string{
		"Name":          name,
		"ApplicationID": p.ApplicationID,
		"Label":         label,
		"Comment":       p.Comment,
	}); err != nil {
		return mailer.Message{}, fmt.Errorf("render status email: %w", err)
	}

	return mailer.Message{
		ToName:  name,
		ToEmail: p.Email,
		Subject: fmt.Sprintf("Application %s: %s", p.ApplicationID, label),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
