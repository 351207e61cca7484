package mailer

import (
	"context"

	"github.com/JOULifestyle/Contact-Management-App/internal/shared/telemetry"
)

// LogMailer logs reset links instead of sending them. Used in dev when no
// SMTP relay is configured.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	telemetry.Info("mailer.password_reset", map[string]any{
		"to":   to,
		"link": resetLink,
	})
	return nil
}

var _ Mailer = LogMailer{}
