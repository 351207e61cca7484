package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// SendPasswordReset emails a password-reset link to the given address.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(m.Host) == "" {
		return fmt.Errorf("smtp host not configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Password Reset Request\r\n")
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString("<p>Hello,</p>")
	b.WriteString("<p>You requested to reset your password. Click the link below to set a new one:</p>")
	fmt.Fprintf(&b, `<p><a href="%s">%s</a></p>`, resetLink, resetLink)
	b.WriteString("<p>This link will expire in 1 hour.</p>")
	b.WriteString("<p>If you didn't request this, please ignore this email.</p>")

	addr := m.Host + ":" + m.Port
	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	return smtp.SendMail(addr, auth, m.User, []string{to}, []byte(b.String()))
}

var _ Mailer = (*SMTPMailer)(nil)
