package users

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/JOULifestyle/Contact-Management-App/internal/shared/auth"
)

type recordingMailer struct {
	to   string
	link string
	err  error
}

func (m *recordingMailer) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	m.to = to
	m.link = resetLink
	return m.err
}

func newTestService(m *recordingMailer) *Service {
	if m == nil {
		m = &recordingMailer{}
	}
	return NewService(NewMemoryRepo(), auth.New("test-secret"), m, "http://localhost:5173/reset-password")
}

func TestSignupThenLogin(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	token, err := svc.Signup(ctx, "Ada@Example.com", "hunter2")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if token == "" {
		t.Fatalf("expected signup token")
	}

	token, err = svc.Login(ctx, "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := svc.Tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify login token: %v", err)
	}
	if claims.Purpose != auth.PurposeAccess {
		t.Fatalf("expected access token, got %q", claims.Purpose)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "ada@example.com", "hunter2"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, err := svc.Signup(ctx, "ADA@example.com", "other"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "ada@example.com", "hunter2"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, err := svc.Login(ctx, "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	mail := &recordingMailer{}
	svc := newTestService(mail)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "ada@example.com", "hunter2"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if err := svc.ForgotPassword(ctx, "ada@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if mail.to != "ada@example.com" {
		t.Fatalf("expected mail to ada@example.com, got %q", mail.to)
	}
	const linkBase = "http://localhost:5173/reset-password/"
	if !strings.HasPrefix(mail.link, linkBase) {
		t.Fatalf("unexpected reset link %q", mail.link)
	}
	token := strings.TrimPrefix(mail.link, linkBase)

	if err := svc.ResetPassword(ctx, token, "new-password"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := svc.Login(ctx, "ada@example.com", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got %v", err)
	}
	if _, err := svc.Login(ctx, "ada@example.com", "new-password"); err != nil {
		t.Fatalf("Login with new password: %v", err)
	}
}

func TestResetPasswordRejectsAccessToken(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	loginToken, err := svc.Signup(ctx, "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	err = svc.ResetPassword(ctx, loginToken, "new-password")
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken for access token, got %v", err)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc := newTestService(nil)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoginWithOAuthUpserts(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	first, err := svc.LoginWithOAuth(ctx, "Ada@Example.com")
	if err != nil {
		t.Fatalf("LoginWithOAuth: %v", err)
	}
	second, err := svc.LoginWithOAuth(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("LoginWithOAuth again: %v", err)
	}

	firstClaims, err := svc.Tokens.Verify(first)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	secondClaims, err := svc.Tokens.Verify(second)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if firstClaims.UserID != secondClaims.UserID {
		t.Fatalf("expected same user on repeat OAuth login, got %q vs %q", firstClaims.UserID, secondClaims.UserID)
	}
}
