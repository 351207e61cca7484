package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JOULifestyle/Contact-Management-App/internal/mailer"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/auth"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/telemetry"
)

const bcryptCost = 10

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("email and password are required")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
)

type Service struct {
	Repo   Repo
	Tokens *auth.Tokens
	Mailer mailer.Mailer
	// ResetURLBase is the UI page that consumes reset tokens, e.g.
	// https://app.example.com/reset-password
	ResetURLBase string
}

func NewService(repo Repo, tokens *auth.Tokens, m mailer.Mailer, resetURLBase string) *Service {
	return &Service{Repo: repo, Tokens: tokens, Mailer: m, ResetURLBase: resetURLBase}
}

// Signup registers a new user and returns a login token.
func (s *Service) Signup(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return "", err
	}
	return s.Tokens.SignAccess(user.ID)
}

// Login verifies credentials and returns a login token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.Tokens.SignAccess(user.ID)
}

// ForgotPassword issues a reset token and mails the reset link.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrInvalidInput
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := s.Tokens.SignReset(user.ID)
	if err != nil {
		return err
	}

	link := strings.TrimRight(s.ResetURLBase, "/") + "/" + token
	if err := s.Mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		telemetry.Error("users.reset_mail_failed", map[string]any{"err": err.Error()})
		return err
	}
	return nil
}

// ResetPassword verifies a reset token and stores the new password hash.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}

	claims, err := s.Tokens.Verify(token)
	if err != nil || claims.Purpose != auth.PurposeReset {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, claims.UserID, string(hash))
}

// LoginWithOAuth upserts a user identified only by a verified email (Google
// sign-in) and returns a login token.
func (s *Service) LoginWithOAuth(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidInput
	}
	user, err := s.Repo.UpsertByEmail(ctx, User{ID: uuid.NewString(), Email: email})
	if err != nil {
		return "", err
	}
	return s.Tokens.SignAccess(user.ID)
}
