package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// PurposeAccess marks tokens issued at signup/login.
	PurposeAccess = "access"
	// PurposeReset marks short-lived tokens embedded in password-reset links.
	PurposeReset = "password_reset"

	tokenTTL = time.Hour
)

// ErrInvalidToken is returned for malformed, forged or expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity carried by a token.
type Claims struct {
	UserID  string
	Purpose string
}

// Tokens signs and verifies HS256 JWTs with a shared secret.
type Tokens struct {
	secret []byte
}

// New builds a token signer. An empty secret is rejected at bootstrap, not here.
func New(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// SignAccess issues a login token for the user, valid for one hour.
func (t *Tokens) SignAccess(userID string) (string, error) {
	return t.sign(userID, PurposeAccess)
}

// SignReset issues a password-reset token for the user, valid for one hour.
func (t *Tokens) SignReset(userID string) (string, error) {
	return t.sign(userID, PurposeReset)
}

func (t *Tokens) sign(userID, purpose string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("user id is required")
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"typ": purpose,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token and returns its claims.
func (t *Tokens) Verify(raw string) (Claims, error) {
	token, err := jwt.Parse(raw, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	purpose, _ := mapClaims["typ"].(string)
	if purpose == "" {
		purpose = PurposeAccess
	}
	return Claims{UserID: sub, Purpose: purpose}, nil
}
