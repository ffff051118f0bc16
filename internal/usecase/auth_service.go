package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"journal_server/internal/domain"
)

// CredentialVerifier is the external identity collaborator: it checks a
// credential pair and returns the resolved user id.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (string, bool, error)
}

// AuthService resolves identities and manages bearer sessions. User rows are
// provisioned once here, at identity-resolution time; domain writes never
// upsert users as a side effect.
type AuthService struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	verifier    CredentialVerifier
	username    string
	password    string
	sessionTTL  time.Duration
}

func NewAuthService(userRepo domain.UserRepository, sessionRepo domain.SessionRepository, verifier CredentialVerifier, username, password string, sessionTTL time.Duration) (*AuthService, error) {
	if userRepo == nil {
		return nil, errors.New("user repository required")
	}
	if sessionRepo == nil {
		return nil, errors.New("session repository required")
	}
	if verifier == nil && (username == "" || password == "") {
		return nil, errors.New("static credentials required when no verifier is configured")
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		verifier:    verifier,
		username:    username,
		password:    password,
		sessionTTL:  sessionTTL,
	}, nil
}

// Login verifies the credentials, provisions the user row idempotently and
// issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if username == "" || password == "" {
		return domain.Session{}, domain.ErrUnauthorized
	}

	userID, ok, err := s.resolve(ctx, username, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("verify credentials: %w", err)
	}
	if !ok {
		return domain.Session{}, domain.ErrUnauthorized
	}

	user := domain.User{
		ID:    userID,
		Name:  username,
		Email: defaultEmail(username),
	}
	if err := s.userRepo.UpsertUser(ctx, user); err != nil {
		return domain.Session{}, fmt.Errorf("provision user: %w", err)
	}

	token, err := newToken()
	if err != nil {
		return domain.Session{}, fmt.Errorf("issue token: %w", err)
	}

	session := domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("store session: %w", err)
	}

	return session, nil
}

// Resolve returns the user id behind a bearer token. Expired sessions are
// removed on sight and reported as unauthorized.
func (s *AuthService) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthorized
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", err
	}

	if session.Expired(time.Now().UTC()) {
		_ = s.sessionRepo.Delete(ctx, token)
		return "", domain.ErrUnauthorized
	}

	return session.UserID, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrUnauthorized
	}
	return s.sessionRepo.Delete(ctx, token)
}

// SweepExpired removes sessions past their expiry.
func (s *AuthService) SweepExpired(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, time.Now().UTC())
}

func (s *AuthService) resolve(ctx context.Context, username, password string) (string, bool, error) {
	if s.verifier != nil {
		return s.verifier.Verify(ctx, username, password)
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return "", false, nil
	}
	return username, true, nil
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func defaultEmail(username string) string {
	name := strings.TrimPrefix(username, "@")
	if idx := strings.IndexRune(name, ':'); idx >= 0 {
		name = name[:idx]
	}
	return name + "@journal.local"
}
