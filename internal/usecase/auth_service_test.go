package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"journal_server/internal/domain"
)

type stubVerifier struct {
	userID string
	ok     bool
	err    error
}

func (v *stubVerifier) Verify(_ context.Context, _, _ string) (string, bool, error) {
	return v.userID, v.ok, v.err
}

func newAuthFixture(t *testing.T, verifier CredentialVerifier, ttl time.Duration) (*AuthService, *fakeUserRepo, *fakeSessionRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	service, err := NewAuthService(userRepo, sessionRepo, verifier, "trader", "hunter2", ttl)
	require.NoError(t, err)
	return service, userRepo, sessionRepo
}

func TestLoginStaticCredentials(t *testing.T) {
	service, userRepo, _ := newAuthFixture(t, nil, time.Hour)
	ctx := context.Background()

	session, err := service.Login(ctx, "trader", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.Equal(t, "trader", session.UserID)

	user, err := userRepo.GetUser(ctx, "trader")
	require.NoError(t, err)
	require.Equal(t, "trader@journal.local", user.Email)

	_, err = service.Login(ctx, "trader", "wrong")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = service.Login(ctx, "", "")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginDelegatesToVerifier(t *testing.T) {
	verifier := &stubVerifier{userID: "@trader:example.org", ok: true}
	service, userRepo, _ := newAuthFixture(t, verifier, time.Hour)
	ctx := context.Background()

	session, err := service.Login(ctx, "trader", "whatever")
	require.NoError(t, err)
	require.Equal(t, "@trader:example.org", session.UserID)

	// Matrix-style ids collapse to a plain local part for the email.
	user, err := userRepo.GetUser(ctx, "@trader:example.org")
	require.NoError(t, err)
	require.Equal(t, "trader@journal.local", user.Email)

	verifier.ok = false
	_, err = service.Login(ctx, "trader", "whatever")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolveSession(t *testing.T) {
	service, _, _ := newAuthFixture(t, nil, time.Hour)
	ctx := context.Background()

	session, err := service.Login(ctx, "trader", "hunter2")
	require.NoError(t, err)

	userID, err := service.Resolve(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, "trader", userID)

	_, err = service.Resolve(ctx, "unknown-token")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = service.Resolve(ctx, "")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolveExpiredSession(t *testing.T) {
	service, _, sessionRepo := newAuthFixture(t, nil, time.Hour)
	ctx := context.Background()

	expired := domain.Session{
		Token:     "stale",
		UserID:    "trader",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	require.NoError(t, sessionRepo.Create(ctx, expired))

	_, err := service.Resolve(ctx, "stale")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	// Removed on sight.
	_, err = sessionRepo.GetByToken(ctx, "stale")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	service, _, _ := newAuthFixture(t, nil, time.Hour)
	ctx := context.Background()

	session, err := service.Login(ctx, "trader", "hunter2")
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, session.Token))

	_, err = service.Resolve(ctx, session.Token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSweepExpired(t *testing.T) {
	service, _, sessionRepo := newAuthFixture(t, nil, time.Hour)
	ctx := context.Background()

	require.NoError(t, sessionRepo.Create(ctx, domain.Session{
		Token:     "stale",
		UserID:    "trader",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}))
	live, err := service.Login(ctx, "trader", "hunter2")
	require.NoError(t, err)

	removed, err := service.SweepExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	_, err = service.Resolve(ctx, live.Token)
	require.NoError(t, err)
}
