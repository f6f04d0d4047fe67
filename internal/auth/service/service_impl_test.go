package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/setterhq/setter-crm/internal/auth/domain"
	authrepo "github.com/setterhq/setter-crm/internal/auth/repository"
	"github.com/setterhq/setter-crm/internal/clock"
	profiledomain "github.com/setterhq/setter-crm/internal/profile/domain"
	profilerepo "github.com/setterhq/setter-crm/internal/profile/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (domain.Service, profiledomain.Repository, *clock.FakeClock) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&profiledomain.Profile{},
	))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	users := authrepo.NewRepository(gdb)
	sessions := authrepo.NewSessionRepository(gdb)
	profiles := profilerepo.NewRepository(gdb)
	clk := clock.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	return NewService(node, users, sessions, profiles, clk, zap.NewNop()), profiles, clk
}

func TestSignupProvisionsProfile(t *testing.T) {
	ctx := context.Background()
	svc, profiles, _ := setupAuthService(t)

	result, err := svc.Signup(ctx, domain.SignupRequest{
		Email:    "Ana@Example.com",
		Password: "secret-pass-1",
		FullName: "Ana Garcia",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.RawToken)

	profile, err := profiles.Get(ctx, result.UserID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Ana Garcia", profile.FullName)
	assert.Equal(t, "Appointment Setter", profile.JobTitle)
	assert.Equal(t, profiledomain.DefaultGoals(), profile.Goals.Data())
	assert.Equal(t, 0, profile.TotalCalls)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupAuthService(t)

	_, err := svc.Signup(ctx, domain.SignupRequest{Email: "dup@example.com", Password: "secret-pass-1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, domain.SignupRequest{Email: "DUP@example.com", Password: "secret-pass-2"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupAuthService(t)

	_, err := svc.Signup(ctx, domain.SignupRequest{Email: "not-an-email", Password: "secret-pass-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Signup(ctx, domain.SignupRequest{Email: "ok@example.com", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupAuthService(t)

	signup, err := svc.Signup(ctx, domain.SignupRequest{Email: "login@example.com", Password: "secret-pass-1"})
	require.NoError(t, err)

	login, err := svc.Login(ctx, domain.LoginRequest{Email: "login@example.com", Password: "secret-pass-1"})
	require.NoError(t, err)
	assert.Equal(t, signup.UserID, login.UserID)

	session, err := svc.Authenticate(ctx, login.RawToken)
	require.NoError(t, err)
	assert.Equal(t, login.UserID, session.UserID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupAuthService(t)

	_, err := svc.Signup(ctx, domain.SignupRequest{Email: "wrong@example.com", Password: "secret-pass-1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "wrong@example.com", Password: "bad-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "whatever-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	ctx := context.Background()
	svc, _, clk := setupAuthService(t)

	result, err := svc.Signup(ctx, domain.SignupRequest{Email: "exp@example.com", Password: "secret-pass-1"})
	require.NoError(t, err)

	clk.Advance(31 * 24 * time.Hour)
	_, err = svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupAuthService(t)

	result, err := svc.Signup(ctx, domain.SignupRequest{Email: "out@example.com", Password: "secret-pass-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.RawToken))

	_, err = svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)

	_, err = svc.Authenticate(ctx, "garbage-token")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}
