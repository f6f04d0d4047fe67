package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/setterhq/setter-crm/internal/auth/domain"
	"github.com/setterhq/setter-crm/internal/auth/password"
	"github.com/setterhq/setter-crm/internal/clock"
	profiledomain "github.com/setterhq/setter-crm/internal/profile/domain"
	"github.com/setterhq/setter-crm/pkg/db"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const sessionTTL = 30 * 24 * time.Hour

type service struct {
	node     *snowflake.Node
	users    domain.Repository
	sessions domain.SessionRepository
	profiles profiledomain.Repository
	clock    clock.Clock
	log      *zap.Logger
}

func NewService(
	node *snowflake.Node,
	users domain.Repository,
	sessions domain.SessionRepository,
	profiles profiledomain.Repository,
	clk clock.Clock,
	log *zap.Logger,
) domain.Service {
	return &service{
		node:     node,
		users:    users,
		sessions: sessions,
		profiles: profiles,
		clock:    clk,
		log:      log.Named("auth"),
	}
}

func (s *service) Signup(ctx context.Context, req domain.SignupRequest) (*domain.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidCredentials
	}
	if len(req.Password) < 8 {
		return nil, domain.ErrInvalidCredentials
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           s.node.Generate(),
		Email:        email,
		PasswordHash: &hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = "Setter"
	}
	profile := &profiledomain.Profile{
		UserID:      user.ID,
		FullName:    fullName,
		JobTitle:    "Appointment Setter",
		Goals:       datatypes.NewJSONType(profiledomain.DefaultGoals()),
		CallHistory: datatypes.NewJSONSlice([]profiledomain.MonthlyCalls{}),
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		// The account is usable without a profile row; it gets lazily
		// backfilled on first profile read.
		s.log.Warn("initial profile provisioning failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	s.log.Info("user signed up", zap.String("user_id", user.ID.String()))
	return s.issueSession(ctx, user.ID)
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !password.Verify(req.Password, *user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueSession(ctx, user.ID)
}

func (s *service) Logout(ctx context.Context, rawToken string) error {
	session, err := s.sessions.GetSessionByTokenHash(ctx, hashToken(rawToken))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.sessions.RevokeSession(ctx, session.ID)
}

func (s *service) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	if rawToken == "" {
		return nil, domain.ErrInvalidSession
	}
	session, err := s.sessions.GetSessionByTokenHash(ctx, hashToken(rawToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrInvalidSession
	}
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if s.clock.Now().After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

func (s *service) issueSession(ctx context.Context, userID snowflake.ID) (*domain.LoginResult, error) {
	rawToken := uuid.NewString()
	session := &domain.Session{
		ID:               s.node.Generate(),
		UserID:           userID,
		SessionTokenHash: hashToken(rawToken),
		ExpiresAt:        s.clock.Now().Add(sessionTTL),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return &domain.LoginResult{
		UserID:    userID,
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
