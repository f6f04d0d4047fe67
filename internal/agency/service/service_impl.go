package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/setterhq/setter-crm/internal/agency/domain"
	"github.com/setterhq/setter-crm/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	node *snowflake.Node
	db   *gorm.DB
	repo domain.Repository
	log  *zap.Logger
}

func NewService(node *snowflake.Node, gdb *gorm.DB, repo domain.Repository, log *zap.Logger) domain.Service {
	return &service{
		node: node,
		db:   gdb,
		repo: repo,
		log:  log.Named("agency"),
	}
}

func (s *service) Create(ctx context.Context, ownerID snowflake.ID, req domain.CreateAgencyRequest) (*domain.Agency, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	existing, err := s.repo.GetMembership(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyInAgency
	}

	agency := &domain.Agency{
		ID:      s.node.Generate(),
		Name:    name,
		Slug:    fmt.Sprintf("%s-%s", slug.Make(name), s.node.Generate().Base36()),
		LogoURL: strings.TrimSpace(req.LogoURL),
		OwnerID: ownerID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateAgency(ctx, agency); err != nil {
			return err
		}
		return repo.AddMember(ctx, &domain.AgencyMember{
			ID:       s.node.Generate(),
			AgencyID: agency.ID,
			UserID:   ownerID,
			Role:     domain.RoleOwner,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("agency created",
		zap.String("agency_id", agency.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return agency, nil
}

func (s *service) Get(ctx context.Context, scope domain.Scope) (*domain.Agency, error) {
	if !scope.HasAgency() {
		return nil, domain.ErrNotAgencyMember
	}
	return scope.Agency, nil
}

func (s *service) Update(ctx context.Context, scope domain.Scope, req domain.UpdateAgencyRequest) error {
	if !scope.HasAgency() {
		return domain.ErrNotAgencyMember
	}
	if !scope.IsAdmin() {
		return domain.ErrForbidden
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.LogoURL != nil {
		fields["logo_url"] = strings.TrimSpace(*req.LogoURL)
	}
	return s.repo.UpdateAgency(ctx, scope.Agency.ID, fields)
}

func (s *service) Resolve(ctx context.Context, userID snowflake.ID) (domain.Scope, error) {
	scope := domain.Scope{UserID: userID}

	member, err := s.repo.GetMembership(ctx, userID)
	if err != nil {
		return scope, err
	}
	if member != nil {
		agency, err := s.repo.GetAgency(ctx, member.AgencyID)
		if err != nil {
			return scope, err
		}
		if agency != nil {
			scope.Agency = agency
			scope.Role = member.Role
			return scope, nil
		}
	}

	// Owners without a membership row (legacy data) still resolve to
	// their agency.
	owned, err := s.repo.GetAgencyOwnedBy(ctx, userID)
	if err != nil {
		return scope, err
	}
	if owned != nil {
		scope.Agency = owned
		scope.Role = domain.RoleOwner
	}
	return scope, nil
}

func (s *service) Members(ctx context.Context, scope domain.Scope) ([]domain.Member, error) {
	if !scope.HasAgency() {
		return nil, domain.ErrNotAgencyMember
	}
	return s.repo.ListMembers(ctx, scope.Agency.ID)
}

func (s *service) RemoveMember(ctx context.Context, scope domain.Scope, userID snowflake.ID) error {
	if !scope.HasAgency() {
		return domain.ErrNotAgencyMember
	}
	if !scope.IsAdmin() && scope.UserID != userID {
		return domain.ErrForbidden
	}
	if userID == scope.Agency.OwnerID {
		return domain.ErrCannotRemoveOwner
	}
	return s.repo.RemoveMember(ctx, scope.Agency.ID, userID)
}

func (s *service) InviteMember(ctx context.Context, scope domain.Scope, req domain.InviteRequest) (*domain.AgencyInvitation, error) {
	if !scope.HasAgency() {
		return nil, domain.ErrNotAgencyMember
	}
	if !scope.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	role := req.Role
	if role == "" {
		role = domain.RoleSetter
	}
	if role == domain.RoleOwner || !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	invite := &domain.AgencyInvitation{
		ID:        s.node.Generate(),
		AgencyID:  scope.Agency.ID,
		Email:     email,
		Role:      role,
		InvitedBy: scope.UserID,
		Status:    domain.InviteStatusPending,
	}
	if err := s.repo.CreateInvitation(ctx, invite); err != nil {
		return nil, err
	}
	return invite, nil
}

func (s *service) PendingInvitations(ctx context.Context, email string) ([]domain.Invitation, error) {
	return s.repo.ListPendingInvitationsByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *service) AgencyInvitations(ctx context.Context, scope domain.Scope) ([]domain.AgencyInvitation, error) {
	if !scope.HasAgency() {
		return nil, domain.ErrNotAgencyMember
	}
	if !scope.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListInvitationsByAgency(ctx, scope.Agency.ID)
}

func (s *service) AcceptInvitation(ctx context.Context, userID snowflake.ID, email string, inviteID snowflake.ID) error {
	invite, err := s.repo.GetInvitation(ctx, inviteID)
	if err != nil {
		return err
	}
	if invite == nil {
		return domain.ErrInviteNotFound
	}
	if !strings.EqualFold(invite.Email, strings.TrimSpace(email)) {
		return domain.ErrInviteWrongEmail
	}
	if invite.Status != domain.InviteStatusPending {
		return domain.ErrInviteNotPending
	}

	err = s.repo.AddMember(ctx, &domain.AgencyMember{
		ID:       s.node.Generate(),
		AgencyID: invite.AgencyID,
		UserID:   userID,
		Role:     invite.Role,
	})
	if err != nil && !db.IsDuplicateKeyErr(err) {
		// A duplicate member row means a retried accept; the invite
		// status flip below still applies.
		return err
	}

	return s.repo.UpdateInvitationStatus(ctx, invite.ID, domain.InviteStatusAccepted)
}
