package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/setterhq/setter-crm/internal/agency/domain"
	profiledomain "github.com/setterhq/setter-crm/internal/profile/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type repository struct {
	db       *gorm.DB
	profiles profiledomain.Repository
	log      *zap.Logger
}

func NewRepository(db *gorm.DB, profiles profiledomain.Repository, log *zap.Logger) domain.Repository {
	return &repository{db: db, profiles: profiles, log: log.Named("agency.repository")}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx, profiles: r.profiles, log: r.log}
}

func (r *repository) CreateAgency(ctx context.Context, agency *domain.Agency) error {
	return r.db.WithContext(ctx).Create(agency).Error
}

func (r *repository) GetAgency(ctx context.Context, id snowflake.ID) (*domain.Agency, error) {
	var agency domain.Agency
	err := r.db.WithContext(ctx).First(&agency, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

func (r *repository) GetAgencyOwnedBy(ctx context.Context, ownerID snowflake.ID) (*domain.Agency, error) {
	var agency domain.Agency
	err := r.db.WithContext(ctx).First(&agency, "owner_id = ?", ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

func (r *repository) UpdateAgency(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&domain.Agency{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repository) AddMember(ctx context.Context, member *domain.AgencyMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *repository) GetMembership(ctx context.Context, userID snowflake.ID) (*domain.AgencyMember, error) {
	var member domain.AgencyMember
	err := r.db.WithContext(ctx).First(&member, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *repository) ListMembers(ctx context.Context, agencyID snowflake.ID) ([]domain.Member, error) {
	var rows []domain.AgencyMember
	err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	members := make([]domain.Member, 0, len(rows))
	ids := make([]snowflake.ID, 0, len(rows))
	for _, row := range rows {
		members = append(members, domain.Member{
			UserID:   row.UserID,
			Role:     row.Role,
			JoinedAt: row.CreatedAt,
		})
		ids = append(ids, row.UserID)
	}

	profiles, err := r.profiles.GetByIDs(ctx, ids)
	if err != nil {
		// Roster still works without display names.
		r.log.Warn("member profile enrichment failed", zap.Error(err))
		return members, nil
	}
	byID := make(map[snowflake.ID]profiledomain.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.UserID] = p
	}
	for i := range members {
		if p, ok := byID[members[i].UserID]; ok {
			members[i].FullName = p.FullName
			members[i].JobTitle = p.JobTitle
		}
	}
	return members, nil
}

func (r *repository) RemoveMember(ctx context.Context, agencyID, userID snowflake.ID) error {
	return r.db.WithContext(ctx).
		Where("agency_id = ? AND user_id = ?", agencyID, userID).
		Delete(&domain.AgencyMember{}).Error
}

func (r *repository) CreateInvitation(ctx context.Context, invite *domain.AgencyInvitation) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *repository) GetInvitation(ctx context.Context, id snowflake.ID) (*domain.AgencyInvitation, error) {
	var invite domain.AgencyInvitation
	err := r.db.WithContext(ctx).First(&invite, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *repository) ListPendingInvitationsByEmail(ctx context.Context, email string) ([]domain.Invitation, error) {
	var rows []domain.AgencyInvitation
	err := r.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, domain.InviteStatusPending).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	invites := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		invite := domain.Invitation{
			ID:        row.ID,
			AgencyID:  row.AgencyID,
			Email:     row.Email,
			Role:      row.Role,
			Status:    row.Status,
			CreatedAt: row.CreatedAt,
		}
		if agency, err := r.GetAgency(ctx, row.AgencyID); err == nil && agency != nil {
			invite.AgencyName = agency.Name
		}
		invites = append(invites, invite)
	}
	return invites, nil
}

func (r *repository) ListInvitationsByAgency(ctx context.Context, agencyID snowflake.ID) ([]domain.AgencyInvitation, error) {
	var rows []domain.AgencyInvitation
	err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateInvitationStatus(ctx context.Context, id snowflake.ID, status string) error {
	return r.db.WithContext(ctx).
		Model(&domain.AgencyInvitation{}).
		Where("id = ?", id).
		Update("status", status).Error
}
