package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateAgency(ctx context.Context, agency *Agency) error
	GetAgency(ctx context.Context, id snowflake.ID) (*Agency, error)
	GetAgencyOwnedBy(ctx context.Context, ownerID snowflake.ID) (*Agency, error)
	UpdateAgency(ctx context.Context, id snowflake.ID, fields map[string]any) error

	AddMember(ctx context.Context, member *AgencyMember) error
	GetMembership(ctx context.Context, userID snowflake.ID) (*AgencyMember, error)
	ListMembers(ctx context.Context, agencyID snowflake.ID) ([]Member, error)
	RemoveMember(ctx context.Context, agencyID, userID snowflake.ID) error

	CreateInvitation(ctx context.Context, invite *AgencyInvitation) error
	GetInvitation(ctx context.Context, id snowflake.ID) (*AgencyInvitation, error)
	ListPendingInvitationsByEmail(ctx context.Context, email string) ([]Invitation, error)
	ListInvitationsByAgency(ctx context.Context, agencyID snowflake.ID) ([]AgencyInvitation, error)
	UpdateInvitationStatus(ctx context.Context, id snowflake.ID, status string) error
}
