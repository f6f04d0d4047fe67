package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, ownerID snowflake.ID, req CreateAgencyRequest) (*Agency, error)
	Get(ctx context.Context, scope Scope) (*Agency, error)
	Update(ctx context.Context, scope Scope, req UpdateAgencyRequest) error

	// Resolve builds the access scope for a user. A membership row wins
	// over agency ownership when both exist.
	Resolve(ctx context.Context, userID snowflake.ID) (Scope, error)

	Members(ctx context.Context, scope Scope) ([]Member, error)
	RemoveMember(ctx context.Context, scope Scope, userID snowflake.ID) error

	InviteMember(ctx context.Context, scope Scope, req InviteRequest) (*AgencyInvitation, error)
	PendingInvitations(ctx context.Context, email string) ([]Invitation, error)
	AgencyInvitations(ctx context.Context, scope Scope) ([]AgencyInvitation, error)
	AcceptInvitation(ctx context.Context, userID snowflake.ID, email string, inviteID snowflake.ID) error
}

type CreateAgencyRequest struct {
	Name    string
	LogoURL string
}

type UpdateAgencyRequest struct {
	Name    *string
	LogoURL *string
}

type InviteRequest struct {
	Email string
	Role  string
}

var (
	ErrAgencyNotFound    = errors.New("agency_not_found")
	ErrAlreadyInAgency   = errors.New("already_in_agency")
	ErrNotAgencyMember   = errors.New("not_agency_member")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidRole       = errors.New("invalid_role")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidEmail      = errors.New("invalid_email")
	ErrInviteNotFound    = errors.New("invite_not_found")
	ErrInviteNotPending  = errors.New("invite_not_pending")
	ErrInviteWrongEmail  = errors.New("invite_wrong_email")
	ErrCannotRemoveOwner = errors.New("cannot_remove_owner")
)
