// Package domain contains agency (team) types, membership roles and the
// access scope resolved per request.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Membership roles, lowest to highest privilege.
const (
	RoleSetter = "setter"
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
)

// Invitation statuses. The machine is one-way: accepting flips pending
// to accepted, ignoring an invite writes nothing.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
)

// Agency is a team of setters sharing one prospect pool.
type Agency struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Slug      string       `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	LogoURL   string       `gorm:"column:logo_url;type:text" json:"logo_url"`
	OwnerID   snowflake.ID `gorm:"column:owner_id;not null;index" json:"owner_id"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Agency) TableName() string { return "agencies" }

// AgencyMember links a user to an agency with a role.
type AgencyMember struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	AgencyID  snowflake.ID `gorm:"column:agency_id;not null;uniqueIndex:idx_agency_member" json:"agency_id"`
	UserID    snowflake.ID `gorm:"column:user_id;not null;uniqueIndex:idx_agency_member" json:"user_id"`
	Role      string       `gorm:"type:text;not null;default:'setter'" json:"role"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (AgencyMember) TableName() string { return "agency_members" }

// Member is a membership row enriched with profile display data for
// roster listings. Profile fields degrade to zero values when the
// profile lookup fails.
type Member struct {
	UserID   snowflake.ID `json:"user_id"`
	Role     string       `json:"role"`
	FullName string       `json:"full_name"`
	JobTitle string       `json:"job_title"`
	JoinedAt time.Time    `json:"joined_at"`
}

// AgencyInvitation is a pending email invite into an agency.
type AgencyInvitation struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	AgencyID  snowflake.ID `gorm:"column:agency_id;not null;index" json:"agency_id"`
	Email     string       `gorm:"type:text;not null;index" json:"email"`
	Role      string       `gorm:"type:text;not null;default:'setter'" json:"role"`
	InvitedBy snowflake.ID `gorm:"column:invited_by;not null" json:"invited_by"`
	Status    string       `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (AgencyInvitation) TableName() string { return "agency_invitations" }

// Invitation is an invite enriched with the agency name for listings.
type Invitation struct {
	ID         snowflake.ID `json:"id"`
	AgencyID   snowflake.ID `json:"agency_id"`
	AgencyName string       `json:"agency_name"`
	Email      string       `json:"email"`
	Role       string       `json:"role"`
	Status     string       `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleSetter, RoleAdmin, RoleOwner:
		return true
	}
	return false
}
