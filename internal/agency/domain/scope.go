package domain

import (
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Scope is the resolved access context for one authenticated request.
// Solo users (no agency) see only their own rows. Agency members see
// the shared agency pool plus their own unassigned rows.
type Scope struct {
	UserID snowflake.ID
	Agency *Agency
	Role   string
}

func (s Scope) HasAgency() bool { return s.Agency != nil }

// IsAdmin reports whether the scope can manage members and invites.
func (s Scope) IsAdmin() bool {
	return s.Role == RoleOwner || s.Role == RoleAdmin
}

// ApplyProspects narrows a prospects query to the rows this scope may see.
func (s Scope) ApplyProspects(q *gorm.DB) *gorm.DB {
	if s.HasAgency() {
		return q.Where("agency_id = ? OR (agency_id IS NULL AND user_id = ?)", s.Agency.ID, s.UserID)
	}
	return q.Where("user_id = ?", s.UserID)
}

// ApplyAppointments narrows an appointments query to the rows this scope may see.
func (s Scope) ApplyAppointments(q *gorm.DB) *gorm.DB {
	if s.HasAgency() {
		return q.Where("agency_id = ? OR (agency_id IS NULL AND user_id = ?)", s.Agency.ID, s.UserID)
	}
	return q.Where("user_id = ?", s.UserID)
}
