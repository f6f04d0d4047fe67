// Package domain contains the sales pipeline types: prospects, their
// kanban status, priority, qualification flags and notes.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Prospect is one lead in the pipeline.
type Prospect struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name           string        `gorm:"type:text;not null" json:"name"`
	Platform       string        `gorm:"type:text;not null" json:"platform"`
	Handle         string        `gorm:"type:text;not null" json:"handle"`
	Status         string        `gorm:"type:text;not null;default:'new_lead'" json:"status"`
	Priority       string        `gorm:"type:text;not null;default:'medium'" json:"priority"`
	Value          *float64      `json:"value"`
	CommissionRate float64       `gorm:"column:commission_rate;not null;default:10" json:"commission_rate"`
	LastContact    *time.Time    `gorm:"column:last_contact" json:"last_contact"`
	NotesCount     int           `gorm:"column:notes_count;not null;default:0" json:"notes_count"`
	QualBudget     bool          `gorm:"column:qual_budget;not null;default:false" json:"qual_budget"`
	QualAuthority  bool          `gorm:"column:qual_authority;not null;default:false" json:"qual_authority"`
	QualNeed       bool          `gorm:"column:qual_need;not null;default:false" json:"qual_need"`
	QualTiming     bool          `gorm:"column:qual_timing;not null;default:false" json:"qual_timing"`
	IsArchived     bool          `gorm:"column:is_archived;not null;default:false" json:"is_archived"`
	UserID         snowflake.ID  `gorm:"column:user_id;not null;index" json:"user_id"`
	AgencyID       *snowflake.ID `gorm:"column:agency_id;index" json:"agency_id"`
	CreatorName    string        `gorm:"column:creator_name;type:text" json:"creator_name"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Prospect) TableName() string { return "prospects" }

// ProspectNote is one timeline note attached to a prospect.
type ProspectNote struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	ProspectID snowflake.ID  `gorm:"column:prospect_id;not null;index" json:"prospect_id"`
	UserID     snowflake.ID  `gorm:"column:user_id;not null" json:"user_id"`
	Content    string        `gorm:"type:text;not null" json:"content"`
	AgencyID   *snowflake.ID `gorm:"column:agency_id" json:"agency_id"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (ProspectNote) TableName() string { return "prospect_notes" }
