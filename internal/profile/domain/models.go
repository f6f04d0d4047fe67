// Package domain contains persistence models for user profiles, goals and
// the per-user call counter.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Goals are the user-editable monthly targets.
type Goals struct {
	MonthlyCommission float64 `json:"monthly_commission"`
	DailyCalls        int     `json:"daily_calls"`
}

func DefaultGoals() Goals {
	return Goals{MonthlyCommission: 5000, DailyCalls: 50}
}

// MonthlyCalls is one archived call-counter total, appended at rollover.
type MonthlyCalls struct {
	Month string `json:"month"` // YYYY-MM
	Total int    `json:"total"`
}

// Profile holds display data, goals and the call counter for one user.
type Profile struct {
	UserID         snowflake.ID                      `gorm:"primaryKey;column:user_id" json:"user_id"`
	FullName       string                            `gorm:"type:text;not null;default:'Setter'" json:"full_name"`
	JobTitle       string                            `gorm:"type:text;not null;default:'Appointment Setter'" json:"job_title"`
	Goals          datatypes.JSONType[Goals]         `gorm:"type:jsonb;not null" json:"goals"`
	TotalCalls     int                               `gorm:"column:total_calls;not null;default:0" json:"total_calls"`
	LastResetMonth string                            `gorm:"column:last_reset_month;type:text;not null;default:''" json:"last_reset_month"`
	CallHistory    datatypes.JSONSlice[MonthlyCalls] `gorm:"type:jsonb;not null" json:"call_history"`
	CreatedAt      time.Time                         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time                         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "profiles" }
