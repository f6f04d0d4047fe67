// Package domain contains calendar appointment types.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Appointment statuses.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment is one calendar entry, optionally linked to a prospect.
// Date and Time are stored as the user entered them (YYYY-MM-DD and
// HH:MM) rather than as a single instant, since the calendar renders
// them in the setter's own timezone.
type Appointment struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	UserID          snowflake.ID  `gorm:"column:user_id;not null;index" json:"user_id"`
	ProspectID      *snowflake.ID `gorm:"column:prospect_id" json:"prospect_id"`
	Title           string        `gorm:"type:text;not null" json:"title"`
	Description     string        `gorm:"type:text" json:"description"`
	Date            string        `gorm:"type:text;not null" json:"date"`
	Time            string        `gorm:"type:text;not null" json:"time"`
	DurationMinutes int           `gorm:"column:duration_minutes;not null;default:30" json:"duration_minutes"`
	Status          string        `gorm:"type:text;not null;default:'scheduled'" json:"status"`
	AgencyID        *snowflake.ID `gorm:"column:agency_id;index" json:"agency_id"`
	CreatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Appointment) TableName() string { return "appointments" }

func ValidStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ValidDate checks the YYYY-MM-DD calendar form.
func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// ValidTime checks the HH:MM calendar form.
func ValidTime(t string) bool {
	_, err := time.Parse("15:04", t)
	return err == nil
}

var (
	ErrNotFound        = errors.New("appointment_not_found")
	ErrInvalidTitle    = errors.New("invalid_title")
	ErrInvalidDate     = errors.New("invalid_date")
	ErrInvalidTime     = errors.New("invalid_time")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidDuration = errors.New("invalid_duration")
)
