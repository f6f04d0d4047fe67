package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Get(ctx context.Context, userID snowflake.ID) (*Profile, error)
	UpdateProfile(ctx context.Context, userID snowflake.ID, req UpdateProfileRequest) error
	UpdateGoals(ctx context.Context, userID snowflake.ID, req UpdateGoalsRequest) error
}

// UpdateProfileRequest carries partial display-field edits; nil means keep.
type UpdateProfileRequest struct {
	FullName *string
	JobTitle *string
}

// UpdateGoalsRequest carries partial goal edits; nil means keep.
type UpdateGoalsRequest struct {
	MonthlyCommission *float64
	DailyCalls        *int
}

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrNotFound    = errors.New("profile_not_found")
	ErrInvalidGoal = errors.New("invalid_goal")
	ErrInvalidName = errors.New("invalid_name")
)
