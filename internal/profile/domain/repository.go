package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	Get(ctx context.Context, userID snowflake.ID) (*Profile, error)
	GetByIDs(ctx context.Context, userIDs []snowflake.ID) ([]Profile, error)
	UpdateFields(ctx context.Context, userID snowflake.ID, fields map[string]any) error
}
