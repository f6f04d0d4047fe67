package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	agencydomain "github.com/setterhq/setter-crm/internal/agency/domain"
)

type Service interface {
	Create(ctx context.Context, scope agencydomain.Scope, req CreateRequest) (*Appointment, error)
	Get(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) (*Appointment, error)
	List(ctx context.Context, scope agencydomain.Scope, from, to string) ([]Appointment, error)
	Update(ctx context.Context, scope agencydomain.Scope, id snowflake.ID, req UpdateRequest) (*Appointment, error)
	SetStatus(ctx context.Context, scope agencydomain.Scope, id snowflake.ID, status string) (*Appointment, error)
	Delete(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) error
}

type CreateRequest struct {
	Title           string
	Description     string
	Date            string
	Time            string
	DurationMinutes *int
	ProspectID      *snowflake.ID
}

// UpdateRequest carries partial edits; nil means keep.
type UpdateRequest struct {
	Title           *string
	Description     *string
	Date            *string
	Time            *string
	DurationMinutes *int
	ProspectID      *snowflake.ID
}
