package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	agencydomain "github.com/setterhq/setter-crm/internal/agency/domain"
)

type Repository interface {
	Create(ctx context.Context, appointment *Appointment) error
	Get(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) (*Appointment, error)
	List(ctx context.Context, scope agencydomain.Scope) ([]Appointment, error)
	ListByDateRange(ctx context.Context, scope agencydomain.Scope, from, to string) ([]Appointment, error)
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, id snowflake.ID) error
}
