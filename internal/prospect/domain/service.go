package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	agencydomain "github.com/setterhq/setter-crm/internal/agency/domain"
)

type Service interface {
	Create(ctx context.Context, scope agencydomain.Scope, req CreateRequest) (*Prospect, error)
	Get(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) (*Prospect, error)
	List(ctx context.Context, scope agencydomain.Scope) ([]Prospect, error)
	ListArchived(ctx context.Context, scope agencydomain.Scope) ([]Prospect, error)
	Update(ctx context.Context, scope agencydomain.Scope, id snowflake.ID, req UpdateRequest) (*Prospect, error)
	Delete(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) error

	SetStatus(ctx context.Context, scope agencydomain.Scope, id snowflake.ID, status string) (*Prospect, error)
	CyclePriority(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) (*Prospect, error)
	MarkContacted(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) (*Prospect, error)

	Archive(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) error
	Restore(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) error

	AddNote(ctx context.Context, scope agencydomain.Scope, prospectID snowflake.ID, content string) (*ProspectNote, error)
	Notes(ctx context.Context, scope agencydomain.Scope, prospectID snowflake.ID) ([]ProspectNote, error)
	DeleteNote(ctx context.Context, scope agencydomain.Scope, prospectID, noteID snowflake.ID) error
}

type CreateRequest struct {
	Name           string
	Platform       string
	Handle         string
	Status         string
	Priority       string
	Value          *float64
	CommissionRate *float64
}

// UpdateRequest carries partial edits; nil means keep.
type UpdateRequest struct {
	Name           *string
	Platform       *string
	Handle         *string
	Value          *float64
	CommissionRate *float64
	QualBudget     *bool
	QualAuthority  *bool
	QualNeed       *bool
	QualTiming     *bool
}

var (
	ErrNotFound        = errors.New("prospect_not_found")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidPriority = errors.New("invalid_priority")
	ErrInvalidValue    = errors.New("invalid_value")
	ErrEmptyNote       = errors.New("empty_note")
	ErrNoteNotFound    = errors.New("note_not_found")
)
