package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	agencydomain "github.com/setterhq/setter-crm/internal/agency/domain"
)

type Repository interface {
	Create(ctx context.Context, prospect *Prospect) error
	Get(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) (*Prospect, error)
	List(ctx context.Context, scope agencydomain.Scope) ([]Prospect, error)
	ListArchived(ctx context.Context, scope agencydomain.Scope) ([]Prospect, error)
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, id snowflake.ID) error

	CreateNote(ctx context.Context, note *ProspectNote) error
	ListNotes(ctx context.Context, prospectID snowflake.ID) ([]ProspectNote, error)
	DeleteNote(ctx context.Context, prospectID, noteID snowflake.ID) (*ProspectNote, error)

	// ArchiveClosedByUser archives every closed, unarchived prospect the
	// user owns and returns how many rows changed.
	ArchiveClosedByUser(ctx context.Context, userID snowflake.ID) (int64, error)
}
