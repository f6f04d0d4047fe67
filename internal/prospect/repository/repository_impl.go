package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	agencydomain "github.com/setterhq/setter-crm/internal/agency/domain"
	"github.com/setterhq/setter-crm/internal/prospect/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, prospect *domain.Prospect) error {
	return r.db.WithContext(ctx).Create(prospect).Error
}

func (r *repository) Get(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) (*domain.Prospect, error) {
	var prospect domain.Prospect
	q := scope.ApplyProspects(r.db.WithContext(ctx))
	err := q.First(&prospect, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prospect, nil
}

func (r *repository) List(ctx context.Context, scope agencydomain.Scope) ([]domain.Prospect, error) {
	var prospects []domain.Prospect
	q := scope.ApplyProspects(r.db.WithContext(ctx)).
		Where("is_archived = ?", false).
		Order("created_at DESC")
	if err := q.Find(&prospects).Error; err != nil {
		return nil, err
	}
	return prospects, nil
}

func (r *repository) ListArchived(ctx context.Context, scope agencydomain.Scope) ([]domain.Prospect, error) {
	var prospects []domain.Prospect
	q := scope.ApplyProspects(r.db.WithContext(ctx)).
		Where("is_archived = ?", true).
		Order("updated_at DESC")
	if err := q.Find(&prospects).Error; err != nil {
		return nil, err
	}
	return prospects, nil
}

func (r *repository) UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&domain.Prospect{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prospect_id = ?", id).Delete(&domain.ProspectNote{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Prospect{}).Error
	})
}

func (r *repository) CreateNote(ctx context.Context, note *domain.ProspectNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(note).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Prospect{}).
			Where("id = ?", note.ProspectID).
			Update("notes_count", gorm.Expr("notes_count + 1")).Error
	})
}

func (r *repository) ListNotes(ctx context.Context, prospectID snowflake.ID) ([]domain.ProspectNote, error) {
	var notes []domain.ProspectNote
	err := r.db.WithContext(ctx).
		Where("prospect_id = ?", prospectID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *repository) DeleteNote(ctx context.Context, prospectID, noteID snowflake.ID) (*domain.ProspectNote, error) {
	var note domain.ProspectNote
	err := r.db.WithContext(ctx).First(&note, "id = ? AND prospect_id = ?", noteID, prospectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", noteID).Delete(&domain.ProspectNote{}).Error; err != nil {
			return err
		}
		// The counter never goes below zero even if it drifted.
		return tx.Model(&domain.Prospect{}).
			Where("id = ? AND notes_count > 0", note.ProspectID).
			Update("notes_count", gorm.Expr("notes_count - 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *repository) ArchiveClosedByUser(ctx context.Context, userID snowflake.ID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Prospect{}).
		Where("user_id = ? AND status = ? AND is_archived = ?", userID, domain.StatusClosed, false).
		Updates(map[string]any{
			"is_archived": true,
			"updated_at":  time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}
