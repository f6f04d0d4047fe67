package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	agencydomain "github.com/setterhq/setter-crm/internal/agency/domain"
	"github.com/setterhq/setter-crm/internal/appointment/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, appointment *domain.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *repository) Get(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) (*domain.Appointment, error) {
	var appointment domain.Appointment
	q := scope.ApplyAppointments(r.db.WithContext(ctx))
	err := q.First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *repository) List(ctx context.Context, scope agencydomain.Scope) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	q := scope.ApplyAppointments(r.db.WithContext(ctx)).
		Order("date ASC, time ASC")
	if err := q.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *repository) ListByDateRange(ctx context.Context, scope agencydomain.Scope, from, to string) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	q := scope.ApplyAppointments(r.db.WithContext(ctx))
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	err := q.Order("date ASC, time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *repository) UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Appointment{}).Error
}
