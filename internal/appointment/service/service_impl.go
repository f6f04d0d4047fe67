package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	agencydomain "github.com/setterhq/setter-crm/internal/agency/domain"
	"github.com/setterhq/setter-crm/internal/appointment/domain"
	"go.uber.org/zap"
)

type service struct {
	node *snowflake.Node
	repo domain.Repository
	log  *zap.Logger
}

func NewService(node *snowflake.Node, repo domain.Repository, log *zap.Logger) domain.Service {
	return &service{
		node: node,
		repo: repo,
		log:  log.Named("appointment"),
	}
}

func (s *service) Create(ctx context.Context, scope agencydomain.Scope, req domain.CreateRequest) (*domain.Appointment, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}
	if !domain.ValidDate(req.Date) {
		return nil, domain.ErrInvalidDate
	}
	if !domain.ValidTime(req.Time) {
		return nil, domain.ErrInvalidTime
	}
	duration := 30
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, domain.ErrInvalidDuration
		}
		duration = *req.DurationMinutes
	}

	appointment := &domain.Appointment{
		ID:              s.node.Generate(),
		UserID:          scope.UserID,
		ProspectID:      req.ProspectID,
		Title:           title,
		Description:     strings.TrimSpace(req.Description),
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: duration,
		Status:          domain.StatusScheduled,
	}
	if scope.HasAgency() {
		agencyID := scope.Agency.ID
		appointment.AgencyID = &agencyID
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *service) Get(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) (*domain.Appointment, error) {
	appointment, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, domain.ErrNotFound
	}
	return appointment, nil
}

func (s *service) List(ctx context.Context, scope agencydomain.Scope, from, to string) ([]domain.Appointment, error) {
	if from == "" && to == "" {
		return s.repo.List(ctx, scope)
	}
	if from != "" && !domain.ValidDate(from) {
		return nil, domain.ErrInvalidDate
	}
	if to != "" && !domain.ValidDate(to) {
		return nil, domain.ErrInvalidDate
	}
	return s.repo.ListByDateRange(ctx, scope, from, to)
}

func (s *service) Update(ctx context.Context, scope agencydomain.Scope, id snowflake.ID, req domain.UpdateRequest) (*domain.Appointment, error) {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		fields["title"] = title
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Date != nil {
		if !domain.ValidDate(*req.Date) {
			return nil, domain.ErrInvalidDate
		}
		fields["date"] = *req.Date
	}
	if req.Time != nil {
		if !domain.ValidTime(*req.Time) {
			return nil, domain.ErrInvalidTime
		}
		fields["time"] = *req.Time
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, domain.ErrInvalidDuration
		}
		fields["duration_minutes"] = *req.DurationMinutes
	}
	if req.ProspectID != nil {
		fields["prospect_id"] = *req.ProspectID
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.Get(ctx, scope, id)
}

func (s *service) SetStatus(ctx context.Context, scope agencydomain.Scope, id snowflake.ID, status string) (*domain.Appointment, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	if _, err := s.Get(ctx, scope, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFields(ctx, id, map[string]any{"status": status}); err != nil {
		return nil, err
	}
	return s.Get(ctx, scope, id)
}

func (s *service) Delete(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) error {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
