package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/setterhq/setter-crm/internal/profile/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type service struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewService(repo domain.Repository, log *zap.Logger) domain.Service {
	return &service{
		repo: repo,
		log:  log.Named("profile"),
	}
}

func (s *service) Get(ctx context.Context, userID snowflake.ID) (*domain.Profile, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	profile, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID snowflake.ID, req domain.UpdateProfileRequest) error {
	if userID == 0 {
		return domain.ErrInvalidUser
	}

	fields := map[string]any{}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return domain.ErrInvalidName
		}
		fields["full_name"] = name
	}
	if req.JobTitle != nil {
		fields["job_title"] = strings.TrimSpace(*req.JobTitle)
	}

	return s.repo.UpdateFields(ctx, userID, fields)
}

func (s *service) UpdateGoals(ctx context.Context, userID snowflake.ID, req domain.UpdateGoalsRequest) error {
	if userID == 0 {
		return domain.ErrInvalidUser
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	goals := profile.Goals.Data()
	if req.MonthlyCommission != nil {
		if *req.MonthlyCommission < 0 {
			return domain.ErrInvalidGoal
		}
		goals.MonthlyCommission = *req.MonthlyCommission
	}
	if req.DailyCalls != nil {
		if *req.DailyCalls < 0 {
			return domain.ErrInvalidGoal
		}
		goals.DailyCalls = *req.DailyCalls
	}

	return s.repo.UpdateFields(ctx, userID, map[string]any{
		"goals": datatypes.NewJSONType(goals),
	})
}
