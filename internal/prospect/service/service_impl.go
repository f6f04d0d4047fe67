package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	agencydomain "github.com/setterhq/setter-crm/internal/agency/domain"
	"github.com/setterhq/setter-crm/internal/calltracker"
	"github.com/setterhq/setter-crm/internal/clock"
	profiledomain "github.com/setterhq/setter-crm/internal/profile/domain"
	"github.com/setterhq/setter-crm/internal/prospect/domain"
	"go.uber.org/zap"
)

type service struct {
	node     *snowflake.Node
	repo     domain.Repository
	profiles profiledomain.Repository
	clock    clock.Clock
	log      *zap.Logger
}

func NewService(
	node *snowflake.Node,
	repo domain.Repository,
	profiles profiledomain.Repository,
	clk clock.Clock,
	log *zap.Logger,
) domain.Service {
	return &service{
		node:     node,
		repo:     repo,
		profiles: profiles,
		clock:    clk,
		log:      log.Named("prospect"),
	}
}

func (s *service) Create(ctx context.Context, scope agencydomain.Scope, req domain.CreateRequest) (*domain.Prospect, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	status := req.Status
	if status == "" {
		status = domain.StatusNewLead
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, domain.ErrInvalidPriority
	}
	if req.Value != nil && *req.Value < 0 {
		return nil, domain.ErrInvalidValue
	}
	commissionRate := 10.0
	if req.CommissionRate != nil {
		if *req.CommissionRate < 0 || *req.CommissionRate > 100 {
			return nil, domain.ErrInvalidValue
		}
		commissionRate = *req.CommissionRate
	}

	prospect := &domain.Prospect{
		ID:             s.node.Generate(),
		Name:           name,
		Platform:       strings.TrimSpace(req.Platform),
		Handle:         strings.TrimSpace(req.Handle),
		Status:         status,
		Priority:       priority,
		Value:          req.Value,
		CommissionRate: commissionRate,
		UserID:         scope.UserID,
		CreatorName:    s.creatorName(ctx, scope.UserID),
	}
	if scope.HasAgency() {
		agencyID := scope.Agency.ID
		prospect.AgencyID = &agencyID
	}

	if err := s.repo.Create(ctx, prospect); err != nil {
		return nil, err
	}
	return prospect, nil
}

// creatorName denormalizes the author's display name onto the row so
// agency mates see who added the lead without a join.
func (s *service) creatorName(ctx context.Context, userID snowflake.ID) string {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil || profile == nil {
		return ""
	}
	return profile.FullName
}

func (s *service) Get(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) (*domain.Prospect, error) {
	prospect, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if prospect == nil {
		return nil, domain.ErrNotFound
	}
	return prospect, nil
}

func (s *service) List(ctx context.Context, scope agencydomain.Scope) ([]domain.Prospect, error) {
	return s.repo.List(ctx, scope)
}

func (s *service) ListArchived(ctx context.Context, scope agencydomain.Scope) ([]domain.Prospect, error) {
	return s.repo.ListArchived(ctx, scope)
}

func (s *service) Update(ctx context.Context, scope agencydomain.Scope, id snowflake.ID, req domain.UpdateRequest) (*domain.Prospect, error) {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Platform != nil {
		fields["platform"] = strings.TrimSpace(*req.Platform)
	}
	if req.Handle != nil {
		fields["handle"] = strings.TrimSpace(*req.Handle)
	}
	if req.Value != nil {
		if *req.Value < 0 {
			return nil, domain.ErrInvalidValue
		}
		fields["value"] = *req.Value
	}
	if req.CommissionRate != nil {
		if *req.CommissionRate < 0 || *req.CommissionRate > 100 {
			return nil, domain.ErrInvalidValue
		}
		fields["commission_rate"] = *req.CommissionRate
	}
	if req.QualBudget != nil {
		fields["qual_budget"] = *req.QualBudget
	}
	if req.QualAuthority != nil {
		fields["qual_authority"] = *req.QualAuthority
	}
	if req.QualNeed != nil {
		fields["qual_need"] = *req.QualNeed
	}
	if req.QualTiming != nil {
		fields["qual_timing"] = *req.QualTiming
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
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

func (s *service) SetStatus(ctx context.Context, scope agencydomain.Scope, id snowflake.ID, status string) (*domain.Prospect, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	if _, err := s.Get(ctx, scope, id); err != nil {
		return nil, err
	}

	fields := map[string]any{"status": status}
	// Moving a card counts as touching the prospect.
	if status == domain.StatusContacted || status == domain.StatusConversation {
		fields["last_contact"] = s.clock.Now()
	}
	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.Get(ctx, scope, id)
}

func (s *service) CyclePriority(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) (*domain.Prospect, error) {
	prospect, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	err = s.repo.UpdateFields(ctx, id, map[string]any{
		"priority": domain.NextPriority(prospect.Priority),
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, scope, id)
}

func (s *service) MarkContacted(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) (*domain.Prospect, error) {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return nil, err
	}
	err := s.repo.UpdateFields(ctx, id, map[string]any{"last_contact": s.clock.Now()})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, scope, id)
}

func (s *service) Archive(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) error {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return err
	}
	return s.repo.UpdateFields(ctx, id, map[string]any{"is_archived": true})
}

func (s *service) Restore(ctx context.Context, scope agencydomain.Scope, id snowflake.ID) error {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return err
	}
	return s.repo.UpdateFields(ctx, id, map[string]any{"is_archived": false})
}

func (s *service) AddNote(ctx context.Context, scope agencydomain.Scope, prospectID snowflake.ID, content string) (*domain.ProspectNote, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyNote
	}
	prospect, err := s.Get(ctx, scope, prospectID)
	if err != nil {
		return nil, err
	}

	note := &domain.ProspectNote{
		ID:         s.node.Generate(),
		ProspectID: prospect.ID,
		UserID:     scope.UserID,
		Content:    content,
		AgencyID:   prospect.AgencyID,
	}
	if err := s.repo.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *service) Notes(ctx context.Context, scope agencydomain.Scope, prospectID snowflake.ID) ([]domain.ProspectNote, error) {
	if _, err := s.Get(ctx, scope, prospectID); err != nil {
		return nil, err
	}
	return s.repo.ListNotes(ctx, prospectID)
}

func (s *service) DeleteNote(ctx context.Context, scope agencydomain.Scope, prospectID, noteID snowflake.ID) error {
	if _, err := s.Get(ctx, scope, prospectID); err != nil {
		return err
	}
	note, err := s.repo.DeleteNote(ctx, prospectID, noteID)
	if err != nil {
		return err
	}
	if note == nil {
		return domain.ErrNoteNotFound
	}
	return nil
}

// RolloverSubscriber archives a user's closed prospects when their call
// counter rolls into a new month.
type RolloverSubscriber struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewRolloverSubscriber(repo domain.Repository, log *zap.Logger) *RolloverSubscriber {
	return &RolloverSubscriber{repo: repo, log: log.Named("prospect.rollover")}
}

var _ calltracker.Subscriber = (*RolloverSubscriber)(nil)

func (r *RolloverSubscriber) OnMonthRollover(ctx context.Context, ev calltracker.MonthRollover) error {
	archived, err := r.repo.ArchiveClosedByUser(ctx, ev.UserID)
	if err != nil {
		return err
	}
	if archived > 0 {
		r.log.Info("archived closed prospects on rollover",
			zap.String("user_id", ev.UserID.String()),
			zap.Int64("archived", archived),
		)
	}
	return nil
}
