// Package calltracker counts calls per user with an in-memory hot path,
// a coalescing write-behind queue and a monthly rollover that archives
// the closing month's total.
package calltracker

import (
	"context"
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/setterhq/setter-crm/internal/clock"
	profiledomain "github.com/setterhq/setter-crm/internal/profile/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var ErrProfileNotFound = errors.New("profile_not_found")

type Service interface {
	// LogCall increments the user's counter and returns the new total.
	// The database write is deferred to the flusher.
	LogCall(ctx context.Context, userID snowflake.ID) (int, error)

	// Total returns the current counter value, priming from the
	// database on first access.
	Total(ctx context.Context, userID snowflake.ID) (int, error)

	// ResetCalls zeroes the counter immediately, write-through.
	ResetCalls(ctx context.Context, userID snowflake.ID) error

	// CheckRollover archives the counter when the month changed since
	// the last reset. Returns the rollover event when one happened.
	CheckRollover(ctx context.Context, userID snowflake.ID) (*MonthRollover, error)
}

type counter struct {
	mu    sync.Mutex
	total int
}

type service struct {
	profiles    profiledomain.Repository
	flusher     *Flusher
	clock       clock.Clock
	log         *zap.Logger
	subscribers []Subscriber

	mu       sync.Mutex
	counters map[snowflake.ID]*counter
}

func NewService(
	profiles profiledomain.Repository,
	flusher *Flusher,
	clk clock.Clock,
	log *zap.Logger,
	subscribers []Subscriber,
) Service {
	return &service{
		profiles:    profiles,
		flusher:     flusher,
		clock:       clk,
		log:         log.Named("calltracker"),
		subscribers: subscribers,
		counters:    make(map[snowflake.ID]*counter),
	}
}

func (s *service) counterFor(ctx context.Context, userID snowflake.ID) (*counter, error) {
	s.mu.Lock()
	c, ok := s.counters[userID]
	s.mu.Unlock()
	if ok {
		return c, nil
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another goroutine may have primed it while we read the database.
	if c, ok := s.counters[userID]; ok {
		return c, nil
	}
	c = &counter{total: profile.TotalCalls}
	s.counters[userID] = c
	return c, nil
}

func (s *service) LogCall(ctx context.Context, userID snowflake.ID) (int, error) {
	c, err := s.counterFor(ctx, userID)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.total++
	total := c.total
	c.mu.Unlock()

	s.flusher.Enqueue(userID, total)
	return total, nil
}

func (s *service) Total(ctx context.Context, userID snowflake.ID) (int, error) {
	c, err := s.counterFor(ctx, userID)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total, nil
}

func (s *service) ResetCalls(ctx context.Context, userID snowflake.ID) error {
	if err := s.profiles.UpdateFields(ctx, userID, map[string]any{"total_calls": 0}); err != nil {
		return err
	}
	s.flusher.Drop(userID)
	s.setCounter(userID, 0)
	return nil
}

func (s *service) CheckRollover(ctx context.Context, userID snowflake.ID) (*MonthRollover, error) {
	// Pending writes must land first so the archived total is accurate.
	if err := s.flusher.FlushUser(ctx, userID); err != nil {
		return nil, err
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	month := s.clock.Now().Format("2006-01")
	if profile.LastResetMonth == month {
		return nil, nil
	}

	// First use: stamp the month without archiving anything.
	if profile.LastResetMonth == "" {
		err := s.profiles.UpdateFields(ctx, userID, map[string]any{"last_reset_month": month})
		return nil, err
	}

	history := append([]profiledomain.MonthlyCalls(profile.CallHistory), profiledomain.MonthlyCalls{
		Month: profile.LastResetMonth,
		Total: profile.TotalCalls,
	})
	err = s.profiles.UpdateFields(ctx, userID, map[string]any{
		"total_calls":      0,
		"last_reset_month": month,
		"call_history":     datatypes.NewJSONSlice(history),
	})
	if err != nil {
		return nil, err
	}
	s.setCounter(userID, 0)

	ev := MonthRollover{
		UserID:        userID,
		Month:         profile.LastResetMonth,
		PreviousTotal: profile.TotalCalls,
	}
	for _, sub := range s.subscribers {
		if err := sub.OnMonthRollover(ctx, ev); err != nil {
			s.log.Error("rollover subscriber failed",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}

	s.log.Info("month rollover",
		zap.String("user_id", userID.String()),
		zap.String("archived_month", ev.Month),
		zap.Int("archived_total", ev.PreviousTotal),
	)
	return &ev, nil
}

func (s *service) setCounter(userID snowflake.ID, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.counters[userID]; ok {
		c.mu.Lock()
		c.total = total
		c.mu.Unlock()
		return
	}
	s.counters[userID] = &counter{total: total}
}
