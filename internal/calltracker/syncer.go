package calltracker

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/setterhq/setter-crm/internal/clock"
	profiledomain "github.com/setterhq/setter-crm/internal/profile/domain"
	"go.uber.org/zap"
)

// flushDelay is how long a counter write may sit in the queue so that a
// burst of calls coalesces into one UPDATE.
const flushDelay = time.Second

type pending struct {
	total    int
	deadline time.Time
}

// Flusher coalesces counter writes per user. Repeated enqueues for the
// same user overwrite the pending total and push the flush deadline
// out, so the write lands only after the user has been idle for
// flushDelay.
type Flusher struct {
	profiles profiledomain.Repository
	clock    clock.Clock
	log      *zap.Logger

	mu      sync.Mutex
	pending map[snowflake.ID]pending

	done chan struct{}
	wg   sync.WaitGroup
}

func NewFlusher(profiles profiledomain.Repository, clk clock.Clock, log *zap.Logger) *Flusher {
	return &Flusher{
		profiles: profiles,
		clock:    clk,
		log:      log.Named("calltracker.flusher"),
		pending:  make(map[snowflake.ID]pending),
		done:     make(chan struct{}),
	}
}

func (f *Flusher) Enqueue(userID snowflake.ID, total int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending[userID] = pending{
		total:    total,
		deadline: f.clock.Now().Add(flushDelay),
	}
}

// Drop discards any pending write for the user.
func (f *Flusher) Drop(userID snowflake.ID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pending, userID)
}

// FlushUser writes the user's pending total immediately, if any.
func (f *Flusher) FlushUser(ctx context.Context, userID snowflake.ID) error {
	f.mu.Lock()
	p, ok := f.pending[userID]
	if ok {
		delete(f.pending, userID)
	}
	f.mu.Unlock()
	if !ok {
		return nil
	}
	return f.profiles.UpdateFields(ctx, userID, map[string]any{"total_calls": p.total})
}

// flushDue writes every pending total whose deadline has passed.
func (f *Flusher) flushDue(ctx context.Context) {
	now := f.clock.Now()

	f.mu.Lock()
	due := make(map[snowflake.ID]int)
	for userID, p := range f.pending {
		if !p.deadline.After(now) {
			due[userID] = p.total
			delete(f.pending, userID)
		}
	}
	f.mu.Unlock()

	for userID, total := range due {
		err := f.profiles.UpdateFields(ctx, userID, map[string]any{"total_calls": total})
		if err != nil {
			f.log.Error("counter flush failed",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}
}

// flushAll writes everything regardless of deadline, used on shutdown.
func (f *Flusher) flushAll(ctx context.Context) {
	f.mu.Lock()
	due := make(map[snowflake.ID]int, len(f.pending))
	for userID, p := range f.pending {
		due[userID] = p.total
	}
	f.pending = make(map[snowflake.ID]pending)
	f.mu.Unlock()

	for userID, total := range due {
		err := f.profiles.UpdateFields(ctx, userID, map[string]any{"total_calls": total})
		if err != nil {
			f.log.Error("counter flush failed",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}
}

// Start launches the background flush loop.
func (f *Flusher) Start() {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		ticker := time.NewTicker(flushDelay / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				f.flushDue(context.Background())
			case <-f.done:
				return
			}
		}
	}()
}

// Stop halts the loop and drains everything still pending.
func (f *Flusher) Stop(ctx context.Context) {
	close(f.done)
	f.wg.Wait()
	f.flushAll(ctx)
}
