package assistant

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/setterhq/setter-crm/internal/config"
	"go.uber.org/zap"
)

// Completer is the upstream the service depends on; the concrete Client
// satisfies it and tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, settings config.AssistantSettings, messages []Message) (string, error)
}

type Service interface {
	// Chat prepends the system prompt and returns the assistant reply
	// plus a correlation id for tracing the exchange in logs.
	Chat(ctx context.Context, history []Message) (reply string, chatID string, err error)
}

type service struct {
	client   Completer
	settings *config.AssistantSettingsHolder
	log      *zap.Logger
	entropy  *ulid.MonotonicEntropy
}

func NewService(client *Client, settings *config.AssistantSettingsHolder, log *zap.Logger) Service {
	return &service{
		client:   client,
		settings: settings,
		log:      log.Named("assistant"),
		entropy:  ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

func (s *service) Chat(ctx context.Context, history []Message) (string, string, error) {
	chatID := ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()

	settings := s.settings.Get()
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: "system", Content: settings.SystemPrompt})
	for _, m := range history {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		role := m.Role
		if role != "assistant" {
			role = "user"
		}
		messages = append(messages, Message{Role: role, Content: m.Content})
	}

	reply, err := s.client.Complete(ctx, settings, messages)
	if err != nil {
		s.log.Error("assistant chat failed",
			zap.String("chat_id", chatID),
			zap.Error(err),
		)
		return "", chatID, err
	}

	s.log.Info("assistant chat",
		zap.String("chat_id", chatID),
		zap.String("model", settings.Model),
		zap.Int("turns", len(history)),
	)
	return reply, chatID, nil
}
