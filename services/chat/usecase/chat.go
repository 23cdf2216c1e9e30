package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dkurush/fleetops/internal/pkg/constants"
	"github.com/dkurush/fleetops/internal/pkg/logger"
	"github.com/dkurush/fleetops/internal/pkg/models"
	natspkg "github.com/dkurush/fleetops/internal/pkg/nats"
	"github.com/dkurush/fleetops/services/chat"
)

// ErrEmptyMessage is returned when a message has no content after
// trimming; nothing is sent to the store.
var ErrEmptyMessage = errors.New("message text is empty")

// ChatUC implements the conversation message channel
type ChatUC struct {
	cfg  *models.Config
	repo chat.ChatRepo
	gw   chat.ChatGW
	nc   *natspkg.Client
}

// NewChatUC creates a new chat use case
func NewChatUC(cfg *models.Config, repo chat.ChatRepo, gw chat.ChatGW, nc *natspkg.Client) *ChatUC {
	return &ChatUC{
		cfg:  cfg,
		repo: repo,
		gw:   gw,
		nc:   nc,
	}
}

// Send appends a message to the conversation between the actor and the
// recipient. Blank text is rejected locally without a store round-trip.
// A store failure is surfaced to the caller; a change-feed publish
// failure is not, since history remains authoritative.
func (uc *ChatUC) Send(ctx context.Context, from models.Actor, to, text string) (*models.ChatMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}
	if to == "" || to == from.ID {
		return nil, fmt.Errorf("invalid recipient %q", to)
	}

	msg := &models.ChatMessage{
		ConversationID: chat.ConversationID(from.ID, to),
		From:           from.ID,
		To:             to,
		Text:           trimmed,
	}

	stored, err := uc.repo.InsertMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	if err := uc.gw.PublishMessage(ctx, stored); err != nil {
		logger.Warn("Failed to publish chat message",
			logger.String("conversation_id", stored.ConversationID),
			logger.Err(err))
	}

	return stored, nil
}

// History returns the most recent limit messages of the conversation in
// ascending time order
func (uc *ChatUC) History(ctx context.Context, actor models.Actor, peer string, limit int) ([]*models.ChatMessage, error) {
	if limit <= 0 || limit > uc.cfg.Chat.HistoryLimit {
		limit = uc.cfg.Chat.HistoryLimit
	}
	return uc.repo.GetRecentMessages(ctx, chat.ConversationID(actor.ID, peer), limit)
}

// Subscription is a live conversation subscription. Messages arrive on
// C in non-decreasing created_at order: first the history replay, then
// appended messages. Close must be called to release the feed.
type Subscription struct {
	C <-chan *models.ChatMessage

	unsubscribe func() error
	done        chan struct{}
	closeOnce   sync.Once
}

// Close releases the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		if s.unsubscribe != nil {
			if err := s.unsubscribe(); err != nil {
				logger.Warn("Failed to unsubscribe chat feed", logger.Err(err))
			}
		}
		close(s.done)
	})
}

// newSubscription stitches the history replay and the live feed into
// one ordered stream. The feed was attached before the history read,
// so a live message may duplicate a replayed one; replayed ids are
// suppressed on the live side.
func newSubscription(history []*models.ChatMessage, live <-chan *models.ChatMessage, unsubscribe func() error) *Subscription {
	out := make(chan *models.ChatMessage, len(history)+64)
	s := &Subscription{
		C:           out,
		unsubscribe: unsubscribe,
		done:        make(chan struct{}),
	}

	go func() {
		defer close(out)

		seen := make(map[uuid.UUID]struct{}, len(history))
		for _, msg := range history {
			seen[msg.ID] = struct{}{}
			select {
			case out <- msg:
			case <-s.done:
				return
			}
		}

		for {
			select {
			case msg := <-live:
				if _, dup := seen[msg.ID]; dup {
					continue
				}
				select {
				case out <- msg:
				case <-s.done:
					return
				}
			case <-s.done:
				return
			}
		}
	}()

	return s
}

// Subscribe replays the latest limit messages of the conversation and
// then streams appended messages. The live feed is attached before the
// history read so no message falling between the two is lost; replayed
// ids are deduplicated across the seam.
func (uc *ChatUC) Subscribe(ctx context.Context, actor models.Actor, peer string, limit int) (*Subscription, error) {
	if limit <= 0 || limit > uc.cfg.Chat.HistoryLimit {
		limit = uc.cfg.Chat.HistoryLimit
	}
	conversationID := chat.ConversationID(actor.ID, peer)
	subject := fmt.Sprintf(constants.SubjectChatMessage, conversationID)

	live := make(chan *models.ChatMessage, 64)
	natsSub, err := uc.nc.Subscribe(subject, func(_ string, data []byte) {
		var msg models.ChatMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warn("Malformed chat change event", logger.Err(err))
			return
		}
		select {
		case live <- &msg:
		default:
			logger.Warn("Chat subscriber is behind; dropping live message",
				logger.String("conversation_id", conversationID))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to conversation: %w", err)
	}

	history, err := uc.repo.GetRecentMessages(ctx, conversationID, limit)
	if err != nil {
		_ = natsSub.Unsubscribe()
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	return newSubscription(history, live, natsSub.Unsubscribe), nil
}
