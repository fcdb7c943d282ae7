package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/akshay-menon/recipe-flash-generator/internal/types"
)

const conversationTTL = 24 * time.Hour

// ConversationDraft is a resumable snapshot of an in-progress chat. The
// conversation itself lives in the client; this cache only lets a client
// pick up where it left off after a reload.
type ConversationDraft struct {
	ID             string              `json:"id"`
	Messages       []types.ChatMessage `json:"messages"`
	ExchangeNumber int                 `json:"exchange_number"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// DraftService stores conversation drafts in Redis with a 24h TTL.
type DraftService struct {
	redis *redis.Client
}

func NewDraftService(redisClient *redis.Client) *DraftService {
	return &DraftService{redis: redisClient}
}

func draftKey(id string) string {
	return fmt.Sprintf("conversation:draft:%s", id)
}

// SaveDraft writes the draft, assigning an id on first save.
func (s *DraftService) SaveDraft(ctx context.Context, draft *ConversationDraft) error {
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	draft.UpdatedAt = time.Now()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(draft.ID), data, conversationTTL).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}
	return nil
}

// GetDraft retrieves a conversation draft by id.
func (s *DraftService) GetDraft(ctx context.Context, id string) (*ConversationDraft, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft ConversationDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

// DeleteDraft removes a conversation draft. Used by the "start new
// conversation" action.
func (s *DraftService) DeleteDraft(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}
