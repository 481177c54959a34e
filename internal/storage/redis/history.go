// Package redis
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"perfil/internal/domain"

	"github.com/redis/go-redis/v9"
)

const notificationStream = "perfil:notifications"

// History keeps a capped stream of emitted notifications so the UI can
// replay recent toasts after a reconnect.
type History struct {
	redis  *redis.Client
	maxLen int64
}

func NewHistory(r *redis.Client, maxLen int64) *History {
	return &History{redis: r, maxLen: maxLen}
}

func (h *History) Append(ctx context.Context, n domain.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("history marshal failed: %w", err)
	}

	err = h.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: notificationStream,
		Values: map[string]any{
			"data": data,
		},
		MaxLen: h.maxLen,
	}).Err()
	if err != nil {
		return fmt.Errorf("history xadd failed: %w", err)
	}

	return nil
}

func (h *History) Latest(ctx context.Context, limit int64) ([]domain.Notification, error) {
	msgs, err := h.redis.XRevRangeN(ctx, notificationStream, "+", "-", limit).Result()
	if err != nil {
		return nil, fmt.Errorf("history xrevrange failed: %w", err)
	}

	notifications := make([]domain.Notification, 0, len(msgs))
	for _, msg := range msgs {
		raw, ok := msg.Values["data"].(string)
		if !ok {
			continue
		}

		var n domain.Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			continue
		}

		notifications = append(notifications, n)
	}

	return notifications, nil
}
