package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/nutshop/internal/events"
	"github.com/Skotchmaster/nutshop/internal/logging"
)

// publish never fails the caller; broker errors are only logged.
func publish(ctx context.Context, p events.Publisher, typ string, userID uint, payload map[string]any) {
	if p == nil {
		return
	}
	err := p.Publish(ctx, events.Event{
		Type:    typ,
		UserID:  userID,
		At:      time.Now().UTC(),
		Payload: payload,
	})
	if err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "event", typ, "user_id", userID, "error", err)
	}
}
