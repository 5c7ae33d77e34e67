package mq

import (
	"context"
	"encoding/json"
	"log"

	"solenne/models"
	"solenne/rdx"
)

// Channel carrying dispatched-notification events. Delivery to a client is
// the subscriber's problem; the dispatcher's responsibility ends here.
const NotificationChannel = "notification-events"

// EmitNotificationSent publishes a just-sent notification on the Redis
// event channel for in-app delivery workers.
func EmitNotificationSent(ctx context.Context, n models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := rdx.Conn.Publish(ctx, NotificationChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish notification event: %v", err)
		return err
	}
	return nil
}
