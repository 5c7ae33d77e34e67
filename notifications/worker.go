package notifications

import (
	"context"
	"encoding/json"
	"log"

	"solenne/mq"
	"solenne/rdx"
)

// StartDeliveryWorker subscribes to the dispatched-notification channel and
// forwards each event to the owner's open websocket connections. Runs until
// the subscription is closed.
func StartDeliveryWorker(hub *Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, mq.NotificationChannel)
	ch := sub.Channel()

	log.Println("[DeliveryWorker] Listening for dispatched notifications...")

	for msg := range ch {
		userID := ownerOf([]byte(msg.Payload))
		if userID == "" {
			log.Println("[DeliveryWorker] Event without a user_id, skipping")
			continue
		}
		hub.Deliver(userID, []byte(msg.Payload))
	}
}

func ownerOf(payload []byte) string {
	var evt struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(payload, &evt); err != nil {
		return ""
	}
	return evt.UserID
}
