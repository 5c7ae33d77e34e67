package notifications

import (
	"context"
	"log"
	"time"

	"solenne/db"
	"solenne/models"
	"solenne/mq"
	"solenne/settings"
	"solenne/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// eligible reports whether a pending notification should go out now:
// not yet sent, due, and its owner not inside their quiet window.
func eligible(n models.Notification, quiet models.QuietHours, now time.Time) bool {
	if n.SentAt != nil {
		return false
	}
	if n.ScheduledFor.After(now) {
		return false
	}
	return !quiet.Contains(now.Hour())
}

// dispatchBatch walks a batch of pending notifications and returns the ids
// actually sent. markSent reports whether this run won the conditional
// update; a lost race is skipped silently.
func dispatchBatch(ctx context.Context, due []models.Notification, now time.Time,
	quietFor func(context.Context, string) models.QuietHours,
	markSent func(context.Context, string, time.Time) (bool, error),
	emit func(context.Context, models.Notification) error,
) []string {
	quietByUser := make(map[string]models.QuietHours)
	sentIDs := []string{}

	for _, n := range due {
		quiet, ok := quietByUser[n.UserID]
		if !ok {
			// Second, independent enforcement: scheduling never clamped the
			// fixed-offset types, and a user may have changed their window since.
			quiet = quietFor(ctx, n.UserID)
			quietByUser[n.UserID] = quiet
		}
		if !eligible(n, quiet, now) {
			continue
		}

		won, err := markSent(ctx, n.ID, now)
		if err != nil {
			log.Printf("dispatch: mark sent failed for %s: %v", n.ID, err)
			continue
		}
		if !won {
			// a concurrent run got there first
			continue
		}

		sentIDs = append(sentIDs, n.ID)

		n.SentAt = &now
		if err := emit(ctx, n); err != nil {
			log.Printf("dispatch: emit failed for %s: %v", n.ID, err)
		}
	}

	return sentIDs
}

// DispatchDue promotes every due pending notification to sent, skipping
// owners currently inside their quiet window. The sent mark uses a
// conditional update so concurrent dispatch runs never double-send.
func DispatchDue(ctx context.Context, now time.Time) (int, []string, error) {
	filter := bson.M{
		"sent_at":       nil,
		"scheduled_for": bson.M{"$lte": now},
	}

	due, err := utils.FindAndDecode[models.Notification](ctx, db.NotificationsCollection, filter)
	if err != nil {
		return 0, nil, err
	}

	sentIDs := dispatchBatch(ctx, due, now, settings.QuietHoursFor, markSentInDB, mq.EmitNotificationSent)
	return len(sentIDs), sentIDs, nil
}

func markSentInDB(ctx context.Context, id string, now time.Time) (bool, error) {
	res, err := db.NotificationsCollection.UpdateOne(ctx,
		bson.M{"id": id, "sent_at": nil},
		bson.M{"$set": bson.M{"sent_at": now}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
