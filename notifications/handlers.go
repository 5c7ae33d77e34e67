package notifications

import (
	"context"
	"net/http"
	"time"

	"solenne/db"
	"solenne/models"
	"solenne/settings"
	"solenne/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/plans/plan/:planid/notifications
func GenerateForPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	planID := ps.ByName("planid")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var plan models.ScheduledPlan
	err := db.PlansCollection.FindOne(ctx, bson.M{"planid": planID, "user_id": userID}).Decode(&plan)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}

	// generation is append-only: refuse a second set for the same plan
	existing, err := db.NotificationsCollection.CountDocuments(ctx, bson.M{"scheduled_plan_id": planID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error checking existing notifications")
		return
	}
	if existing > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Notifications already generated for this plan")
		return
	}

	quiet := settings.QuietHoursFor(ctx, userID)
	batch, err := Schedule(plan, quiet, time.Now())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(batch) > 0 {
		docs := make([]interface{}, len(batch))
		for i, n := range batch {
			docs[i] = n
		}
		if _, err := db.NotificationsCollection.InsertMany(ctx, docs); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store notifications")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"count":         len(batch),
		"notifications": batch,
	})
}

// GET /api/notifications
func GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	findOpts := options.Find().
		SetSort(bson.D{{Key: "scheduled_for", Value: 1}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	list, err := utils.FindAndDecode[models.Notification](ctx, db.NotificationsCollection, bson.M{"user_id": userID}, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching notifications")
		return
	}
	if list == nil {
		list = []models.Notification{}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// POST /api/notifications/dispatch
// Invoked periodically by an external scheduler; there is no timer loop here.
func DispatchHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	count, sentIDs, err := DispatchDue(ctx, time.Now())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Dispatch failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"count":   count,
		"sentIds": sentIDs,
	})
}
