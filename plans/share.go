package plans

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"solenne/db"
	"solenne/models"
	"solenne/notifications"
	"solenne/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type shareResponseRequest struct {
	Accepted bool `json:"accepted"`
}

// POST /api/plans/plan/:planid/share-response
// The invitee answers a shared plan; the owner gets an immediate ad-hoc
// notification, dispatched with the next batch.
func RespondToShare(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	fromUsername := utils.GetUsernameFromRequest(r)
	if fromUsername == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	planID := ps.ByName("planid")

	var req shareResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var plan models.ScheduledPlan
	if err := db.PlansCollection.FindOne(ctx, bson.M{"planid": planID}).Decode(&plan); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}

	n := notifications.NewShareResponse(plan.UserID, planID, fromUsername, req.Accepted, time.Now())
	if _, err := db.NotificationsCollection.InsertOne(ctx, n); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store notification")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, n)
}
