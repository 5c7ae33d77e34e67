package plans

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"solenne/availability"
	"solenne/db"
	"solenne/models"
	"solenne/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/plans/plan
func CreatePlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var plan models.ScheduledPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if plan.ScheduledDate == "" || plan.ScheduledTime == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "scheduled_date and scheduled_time are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plan.PlanID = "dn" + utils.GenerateRandomDigitString(16)
	plan.UserID = userID
	plan.Status = models.PlanStatusScheduled
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt

	siblingDates, err := availability.SiblingPlanDates(ctx, userID, "")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching existing plans")
		return
	}

	check, err := availability.Check(plan.ScheduledDate, plan.ScheduledTime, plan.RestaurantHours, plan.ActivityHours, siblingDates)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	plan.AvailabilityStatus = check.Status
	plan.ConflictWarnings = check.Conflicts
	if plan.ConflictWarnings == nil {
		plan.ConflictWarnings = []models.Conflict{}
	}

	if _, err := db.PlansCollection.InsertOne(ctx, plan); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, plan)
}

// GET /api/plans/plans
func GetPlans(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: 1}, {Key: "scheduled_time", Value: 1}})
	plans, err := utils.FindAndDecode[models.ScheduledPlan](ctx, db.PlansCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching plans")
		return
	}
	if plans == nil {
		plans = []models.ScheduledPlan{}
	}

	utils.RespondWithJSON(w, http.StatusOK, plans)
}

// GET /api/plans/plan/:planid
func GetPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var plan models.ScheduledPlan
	err := db.PlansCollection.FindOne(ctx, bson.M{"planid": ps.ByName("planid"), "user_id": userID}).Decode(&plan)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, plan)
}

type editRequest struct {
	ScheduledDate       string                  `json:"scheduled_date,omitempty"`
	ScheduledTime       string                  `json:"scheduled_time,omitempty"`
	WeatherForecast     *models.WeatherForecast `json:"weather_forecast,omitempty"`
	ConfirmationNumbers map[string]string       `json:"confirmation_numbers,omitempty"`
}

// PUT /api/plans/plan/:planid
// Editing the date or time re-runs the availability check against the
// stored hours snapshots.
func UpdatePlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	planID := ps.ByName("planid")

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var plan models.ScheduledPlan
	err := db.PlansCollection.FindOne(ctx, bson.M{"planid": planID, "user_id": userID}).Decode(&plan)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if plan.Status != models.PlanStatusScheduled {
		utils.RespondWithError(w, http.StatusConflict, "Only scheduled plans can be edited")
		return
	}

	if req.ScheduledDate != "" {
		plan.ScheduledDate = req.ScheduledDate
	}
	if req.ScheduledTime != "" {
		plan.ScheduledTime = req.ScheduledTime
	}
	if req.WeatherForecast != nil {
		plan.WeatherForecast = req.WeatherForecast
	}
	if req.ConfirmationNumbers != nil {
		plan.ConfirmationNumbers = req.ConfirmationNumbers
	}

	siblingDates, err := availability.SiblingPlanDates(ctx, userID, planID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching existing plans")
		return
	}

	check, err := availability.Check(plan.ScheduledDate, plan.ScheduledTime, plan.RestaurantHours, plan.ActivityHours, siblingDates)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	plan.AvailabilityStatus = check.Status
	plan.ConflictWarnings = check.Conflicts
	if plan.ConflictWarnings == nil {
		plan.ConflictWarnings = []models.Conflict{}
	}
	plan.UpdatedAt = time.Now()

	_, err = db.PlansCollection.UpdateOne(ctx,
		bson.M{"planid": planID, "user_id": userID},
		bson.M{"$set": bson.M{
			"scheduled_date":       plan.ScheduledDate,
			"scheduled_time":       plan.ScheduledTime,
			"weather_forecast":     plan.WeatherForecast,
			"confirmation_numbers": plan.ConfirmationNumbers,
			"availability_status":  plan.AvailabilityStatus,
			"conflict_warnings":    plan.ConflictWarnings,
			"updated_at":           plan.UpdatedAt,
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update plan")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, plan)
}

// POST /api/plans/plan/:planid/cancel
// Pending reminders for a cancelled plan are removed; sent ones stay.
func CancelPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	transitionPlan(w, r, ps.ByName("planid"), models.PlanStatusCancelled, 0)
}

// POST /api/plans/plan/:planid/complete
func CompletePlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Rating float64 `json:"rating"`
	}
	// rating is optional; an empty body completes without one
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Rating < 0 || body.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 0 and 5")
		return
	}
	transitionPlan(w, r, ps.ByName("planid"), models.PlanStatusCompleted, body.Rating)
}

func transitionPlan(w http.ResponseWriter, r *http.Request, planID, newStatus string, rating float64) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	update := bson.M{"status": newStatus, "updated_at": time.Now()}
	if rating > 0 {
		update["user_rating"] = rating
	}

	res, err := db.PlansCollection.UpdateOne(ctx,
		bson.M{"planid": planID, "user_id": userID, "status": models.PlanStatusScheduled},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update plan")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No scheduled plan to update")
		return
	}

	if newStatus == models.PlanStatusCancelled {
		_, err = db.NotificationsCollection.DeleteMany(ctx, bson.M{
			"scheduled_plan_id": planID,
			"sent_at":           nil,
		})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear pending reminders")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"planid": planID, "status": newStatus})
}
