package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"solenne/db"
	"solenne/models"
	"solenne/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type checkRequest struct {
	RestaurantID    string            `json:"restaurantId"`
	ActivityID      string            `json:"activityId"`
	RestaurantHours *models.HoursData `json:"restaurantHours,omitempty"`
	ActivityHours   *models.HoursData `json:"activityHours,omitempty"`
	ScheduledDate   string            `json:"scheduledDate"`
	ScheduledTime   string            `json:"scheduledTime"`
}

type checkResponse struct {
	Status          string            `json:"status"`
	Conflicts       []models.Conflict `json:"conflicts"`
	RestaurantHours []string          `json:"restaurantHours"`
	ActivityHours   []string          `json:"activityHours"`
}

// POST /api/plans/check-availability
// Anonymous callers get the hours checks; signed-in callers additionally get
// proximity conflicts against their other scheduled plans.
func CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.ScheduledDate == "" || req.ScheduledTime == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "scheduledDate and scheduledTime are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var siblingDates []string
	if userID != "" {
		var err error
		siblingDates, err = SiblingPlanDates(ctx, userID, "")
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching existing plans")
			return
		}
	}

	result, err := Check(req.ScheduledDate, req.ScheduledTime, req.RestaurantHours, req.ActivityHours, siblingDates)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if result.Conflicts == nil {
		result.Conflicts = []models.Conflict{}
	}

	resp := checkResponse{
		Status:          result.Status,
		Conflicts:       result.Conflicts,
		RestaurantHours: weekdayText(req.RestaurantHours),
		ActivityHours:   weekdayText(req.ActivityHours),
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// SiblingPlanDates returns the scheduled dates of the user's other active
// plans. excludePlanID skips the plan being edited.
func SiblingPlanDates(ctx context.Context, userID, excludePlanID string) ([]string, error) {
	filter := bson.M{
		"user_id": userID,
		"status":  models.PlanStatusScheduled,
	}
	if excludePlanID != "" {
		filter["planid"] = bson.M{"$ne": excludePlanID}
	}

	plans, err := utils.FindAndDecode[models.ScheduledPlan](ctx, db.PlansCollection, filter)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(plans))
	for _, p := range plans {
		dates = append(dates, p.ScheduledDate)
	}
	return dates, nil
}

func weekdayText(hours *models.HoursData) []string {
	if hours == nil || len(hours.WeekdayText) == 0 {
		return []string{}
	}
	return hours.WeekdayText
}
