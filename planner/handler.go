package planner

import (
	"encoding/json"
	"net/http"

	"solenne/utils"

	"github.com/julienschmidt/httprouter"
)

type buildRequest struct {
	Params
	RestaurantIndex *int `json:"restaurantIndex,omitempty"`
	ActivityIndex   *int `json:"activityIndex,omitempty"`
}

// POST /api/plans/build
func BuildPlanHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.RadiusMiles < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Radius must not be negative")
		return
	}

	var result Result
	if req.RestaurantIndex != nil && req.ActivityIndex != nil {
		result = BuildPlanFromIndices(req.Params, *req.RestaurantIndex, *req.ActivityIndex)
	} else {
		result = BuildPlan(req.Params)
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}
