package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"solenne/db"
	"solenne/models"
	"solenne/rdx"
	"solenne/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserSettings represents user settings
type UserSettings struct {
	UserID        string            `json:"userID,omitempty" bson:"userID"`
	Notifications bool              `json:"notifications" bson:"notifications"`
	QuietHours    models.QuietHours `json:"quiet_hours" bson:"quiet_hours"`
	TimeZone      string            `json:"time_zone" bson:"time_zone"`
}

// Default settings if user settings don't exist
func getDefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:        userID,
		Notifications: true,
		QuietHours:    models.QuietHours{Start: 22, End: 8},
		TimeZone:      "UTC",
	}
}

// Fetch user settings, initializing defaults when missing
func GetUserSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var userSettings UserSettings
	err := db.SettingsCollection.FindOne(context.TODO(), bson.M{"userID": userID}).Decode(&userSettings)
	if err == mongo.ErrNoDocuments {
		userSettings = getDefaultSettings(userID)
		_, _ = db.SettingsCollection.InsertOne(context.TODO(), userSettings)
	} else if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, userSettings)
}

// GET /api/settings/quiet-hours
func GetQuietHours(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, QuietHoursFor(r.Context(), userID))
}

// PUT /api/settings/quiet-hours
func UpdateQuietHours(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var quiet models.QuietHours
	if err := json.NewDecoder(r.Body).Decode(&quiet); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if quiet.Start < 0 || quiet.Start > 23 || quiet.End < 0 || quiet.End > 23 {
		utils.RespondWithError(w, http.StatusBadRequest, "Quiet hours must be between 0 and 23")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := db.SettingsCollection.UpdateOne(ctx,
		bson.M{"userID": userID},
		bson.M{"$set": bson.M{"quiet_hours": quiet}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update quiet hours")
		return
	}

	// drop the cached window so the dispatcher sees the change
	if err := rdx.RdxDel(quietCacheKey(userID)); err != nil {
		log.Printf("Failed to invalidate quiet-hours cache for %s: %v", userID, err)
	}

	utils.RespondWithJSON(w, http.StatusOK, quiet)
}

func quietCacheKey(userID string) string {
	return "quiet:" + userID
}

// QuietHoursFor returns the user's quiet window, from the Redis cache when
// warm, falling back to the settings document and then to defaults.
func QuietHoursFor(ctx context.Context, userID string) models.QuietHours {
	if cached, err := rdx.RdxGet(quietCacheKey(userID)); err == nil {
		var quiet models.QuietHours
		if _, err := fmt.Sscanf(cached, "%d:%d", &quiet.Start, &quiet.End); err == nil {
			return quiet
		}
	}

	var userSettings UserSettings
	err := db.SettingsCollection.FindOne(ctx, bson.M{"userID": userID}).Decode(&userSettings)
	if err != nil {
		return getDefaultSettings(userID).QuietHours
	}

	quiet := userSettings.QuietHours
	cacheVal := fmt.Sprintf("%d:%d", quiet.Start, quiet.End)
	if err := rdx.SetWithExpiry(quietCacheKey(userID), cacheVal, 10*time.Minute); err != nil {
		log.Printf("Failed to cache quiet hours for %s: %v", userID, err)
	}
	return quiet
}
