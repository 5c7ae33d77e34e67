package models

import "time"

// Place is a candidate venue from an upstream search. Ephemeral: consumed
// by the planner, never persisted as-is.
type Place struct {
	ID           string  `json:"id" bson:"id"`
	Name         string  `json:"name" bson:"name"`
	Rating       float64 `json:"rating" bson:"rating"`
	TotalRatings int     `json:"totalRatings" bson:"totalRatings"`
	Lat          float64 `json:"lat" bson:"lat"`
	Lng          float64 `json:"lng" bson:"lng"`
	Address      string  `json:"address" bson:"address"`
	PriceLevel   *int    `json:"priceLevel,omitempty" bson:"priceLevel,omitempty"`
}

type Conflict struct {
	Type       string `json:"type" bson:"type"`
	Message    string `json:"message" bson:"message"`
	Suggestion string `json:"suggestion,omitempty" bson:"suggestion,omitempty"`
	Severity   string `json:"severity" bson:"severity"`
}

const (
	ConflictRestaurantClosing = "restaurant_closing"
	ConflictRestaurantClosed  = "restaurant_closed"
	ConflictActivityTiming    = "activity_timing"
	ConflictDateProximity     = "date_proximity"
)

const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

const (
	StatusAvailable = "available"
	StatusLimited   = "limited"
	StatusClosed    = "closed"
)

type WeatherForecast struct {
	Condition string  `json:"condition" bson:"condition"`
	High      float64 `json:"high,omitempty" bson:"high,omitempty"`
	Low       float64 `json:"low,omitempty" bson:"low,omitempty"`
	Summary   string  `json:"summary,omitempty" bson:"summary,omitempty"`
}

// ScheduledPlan is the durable date-night record: a paired restaurant and
// activity with hours snapshots taken at scheduling time.
type ScheduledPlan struct {
	PlanID              string            `json:"planid" bson:"planid"`
	UserID              string            `json:"user_id" bson:"user_id"`
	RestaurantID        string            `json:"restaurant_id" bson:"restaurant_id"`
	RestaurantName      string            `json:"restaurant_name" bson:"restaurant_name"`
	RestaurantAddress   string            `json:"restaurant_address,omitempty" bson:"restaurant_address,omitempty"`
	RestaurantHours     *HoursData        `json:"restaurant_hours,omitempty" bson:"restaurant_hours,omitempty"`
	ActivityID          string            `json:"activity_id" bson:"activity_id"`
	ActivityName        string            `json:"activity_name" bson:"activity_name"`
	ActivityAddress     string            `json:"activity_address,omitempty" bson:"activity_address,omitempty"`
	ActivityHours       *HoursData        `json:"activity_hours,omitempty" bson:"activity_hours,omitempty"`
	ScheduledDate       string            `json:"scheduled_date" bson:"scheduled_date"` // "2006-01-02"
	ScheduledTime       string            `json:"scheduled_time" bson:"scheduled_time"` // "HH:MM"
	AvailabilityStatus  string            `json:"availability_status" bson:"availability_status"`
	ConflictWarnings    []Conflict        `json:"conflict_warnings" bson:"conflict_warnings"`
	WeatherForecast     *WeatherForecast  `json:"weather_forecast,omitempty" bson:"weather_forecast,omitempty"`
	ConfirmationNumbers map[string]string `json:"confirmation_numbers,omitempty" bson:"confirmation_numbers,omitempty"`
	Status              string            `json:"status" bson:"status"` // scheduled, completed, cancelled
	UserRating          float64           `json:"user_rating,omitempty" bson:"user_rating,omitempty"`
	CreatedAt           time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at" bson:"updated_at"`
}

const (
	PlanStatusScheduled = "scheduled"
	PlanStatusCompleted = "completed"
	PlanStatusCancelled = "cancelled"
)
