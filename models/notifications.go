package models

import "time"

type Notification struct {
	ID              string     `json:"id" bson:"id"`
	UserID          string     `json:"user_id" bson:"user_id"`
	ScheduledPlanID string     `json:"scheduled_plan_id,omitempty" bson:"scheduled_plan_id,omitempty"`
	Type            string     `json:"notification_type" bson:"notification_type"`
	Title           string     `json:"title" bson:"title"`
	Message         string     `json:"message" bson:"message"`
	ScheduledFor    time.Time  `json:"scheduled_for" bson:"scheduled_for"`
	SentAt          *time.Time `json:"sent_at" bson:"sent_at"` // nil means pending
	DeliveryMethod  string     `json:"delivery_method" bson:"delivery_method"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
}

const (
	NotifyPreDate2Day          = "pre_date_2day"
	NotifyDayOfMorning         = "day_of_morning"
	Notify2HrsBefore           = "2hrs_before"
	NotifyPostDate             = "post_date"
	NotifyWeatherAlert         = "weather_alert"
	NotifyConfirmationReminder = "confirmation_reminder"
	NotifyShareResponse        = "share_response"
)

// QuietHours is a daily do-not-disturb window in wall-clock hours.
// Start > End means the window wraps midnight (e.g. 22 → 8).
type QuietHours struct {
	Start int `json:"start" bson:"start"`
	End   int `json:"end" bson:"end"`
}

// Contains reports whether the given hour falls inside [Start, End).
func (q QuietHours) Contains(hour int) bool {
	if q.Start == q.End {
		return false
	}
	if q.Start < q.End {
		return hour >= q.Start && hour < q.End
	}
	return hour >= q.Start || hour < q.End
}
