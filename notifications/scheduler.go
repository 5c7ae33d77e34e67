package notifications

import (
	"fmt"
	"time"

	"solenne/models"
	"solenne/utils"
)

const (
	preDateHour      = 10
	morningHour      = 8
	postDateHour     = 10
	weatherAlertHour = 18
	confirmationHour = 14
)

// Schedule generates the full reminder set for a freshly scheduled plan.
// Idempotent for identical inputs; the caller guards against generating a
// second set for the same plan.
func Schedule(plan models.ScheduledPlan, quiet models.QuietHours, now time.Time) ([]models.Notification, error) {
	planTime, err := combine(plan.ScheduledDate, plan.ScheduledTime, now.Location())
	if err != nil {
		return nil, err
	}

	var out []models.Notification

	add := func(kind, title, message string, at time.Time) {
		out = append(out, models.Notification{
			ID:              utils.GetUUID(),
			UserID:          plan.UserID,
			ScheduledPlanID: plan.PlanID,
			Type:            kind,
			Title:           title,
			Message:         message,
			ScheduledFor:    at,
			SentAt:          nil,
			DeliveryMethod:  "app",
			CreatedAt:       now,
		})
	}

	// Two days ahead, only while it is still ahead.
	if twoDaysOut := planTime.AddDate(0, 0, -2); twoDaysOut.After(now) {
		add(models.NotifyPreDate2Day,
			"Date night in 2 days!",
			fmt.Sprintf("%s and %s are coming up on %s.", plan.RestaurantName, plan.ActivityName, plan.ScheduledDate),
			atHour(twoDaysOut, clampHour(preDateHour, quiet)))
	}

	add(models.NotifyDayOfMorning,
		"Tonight's the night!",
		fmt.Sprintf("Dinner at %s at %s, then %s.", plan.RestaurantName, plan.ScheduledTime, plan.ActivityName),
		atHour(planTime, clampHour(morningHour, quiet)))

	// Fixed offset, deliberately not clamped; the dispatch pass re-checks
	// quiet hours at send time.
	add(models.Notify2HrsBefore,
		"2 hours to go",
		fmt.Sprintf("Time to get ready for %s.", plan.RestaurantName),
		planTime.Add(-2*time.Hour))

	add(models.NotifyPostDate,
		"How was your date night?",
		"Rate your evening and save your favorite spots.",
		atHour(planTime.AddDate(0, 0, 1), clampHour(postDateHour, quiet)))

	if plan.WeatherForecast != nil && badWeather(plan.WeatherForecast.Condition) {
		if at := atHour(planTime.AddDate(0, 0, -1), weatherAlertHour); at.After(now) {
			add(models.NotifyWeatherAlert,
				"Weather heads up",
				fmt.Sprintf("Forecast for your date night: %s. Plan accordingly!", plan.WeatherForecast.Condition),
				at)
		}
	}

	if len(plan.ConfirmationNumbers) == 0 {
		if at := atHour(planTime.AddDate(0, 0, -1), confirmationHour); at.After(now) {
			add(models.NotifyConfirmationReminder,
				"Don't forget to book",
				fmt.Sprintf("No reservations on file yet for %s.", plan.RestaurantName),
				at)
		}
	}

	return out, nil
}

// NewShareResponse builds the ad-hoc notification sent when someone answers
// a shared plan invite. Due immediately.
func NewShareResponse(ownerID, planID, fromUsername string, accepted bool, now time.Time) models.Notification {
	verdict := "is in"
	if !accepted {
		verdict = "can't make it"
	}
	return models.Notification{
		ID:              utils.GetUUID(),
		UserID:          ownerID,
		ScheduledPlanID: planID,
		Type:            models.NotifyShareResponse,
		Title:           "Date night reply",
		Message:         fmt.Sprintf("%s %s for your date night.", fromUsername, verdict),
		ScheduledFor:    now,
		DeliveryMethod:  "app",
		CreatedAt:       now,
	}
}

func badWeather(condition string) bool {
	return condition == "rain" || condition == "snow"
}

// clampHour shifts a preferred hour out of the quiet window by moving it to
// the window's end.
func clampHour(hour int, quiet models.QuietHours) int {
	if quiet.Contains(hour) {
		return quiet.End
	}
	return hour
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

func combine(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid scheduled date %q: %w", date, err)
	}
	hm, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid scheduled time %q: %w", clock, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), hm.Hour(), hm.Minute(), 0, 0, loc), nil
}
