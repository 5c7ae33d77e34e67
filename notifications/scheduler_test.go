package notifications

import (
	"testing"
	"time"

	"solenne/models"
)

func basePlan() models.ScheduledPlan {
	return models.ScheduledPlan{
		PlanID:         "p1",
		UserID:         "u1",
		RestaurantName: "Trattoria",
		ActivityName:   "Jazz Club",
		ScheduledDate:  "2025-09-12",
		ScheduledTime:  "19:00",
		Status:         models.PlanStatusScheduled,
	}
}

func typesOf(batch []models.Notification) map[string]models.Notification {
	m := make(map[string]models.Notification, len(batch))
	for _, n := range batch {
		m[n.Type] = n
	}
	return m
}

func TestScheduleFullSet(t *testing.T) {
	// three days before the date, rainy forecast, nothing booked yet
	now := time.Date(2025, 9, 9, 12, 0, 0, 0, time.UTC)
	plan := basePlan()
	plan.WeatherForecast = &models.WeatherForecast{Condition: "rain"}

	quiet := models.QuietHours{Start: 22, End: 8}
	batch, err := Schedule(plan, quiet, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(batch) != 6 {
		t.Fatalf("expected 6 notifications, got %d", len(batch))
	}

	byType := typesOf(batch)
	for _, want := range []string{
		models.NotifyPreDate2Day,
		models.NotifyDayOfMorning,
		models.Notify2HrsBefore,
		models.NotifyPostDate,
		models.NotifyWeatherAlert,
		models.NotifyConfirmationReminder,
	} {
		if _, ok := byType[want]; !ok {
			t.Fatalf("missing notification type %s", want)
		}
	}

	for _, n := range batch {
		if n.SentAt != nil {
			t.Fatalf("%s inserted with sent_at set", n.Type)
		}
		if n.ScheduledPlanID != "p1" || n.UserID != "u1" {
			t.Fatalf("%s not bound to the plan/user", n.Type)
		}
	}

	// spot-check the fixed times
	if got := byType[models.Notify2HrsBefore].ScheduledFor; !got.Equal(time.Date(2025, 9, 12, 17, 0, 0, 0, time.UTC)) {
		t.Fatalf("2hrs_before at %v", got)
	}
	if got := byType[models.NotifyWeatherAlert].ScheduledFor; !got.Equal(time.Date(2025, 9, 11, 18, 0, 0, 0, time.UTC)) {
		t.Fatalf("weather_alert at %v", got)
	}
	if got := byType[models.NotifyConfirmationReminder].ScheduledFor; !got.Equal(time.Date(2025, 9, 11, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("confirmation_reminder at %v", got)
	}
	if got := byType[models.NotifyPreDate2Day].ScheduledFor; !got.Equal(time.Date(2025, 9, 10, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("pre_date_2day at %v", got)
	}
	if got := byType[models.NotifyPostDate].ScheduledFor; !got.Equal(time.Date(2025, 9, 13, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("post_date at %v", got)
	}
}

func TestScheduleSkipsPastAndSatisfiedRows(t *testing.T) {
	// the evening before the date: the 2-day reminder window has passed,
	// a reservation exists, and the sky is clear
	now := time.Date(2025, 9, 11, 20, 0, 0, 0, time.UTC)
	plan := basePlan()
	plan.ConfirmationNumbers = map[string]string{"restaurant": "R-123"}

	batch, err := Schedule(plan, models.QuietHours{Start: 22, End: 8}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byType := typesOf(batch)
	if _, ok := byType[models.NotifyPreDate2Day]; ok {
		t.Fatal("pre_date_2day should be skipped when T-2d has passed")
	}
	if _, ok := byType[models.NotifyWeatherAlert]; ok {
		t.Fatal("weather_alert requires rain or snow")
	}
	if _, ok := byType[models.NotifyConfirmationReminder]; ok {
		t.Fatal("confirmation_reminder should be skipped when a booking exists")
	}
	if len(batch) != 3 {
		t.Fatalf("expected day_of_morning, 2hrs_before, post_date only; got %d", len(batch))
	}
}

func TestQuietHourClamp(t *testing.T) {
	quiet := models.QuietHours{Start: 22, End: 8}

	// hour 10 is outside the window: unchanged
	if got := clampHour(10, quiet); got != 10 {
		t.Fatalf("expected 10 unclamped, got %d", got)
	}
	// hour 23 is inside the wrapped window: clamps to the window end
	if got := clampHour(23, quiet); got != 8 {
		t.Fatalf("expected clamp to 8, got %d", got)
	}
	// boundary: the window end itself is outside [start, end)
	if got := clampHour(8, quiet); got != 8 {
		t.Fatalf("expected 8 unclamped, got %d", got)
	}
	// non-wrapping window
	day := models.QuietHours{Start: 9, End: 17}
	if got := clampHour(12, day); got != 17 {
		t.Fatalf("expected clamp to 17, got %d", got)
	}
}

func TestClampedMorningReminder(t *testing.T) {
	// quiet window covering the morning shifts day_of_morning to its end
	now := time.Date(2025, 9, 9, 12, 0, 0, 0, time.UTC)
	batch, err := Schedule(basePlan(), models.QuietHours{Start: 0, End: 9}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	morning, ok := typesOf(batch)[models.NotifyDayOfMorning]
	if !ok {
		t.Fatal("day_of_morning missing")
	}
	if morning.ScheduledFor.Hour() != 9 {
		t.Fatalf("expected morning reminder clamped to 9, got hour %d", morning.ScheduledFor.Hour())
	}
}

func TestShareResponseNotification(t *testing.T) {
	now := time.Date(2025, 9, 9, 12, 0, 0, 0, time.UTC)
	n := NewShareResponse("owner1", "p1", "alex", true, now)

	if n.Type != models.NotifyShareResponse {
		t.Fatalf("unexpected type %s", n.Type)
	}
	if !n.ScheduledFor.Equal(now) {
		t.Fatal("share responses are due immediately")
	}
	if n.SentAt != nil {
		t.Fatal("share responses start pending")
	}
}
