package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"solenne/models"
)

const (
	dinnerMinutes     = 90  // assumed dinner duration
	travelMinutes     = 15  // restaurant → activity
	proximityWindow   = 2   // days either side counted as "close"
	suggestedShiftMin = 60  // how far back we suggest moving a tight start
	suggestedFloorMin = 150 // never suggest later than close − 150
)

type Result struct {
	Status    string            `json:"status"`
	Conflicts []models.Conflict `json:"conflicts"`
}

// Check evaluates a proposed plan time against venue hours snapshots and the
// user's other plan dates. Deterministic; never mutates its inputs.
func Check(scheduledDate, scheduledTime string, restaurantHours, activityHours *models.HoursData, siblingDates []string) (Result, error) {
	schedMin, err := parseClock(scheduledTime)
	if err != nil {
		return Result{}, fmt.Errorf("invalid scheduled time %q: %w", scheduledTime, err)
	}

	day, planDate, err := weekdayOf(scheduledDate)
	if err != nil {
		return Result{}, fmt.Errorf("invalid scheduled date %q: %w", scheduledDate, err)
	}

	var conflicts []models.Conflict
	conflicts = append(conflicts, restaurantConflicts(schedMin, day, restaurantHours)...)
	conflicts = append(conflicts, activityConflicts(schedMin, day, activityHours)...)
	conflicts = append(conflicts, proximityConflicts(planDate, siblingDates)...)

	return Result{Status: resolveStatus(conflicts), Conflicts: conflicts}, nil
}

func restaurantConflicts(schedMin, day int, hours *models.HoursData) []models.Conflict {
	// Missing hours data is permissive: no payload means no conflict.
	if hours == nil || hours.Kind == models.HoursNone || hours.Kind == models.HoursOpenNow {
		return nil
	}

	period := hours.PeriodFor(day)
	if period == nil {
		if hours.OpenNow == nil {
			return []models.Conflict{{
				Type:       models.ConflictRestaurantClosed,
				Message:    "The restaurant appears to be closed on your chosen day.",
				Suggestion: "Pick a different day or choose another restaurant.",
				Severity:   models.SeverityError,
			}}
		}
		return nil
	}

	closeMin, err := parseHHMM(period.Close.Time)
	if err != nil {
		return nil
	}

	if schedMin+dinnerMinutes > closeMin {
		suggested := schedMin - suggestedShiftMin
		if floor := closeMin - suggestedFloorMin; suggested < floor {
			suggested = floor
		}
		return []models.Conflict{{
			Type:       models.ConflictRestaurantClosing,
			Message:    fmt.Sprintf("The restaurant closes at %s, which may cut dinner short.", formatClock(closeMin)),
			Suggestion: fmt.Sprintf("Consider starting at %s instead.", formatClock(suggested)),
			Severity:   models.SeverityWarning,
		}}
	}
	return nil
}

func activityConflicts(schedMin, day int, hours *models.HoursData) []models.Conflict {
	if hours == nil || hours.Kind != models.HoursPeriods {
		return nil
	}

	period := hours.PeriodFor(day)
	if period == nil {
		return nil
	}

	openMin, err := parseHHMM(period.Open.Time)
	if err != nil {
		return nil
	}

	// dinner plus travel puts you at the activity door
	expectedStart := schedMin + dinnerMinutes + travelMinutes
	if expectedStart < openMin {
		return []models.Conflict{{
			Type:       models.ConflictActivityTiming,
			Message:    fmt.Sprintf("The activity opens at %s, after your expected arrival at %s.", formatClock(openMin), formatClock(expectedStart)),
			Suggestion: "You may have some time to fill between dinner and the activity.",
			Severity:   models.SeverityInfo,
		}}
	}
	return nil
}

func proximityConflicts(planDate time.Time, siblingDates []string) []models.Conflict {
	var conflicts []models.Conflict
	for _, s := range siblingDates {
		other, err := time.Parse("2006-01-02", s)
		if err != nil {
			continue
		}
		diff := int(planDate.Sub(other).Hours() / 24)
		if diff < 0 {
			diff = -diff
		}
		if diff == 0 || diff > proximityWindow {
			continue
		}
		conflicts = append(conflicts, models.Conflict{
			Type:       models.ConflictDateProximity,
			Message:    fmt.Sprintf("You have another date night on %s.", s),
			Suggestion: "No action needed, just a heads up.",
			Severity:   models.SeverityInfo,
		})
	}
	return conflicts
}

// resolveStatus: any error conflict wins, then any warning, else available.
func resolveStatus(conflicts []models.Conflict) string {
	status := models.StatusAvailable
	for _, c := range conflicts {
		switch c.Severity {
		case models.SeverityError:
			return models.StatusClosed
		case models.SeverityWarning:
			status = models.StatusLimited
		}
	}
	return status
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("out of range")
	}
	return h*60 + m, nil
}

// parseHHMM converts venue-hours digits like "2200" into minutes since
// midnight (hours = value/100, minutes = value%100).
func parseHHMM(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return (v/100)*60 + v%100, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// weekdayOf parses a bare calendar date without any timezone conversion, so
// the weekday can never shift near midnight in negative-offset zones.
func weekdayOf(date string) (int, time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, time.Time{}, err
	}
	return int(t.Weekday()), t, nil
}
