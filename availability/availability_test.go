package availability

import (
	"encoding/json"
	"strings"
	"testing"

	"solenne/models"
)

// 2025-09-09 is a Tuesday.
const tuesday = "2025-09-09"

func tuesdayHours(open, close string) *models.HoursData {
	return &models.HoursData{
		Kind: models.HoursPeriods,
		Periods: []models.Period{
			{
				Open:  models.TimePoint{Day: 2, Time: open},
				Close: models.TimePoint{Day: 2, Time: close},
			},
		},
	}
}

func TestRestaurantClosingWarning(t *testing.T) {
	res, err := Check(tuesday, "21:00", tuesdayHours("1700", "2200"), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Status != models.StatusLimited {
		t.Fatalf("expected status limited, got %s", res.Status)
	}
	if len(res.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(res.Conflicts))
	}

	c := res.Conflicts[0]
	if c.Type != models.ConflictRestaurantClosing || c.Severity != models.SeverityWarning {
		t.Fatalf("unexpected conflict: %+v", c)
	}
	// max(21:00−60, close−150) = max(20:00, 19:30) = 20:00
	if !strings.Contains(c.Suggestion, "20:00") {
		t.Fatalf("expected suggested start 20:00, got %q", c.Suggestion)
	}
}

func TestRestaurantClosedDay(t *testing.T) {
	// hours only cover Monday; no open_now fallback
	hours := &models.HoursData{
		Kind: models.HoursPeriods,
		Periods: []models.Period{
			{
				Open:  models.TimePoint{Day: 1, Time: "1700"},
				Close: models.TimePoint{Day: 1, Time: "2200"},
			},
		},
	}

	res, err := Check(tuesday, "19:00", hours, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Status != models.StatusClosed {
		t.Fatalf("expected status closed, got %s", res.Status)
	}
	if len(res.Conflicts) != 1 || res.Conflicts[0].Type != models.ConflictRestaurantClosed {
		t.Fatalf("expected restaurant_closed conflict, got %+v", res.Conflicts)
	}
	if res.Conflicts[0].Severity != models.SeverityError {
		t.Fatalf("expected error severity, got %s", res.Conflicts[0].Severity)
	}
}

func TestOpenNowFlagIsPermissive(t *testing.T) {
	openNow := true
	hours := &models.HoursData{Kind: models.HoursOpenNow, OpenNow: &openNow}

	res, err := Check(tuesday, "19:00", hours, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != models.StatusAvailable || len(res.Conflicts) != 0 {
		t.Fatalf("open_now only data should produce no conflicts, got %+v", res)
	}
}

func TestMissingHoursProduceNoConflict(t *testing.T) {
	res, err := Check(tuesday, "19:00", nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != models.StatusAvailable || len(res.Conflicts) != 0 {
		t.Fatalf("missing hours should be permissive, got %+v", res)
	}
}

func TestActivityTimingInfo(t *testing.T) {
	// dinner at 17:00 → expected activity arrival 18:45, doors at 20:00
	res, err := Check(tuesday, "17:00", nil, tuesdayHours("2000", "2300"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Status != models.StatusAvailable {
		t.Fatalf("info conflicts must not escalate status, got %s", res.Status)
	}
	if len(res.Conflicts) != 1 || res.Conflicts[0].Type != models.ConflictActivityTiming {
		t.Fatalf("expected activity_timing conflict, got %+v", res.Conflicts)
	}
}

func TestDateProximity(t *testing.T) {
	res, err := Check(tuesday, "19:00", nil, nil, []string{
		"2025-09-08", // 1 day before: conflict
		"2025-09-09", // same date: excluded
		"2025-09-13", // 4 days out: no conflict
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Conflicts) != 1 {
		t.Fatalf("expected exactly 1 proximity conflict, got %d", len(res.Conflicts))
	}
	c := res.Conflicts[0]
	if c.Type != models.ConflictDateProximity || c.Severity != models.SeverityInfo {
		t.Fatalf("unexpected conflict: %+v", c)
	}
	if res.Status != models.StatusAvailable {
		t.Fatalf("proximity is informational, got status %s", res.Status)
	}
}

func TestStatusPrecedence(t *testing.T) {
	// closed restaurant (error) plus a proximity info conflict: closed wins
	hours := &models.HoursData{
		Kind: models.HoursPeriods,
		Periods: []models.Period{
			{
				Open:  models.TimePoint{Day: 1, Time: "1700"},
				Close: models.TimePoint{Day: 1, Time: "2200"},
			},
		},
	}

	res, err := Check(tuesday, "19:00", hours, nil, []string{"2025-09-10"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(res.Conflicts))
	}
	if res.Status != models.StatusClosed {
		t.Fatalf("error severity must resolve to closed, got %s", res.Status)
	}
}

func TestMalformedTimeRejected(t *testing.T) {
	if _, err := Check(tuesday, "nine pm", nil, nil, nil); err == nil {
		t.Fatal("expected an error for a malformed time")
	}
	if _, err := Check("09/09/2025", "19:00", nil, nil, nil); err == nil {
		t.Fatal("expected an error for a malformed date")
	}
}

func TestHoursDataTagging(t *testing.T) {
	cases := []struct {
		payload string
		want    models.HoursKind
	}{
		{`{"periods":[{"open":{"day":2,"time":"1700"},"close":{"day":2,"time":"2200"}}]}`, models.HoursPeriods},
		{`{"open_now":true}`, models.HoursOpenNow},
		{`{}`, models.HoursNone},
	}

	for _, tc := range cases {
		var h models.HoursData
		if err := json.Unmarshal([]byte(tc.payload), &h); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.payload, err)
		}
		if h.Kind != tc.want {
			t.Fatalf("payload %s: expected kind %d, got %d", tc.payload, tc.want, h.Kind)
		}
	}
}
