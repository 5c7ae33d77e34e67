package availability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"solenne/middleware"
	"solenne/models"
)

// The check endpoint is usable without a token: anonymous callers get the
// hours checks, just no proximity conflicts against saved plans.
func TestCheckAvailabilityAnonymous(t *testing.T) {
	body := `{
		"scheduledDate": "2025-09-09",
		"scheduledTime": "21:00",
		"restaurantHours": {"periods": [
			{"open": {"day": 2, "time": "1700"}, "close": {"day": 2, "time": "2200"}}
		]}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/plans/check-availability", strings.NewReader(body))
	rec := httptest.NewRecorder()

	middleware.OptionalAuth(CheckAvailability)(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without a token, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp checkResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Status != models.StatusLimited {
		t.Fatalf("expected limited status, got %q", resp.Status)
	}
	if len(resp.Conflicts) != 1 || resp.Conflicts[0].Type != models.ConflictRestaurantClosing {
		t.Fatalf("expected one restaurant_closing conflict, got %+v", resp.Conflicts)
	}
}
