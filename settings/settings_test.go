package settings

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"solenne/middleware"
)

// Authenticate waves websocket upgrade requests through without setting a
// user id; handlers must answer 401 instead of trusting the context.
func TestQuietHoursRejectsUnauthenticatedUpgrade(t *testing.T) {
	cases := []struct {
		name    string
		method  string
		handler http.HandlerFunc
	}{
		{"get quiet hours", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
			middleware.Authenticate(GetQuietHours)(w, r, nil)
		}},
		{"update quiet hours", http.MethodPut, func(w http.ResponseWriter, r *http.Request) {
			middleware.Authenticate(UpdateQuietHours)(w, r, nil)
		}},
		{"get settings", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
			middleware.Authenticate(GetUserSettings)(w, r, nil)
		}},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, "/api/settings/quiet-hours", strings.NewReader(`{"start":22,"end":8}`))
		req.Header.Set("Connection", "Upgrade")
		req.Header.Set("Upgrade", "websocket")
		rec := httptest.NewRecorder()

		tc.handler(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 for upgrade request without token, got %d", tc.name, rec.Code)
		}
	}
}
