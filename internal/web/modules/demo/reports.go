package demo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/insight-hunter/insight-hunter/internal/web/platform/httpx"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// reportCreate is the strict report creation payload. Unknown fields are
// rejected by the decoder; includeForecast defaults to false.
type reportCreate struct {
	Name            string `json:"name"`
	Period          string `json:"period"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	IncludeForecast bool   `json:"includeForecast"`
}

func (rc reportCreate) validate() error {
	if n := len(strings.TrimSpace(rc.Name)); n < 3 || n > 64 {
		return fmt.Errorf("name must be 3 to 64 characters")
	}
	switch rc.Period {
	case "M", "Q", "Y":
	default:
		return fmt.Errorf("period must be one of M, Q, Y")
	}
	for field, value := range map[string]string{"startDate": rc.StartDate, "endDate": rc.EndDate} {
		if !isoDate.MatchString(value) {
			return fmt.Errorf("%s must be an ISO date (YYYY-MM-DD)", field)
		}
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return fmt.Errorf("%s is not a valid date", field)
		}
	}
	return nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func (s service) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	if s.tokens == nil {
		_ = httpx.WriteJSONError(w, http.StatusServiceUnavailable, "report API is not configured")
		return
	}
	raw := bearerToken(r)
	if raw == "" {
		_ = httpx.WriteJSONError(w, http.StatusUnauthorized, "bearer token required")
		return
	}
	if _, err := s.tokens.Verify(raw); err != nil {
		_ = httpx.WriteJSONError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	var payload reportCreate
	if err := decoder.Decode(&payload); err != nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, "malformed report payload")
		return
	}
	if err := payload.validate(); err != nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	_ = httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"reportId": uuid.NewString(),
		"input":    payload,
	})
}
