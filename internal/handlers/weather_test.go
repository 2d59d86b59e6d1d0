package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/repository"
	"github.com/namefreezers/weather-lookup/internal/services"
	"github.com/namefreezers/weather-lookup/internal/weather/openweathermap"
	"github.com/namefreezers/weather-lookup/internal/weather/types"
)

func init() { gin.SetMode(gin.TestMode) }

type stubService struct {
	w       types.Weather
	err     error
	history []repository.Lookup
	histErr error
	gotCity string
}

func (s *stubService) Lookup(_ context.Context, city string) (types.Weather, error) {
	s.gotCity = city
	return s.w, s.err
}

func (s *stubService) History(context.Context, int) ([]repository.Lookup, error) {
	return s.history, s.histErr
}

func serve(t *testing.T, svc services.LookupService, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := NewRouter(svc, zap.NewNop())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestWeatherHandler_OK(t *testing.T) {
	svc := &stubService{w: types.Weather{City: "Paris", TemperatureF: 80.3333, Description: "clear sky", Emoji: "☀️", ConditionCode: 800}}
	rec := serve(t, svc, "/api/weather?city=Paris")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body)
	}
	var got weatherResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Temperature != "80.33 °F" || got.Emoji != "☀️" || got.Description != "clear sky" || got.ConditionCode != 800 {
		t.Errorf("response = %+v", got)
	}
	if svc.gotCity != "Paris" {
		t.Errorf("service got city %q", svc.gotCity)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing X-Request-ID response header")
	}
}

func TestWeatherHandler_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"empty", openweathermap.ErrEmptyCity, http.StatusBadRequest},
		{"not found", &types.LookupError{Kind: types.KindClient, StatusCode: 404, Message: openweathermap.MsgCityNotFound}, http.StatusNotFound},
		{"bad request", &types.LookupError{Kind: types.KindClient, StatusCode: 400, Message: openweathermap.MsgBadRequest}, http.StatusBadRequest},
		{"bad key", &types.LookupError{Kind: types.KindClient, StatusCode: 401, Message: openweathermap.MsgInvalidAPIKey}, http.StatusBadGateway},
		{"server", &types.LookupError{Kind: types.KindServer, StatusCode: 503, Message: openweathermap.MsgUnavailable}, http.StatusBadGateway},
		{"timeout", &types.LookupError{Kind: types.KindTransport, Message: openweathermap.MsgTimeout, Err: openweathermap.ErrTimeout}, http.StatusGatewayTimeout},
		{"timeout reworded", &types.LookupError{Kind: types.KindTransport, Message: "Took too long.", Err: fmt.Errorf("%w: %w", openweathermap.ErrTimeout, context.DeadlineExceeded)}, http.StatusGatewayTimeout},
		{"timeout message only", &types.LookupError{Kind: types.KindTransport, Message: openweathermap.MsgTimeout}, http.StatusBadGateway},
		{"network", &types.LookupError{Kind: types.KindTransport, Message: openweathermap.MsgNetwork}, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, &stubService{err: tc.err}, "/api/weather?city=x")
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Error != types.AsLookupError(tc.err).Message {
				t.Errorf("error = %q", body.Error)
			}
		})
	}
}

func TestRequestID_Propagated(t *testing.T) {
	r := NewRouter(&stubService{}, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestHistoryHandler(t *testing.T) {
	id := uuid.New()
	svc := &stubService{history: []repository.Lookup{
		{
			ID:            id,
			City:          "Paris",
			TemperatureF:  sql.NullFloat64{Float64: 80.33, Valid: true},
			Description:   "clear sky",
			Emoji:         "☀️",
			ConditionCode: sql.NullInt32{Int32: 800, Valid: true},
			CreatedAt:     time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
		},
		{ID: uuid.New(), City: "Atlantis", ErrorKind: "client", ErrorMessage: "City not found."},
	}}
	rec := serve(t, svc, "/api/history?limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body)
	}
	var items []historyItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != id.String() || items[0].TemperatureF == nil || *items[0].ConditionCode != 800 {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].TemperatureF != nil || items[1].ErrorMessage != "City not found." {
		t.Errorf("second item = %+v", items[1])
	}
}

func TestHistoryHandler_Disabled(t *testing.T) {
	rec := serve(t, &stubService{histErr: services.ErrHistoryDisabled}, "/api/history")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHistoryHandler_BadLimit(t *testing.T) {
	rec := serve(t, &stubService{}, "/api/history?limit=1000")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
