package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"air-trip-planner/internal/shared"
	"air-trip-planner/internal/trip"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPlanner struct {
	mock.Mock
}

func (m *mockPlanner) GeneratePlan(ctx context.Context, req trip.PlanRequest) (trip.Itinerary, []shared.AgentMeta, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(trip.Itinerary), args.Get(1).([]shared.AgentMeta), args.Error(2)
}

const requestBody = `{
	"destination": "도쿄",
	"duration": "3",
	"budget": "150000",
	"transport": ["지하철", "도보"],
	"style": "맛집",
	"preference": "라멘"
}`

func newTestServer(p PlanGenerator, origins ...string) http.Handler {
	return New(zerolog.Nop(), Config{Addr: ":0", AllowedOrigins: origins}, p).Handler()
}

func TestRoot(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&mockPlanner{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, WelcomeMessage, body["message"])
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&mockPlanner{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"goroutines"`)
}

func TestMetrics(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&mockPlanner{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestGenerateTripPlan(t *testing.T) {
	want := trip.Itinerary{
		Title:              "도쿄 라멘 투어",
		RealityScore:       4,
		RealityReason:      "충분",
		TotalEstimatedCost: "약 45만 원",
		PlannerComment:     "스이카 카드를 준비하세요",
		DailyPlans:         []trip.DayPlan{{Day: 1, Theme: "신주쿠", Activities: []trip.Activity{}}},
	}

	p := &mockPlanner{}
	p.On("GeneratePlan", mock.Anything, trip.PlanRequest{
		Destination: "도쿄",
		Duration:    "3",
		Budget:      "150000",
		Transport:   []string{"지하철", "도보"},
		Style:       "맛집",
		Preference:  "라멘",
	}).Return(want, []shared.AgentMeta{{AgentName: "gemini-2.0-flash-exp"}}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate-trip-plan", strings.NewReader(requestBody))
	req.Header.Set("Content-Type", "application/json")
	newTestServer(p).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	got, err := trip.DecodeItinerary(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	p.AssertExpectations(t)
}

func TestGenerateTripPlan_AllModelsFailed(t *testing.T) {
	p := &mockPlanner{}
	p.On("GeneratePlan", mock.Anything, mock.Anything).
		Return(trip.Itinerary{}, []shared.AgentMeta{{}, {}}, errors.New("all text generators failed"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate-trip-plan", strings.NewReader(requestBody))
	newTestServer(p).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got, err := trip.DecodeItinerary(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "오류 발생", got.Title)
	assert.Equal(t, "0원", got.TotalEstimatedCost)
	assert.Empty(t, got.DailyPlans)
}

func TestGenerateTripPlan_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"not json", `{`, http.StatusBadRequest},
		{"missing transport", `{"destination":"도쿄","duration":"3","budget":"1000","transport":[]}`, http.StatusUnprocessableEntity},
		{"missing destination", `{"duration":"3","budget":"1000","transport":["도보"]}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &mockPlanner{}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/generate-trip-plan", strings.NewReader(tt.body))
			newTestServer(p).ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			p.AssertNotCalled(t, "GeneratePlan", mock.Anything, mock.Anything)
		})
	}
}

func TestCORS(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		newTestServer(&mockPlanner{}, "*").ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow list", func(t *testing.T) {
		h := newTestServer(&mockPlanner{}, "http://localhost:3000")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		h.ServeHTTP(rec, req)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
