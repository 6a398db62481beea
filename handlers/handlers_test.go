package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/catalog"
	"app/models"
	"app/scheduler"
)

func testCatalog() *catalog.MemorySource {
	weekdays := models.WorkingHours{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		weekdays[day] = models.DayHours{IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"}
	}
	return catalog.NewMemorySource(
		models.ActivityCandidate{
			ActivityID:   "act_derma_001",
			Name:         "Gangnam Glow Dermatology",
			Theme:        "dermatology",
			WorkingHours: weekdays,
			Location:     models.Location{Name: "Gangnam Glow Clinic", Region: "Seoul"},
			Price:        models.Price{Currency: "USD", Amount: 320, Kind: models.PriceFixed},
			Active:       true,
		},
		models.ActivityCandidate{
			ActivityID:   "act_skin_002",
			Name:         "Myeongdong Skincare Lounge",
			Theme:        "skincare",
			WorkingHours: weekdays,
			Location:     models.Location{Name: "Myeongdong Lounge", Region: "Seoul"},
			Price:        models.Price{Currency: "USD", Amount: 180, Kind: models.PriceFixed},
			Active:       true,
		},
	)
}

// setupApp wires the shared handler collaborators against the in-memory
// catalog and registers the API routes.
func setupApp() *fiber.App {
	Catalog = testCatalog()
	Engine = scheduler.NewEngine(Catalog, nil, scheduler.DefaultConfig())
	Schedules = nil
	Planner = nil

	app := fiber.New()
	api := app.Group("/api/v1")
	schedule := api.Group("/schedule")
	schedule.Post("/generate", HandleGenerateSchedule)
	schedule.Post("/resolve", HandleResolveSchedule)
	schedule.Post("/ai-draft", HandleGenerateAIDraft)
	schedule.Get("/:scheduleId", HandleGetSchedule)
	activities := api.Group("/activities")
	activities.Get("/", HandleSearchActivities)
	activities.Get("/:activityId", HandleGetActivity)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHandleGenerateSchedule(t *testing.T) {
	app := setupApp()

	resp := postJSON(t, app, "/api/v1/schedule/generate", models.TripRequest{
		Region:       "Seoul",
		StartDate:    "2024-12-15",
		EndDate:      "2024-12-17",
		Themes:       []string{"dermatology", "skincare"},
		Budget:       2000,
		SolutionType: models.SolutionTopRanking,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string                `json:"status"`
		Data   models.ScheduleResult `json:"data"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, 3, body.Data.Summary.TotalDays)
	assert.Len(t, body.Data.Schedule, 3)
	assert.LessOrEqual(t, body.Data.Summary.EstimatedCost, 2000.0)
}

func TestHandleGenerateScheduleRejectsMalformedBody(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/generate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGenerateScheduleInvalidRequest(t *testing.T) {
	app := setupApp()

	resp := postJSON(t, app, "/api/v1/schedule/generate", models.TripRequest{
		Region:    "Seoul",
		StartDate: "2024-12-15",
		EndDate:   "2024-12-17",
		Budget:    2000,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Kind   string `json:"kind"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, string(scheduler.KindInvalidRequest), body.Kind)
}

func TestHandleResolveSchedule(t *testing.T) {
	app := setupApp()

	resp := postJSON(t, app, "/api/v1/schedule/resolve", fiber.Map{
		"trip": models.TripRequest{
			Region:       "Seoul",
			StartDate:    "2024-12-15",
			EndDate:      "2024-12-17",
			Themes:       []string{"dermatology"},
			Budget:       2000,
			SolutionType: models.SolutionTopRanking,
		},
		"schedule": []models.ScheduleDay{{
			Date:      "2024-12-16",
			DayNumber: 1,
			Items: []models.ScheduleItem{{
				ActivityID:    "act_derma_001",
				ScheduledTime: "07:00",
				Duration:      "2h",
				Status:        models.ItemPlanned,
			}},
		}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string                `json:"status"`
		Data   models.ScheduleResult `json:"data"`
	}
	decodeBody(t, resp, &body)
	item := body.Data.Schedule[0].Items[0]
	assert.Equal(t, "09:00", item.ScheduledTime)
	assert.Contains(t, item.Notes, "Time adjusted")
	assert.Equal(t, 320.0, body.Data.Summary.EstimatedCost)
}

func TestHandleResolveScheduleEmptySchedule(t *testing.T) {
	app := setupApp()

	resp := postJSON(t, app, "/api/v1/schedule/resolve", fiber.Map{
		"trip": models.TripRequest{
			Region:    "Seoul",
			StartDate: "2024-12-15",
			EndDate:   "2024-12-17",
			Themes:    []string{"dermatology"},
			Budget:    2000,
		},
		"schedule": []models.ScheduleDay{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetScheduleWithoutStore(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/some-id", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleSearchActivities(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activities/?theme=dermatology", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status     string                     `json:"status"`
		Data       []models.ActivityCandidate `json:"data"`
		Pagination struct {
			TotalItems int `json:"totalItems"`
		} `json:"pagination"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "act_derma_001", body.Data[0].ActivityID)
	assert.Equal(t, 1, body.Pagination.TotalItems)
}

func TestHandleGetActivityNotFound(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activities/act_nope", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleGenerateAIDraftWithoutPlanner(t *testing.T) {
	app := setupApp()

	resp := postJSON(t, app, "/api/v1/schedule/ai-draft", models.AIDraftRequest{
		Trip: models.TripRequest{
			Region:    "Seoul",
			StartDate: "2024-12-15",
			EndDate:   "2024-12-17",
			Themes:    []string{"dermatology"},
			Budget:    2000,
		},
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
