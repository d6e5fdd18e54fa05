package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"growth-dashboard/internal/manager"
	"growth-dashboard/internal/models"
)

func testRouter() (*manager.BoardManager, http.Handler) {
	weeks := []models.Week{
		{
			Title: "Week 1",
			Tasks: []models.Task{
				{ID: 1, Description: "first"},
				{ID: 2, Description: "second"},
			},
		},
		{Title: "Week 2"},
	}
	bm := manager.NewBoardManager(weeks)
	return bm, NewRouter(bm)
}

func TestDashboardPage(t *testing.T) {
	_, router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Week 1") || !strings.Contains(body, "first") {
		t.Error("page missing week card content")
	}
	if strings.Count(body, `type="checkbox"`) != 2 {
		t.Error("expected one checkbox per task")
	}
	if !strings.Contains(body, "Nothing scheduled this week.") {
		t.Error("empty week card missing fallback message")
	}
}

func TestToggleForm(t *testing.T) {
	bm, router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tasks/1/toggle", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}
	if !bm.Weeks()[0].Tasks[0].Completed {
		t.Error("task 1 not toggled")
	}
}

func TestToggleAPI(t *testing.T) {
	bm, router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tasks/2/toggle", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var task models.Task
	if err := json.NewDecoder(rec.Body).Decode(&task); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if task.ID != 2 || !task.Completed {
		t.Errorf("unexpected task in response: %+v", task)
	}

	// Sibling untouched.
	if bm.Weeks()[0].Tasks[0].Completed {
		t.Error("toggling task 2 must not touch task 1")
	}
}

func TestToggleAPIErrors(t *testing.T) {
	_, router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tasks/99/toggle", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown ID, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tasks/abc/toggle", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric ID, got %d", rec.Code)
	}
}

func TestListWeeks(t *testing.T) {
	_, router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/weeks", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var weeks []models.Week
	if err := json.NewDecoder(rec.Body).Decode(&weeks); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(weeks) != 2 || len(weeks[0].Tasks) != 2 {
		t.Errorf("unexpected weeks: %+v", weeks)
	}
}

func TestProgressEndpoint(t *testing.T) {
	bm, router := testRouter()
	if _, err := bm.ToggleTask(1); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/progress", nil))

	var p manager.Progress
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if p.Completed != 1 || p.Total != 2 {
		t.Errorf("expected 1/2, got %d/%d", p.Completed, p.Total)
	}
	if len(p.Weeks) != 2 {
		t.Fatalf("expected 2 week entries, got %d", len(p.Weeks))
	}
	if p.Weeks[0] != (manager.WeekProgress{Week: "Week 1", Completed: 1, Total: 2}) {
		t.Errorf("unexpected week 1 progress: %+v", p.Weeks[0])
	}
	if p.Weeks[1] != (manager.WeekProgress{Week: "Week 2"}) {
		t.Errorf("unexpected week 2 progress: %+v", p.Weeks[1])
	}
}

func TestExportEndpoint(t *testing.T) {
	_, router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export?format=csv", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "first") {
		t.Error("csv export missing task row")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export?format=wat", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown format, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	_, router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestEmptyPlanPage(t *testing.T) {
	router := NewRouter(manager.NewBoardManager(nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "No weeks planned yet") {
		t.Error("empty plan missing fallback message")
	}
	if strings.Contains(body, `class="card"`) {
		t.Error("empty plan must render no cards")
	}
}
