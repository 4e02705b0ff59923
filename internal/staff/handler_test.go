package staff

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bellasalong/booking-platform/pkg/logging"
)

func seedWorker(t *testing.T, repo Repository, name string, serviceIDs []string) *Worker {
	t.Helper()
	worker, err := repo.Create(context.Background(), &CreateWorkerRequest{
		Name:       name,
		ServiceIDs: serviceIDs,
		WorkingHours: []WorkingHoursEntry{
			{DayOfWeek: "monday", StartTime: "09:00", EndTime: "17:00"},
		},
	})
	if err != nil {
		t.Fatalf("seed worker %s: %v", name, err)
	}
	return worker
}

func TestCreateWorker_Success(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	body, _ := json.Marshal(CreateWorkerRequest{
		Name:       "Kari",
		ServiceIDs: []string{"svc-1"},
		WorkingHours: []WorkingHoursEntry{
			{DayOfWeek: "monday", StartTime: "09:00", EndTime: "12:00"},
			{DayOfWeek: "tuesday", StartTime: "10:00", EndTime: "18:00"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/workers", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateWorker(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var worker Worker
	if err := json.NewDecoder(w.Body).Decode(&worker); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if worker.ID == "" {
		t.Error("expected worker ID to be set")
	}
	if len(worker.WorkingHours) != 2 {
		t.Errorf("expected 2 working hours entries, got %d", len(worker.WorkingHours))
	}
}

func TestCreateWorker_InvalidHours(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	body, _ := json.Marshal(CreateWorkerRequest{
		Name: "Kari",
		WorkingHours: []WorkingHoursEntry{
			{DayOfWeek: "monday", StartTime: "17:00", EndTime: "09:00"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/workers", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateWorker(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestListWorkers_FilterByServices(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	seedWorker(t, repo, "Kari", []string{"svc-1", "svc-2"})
	seedWorker(t, repo, "Ola", []string{"svc-1"})

	req := httptest.NewRequest(http.MethodGet, "/workers?service_ids=svc-1,svc-2", nil)
	w := httptest.NewRecorder()

	handler.ListWorkers(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Workers []*Worker `json:"workers"`
		Count   int       `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("expected 1 worker offering both services, got %d", resp.Count)
	}
	if resp.Workers[0].Name != "Kari" {
		t.Errorf("unexpected worker: %s", resp.Workers[0].Name)
	}
}

func TestOffersAll(t *testing.T) {
	worker := &Worker{ServiceIDs: []string{"a", "b"}}

	if !worker.OffersAll([]string{"a"}) {
		t.Error("expected subset to be offered")
	}
	if !worker.OffersAll(nil) {
		t.Error("expected empty request to be offered")
	}
	if worker.OffersAll([]string{"a", "c"}) {
		t.Error("expected missing service to fail")
	}
}

func TestHoursFor(t *testing.T) {
	worker := &Worker{WorkingHours: []WorkingHoursEntry{
		{DayOfWeek: "monday", StartTime: "09:00", EndTime: "12:00"},
	}}

	entry, ok := worker.HoursFor("monday")
	if !ok || entry.StartTime != "09:00" {
		t.Fatalf("expected monday hours, got %v %v", entry, ok)
	}
	if _, ok := worker.HoursFor("sunday"); ok {
		t.Error("expected no hours for sunday")
	}
}

func TestRepository_SetWorkingHours(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	worker := seedWorker(t, repo, "Kari", nil)

	updated, err := repo.SetWorkingHours(ctx, worker.ID, []WorkingHoursEntry{
		{DayOfWeek: "friday", StartTime: "08:00", EndTime: "14:00"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.WorkingHours) != 1 || updated.WorkingHours[0].DayOfWeek != "friday" {
		t.Errorf("unexpected working hours: %v", updated.WorkingHours)
	}
}

func TestRepository_SetWorkingHours_DuplicateDay(t *testing.T) {
	repo := NewInMemoryRepository()
	worker := seedWorker(t, repo, "Kari", nil)

	_, err := repo.SetWorkingHours(context.Background(), worker.ID, []WorkingHoursEntry{
		{DayOfWeek: "monday", StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: "monday", StartTime: "13:00", EndTime: "17:00"},
	})
	if err != ErrDuplicateDayOfWeek {
		t.Errorf("expected ErrDuplicateDayOfWeek, got %v", err)
	}
}
