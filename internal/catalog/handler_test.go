package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/bellasalong/booking-platform/pkg/logging"
)

func seedService(t *testing.T, repo Repository, name string, duration int, active bool) *Service {
	t.Helper()
	svc, err := repo.Create(context.Background(), &CreateServiceRequest{
		Name:            name,
		DurationMinutes: duration,
		PriceCents:      50000,
		IsActive:        &active,
	})
	if err != nil {
		t.Fatalf("seed service %s: %v", name, err)
	}
	return svc
}

func TestCreateService_Success(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	body, _ := json.Marshal(CreateServiceRequest{
		Name:            "Klipp og føn",
		DurationMinutes: 60,
		PriceCents:      79000,
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/services", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateService(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var svc Service
	if err := json.NewDecoder(w.Body).Decode(&svc); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if svc.ID == "" {
		t.Error("expected service ID to be set")
	}
	if !svc.IsActive {
		t.Error("expected service to default to active")
	}
}

func TestCreateService_InvalidDuration(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	body, _ := json.Marshal(CreateServiceRequest{Name: "Voks", DurationMinutes: 0})
	req := httptest.NewRequest(http.MethodPost, "/admin/services", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateService(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreateService_InvalidJSON(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	req := httptest.NewRequest(http.MethodPost, "/admin/services", strings.NewReader("{"))
	w := httptest.NewRecorder()

	handler.CreateService(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestListServices_ActiveOnly(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	seedService(t, repo, "Klipp", 30, true)
	seedService(t, repo, "Gammel behandling", 45, false)

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	w := httptest.NewRecorder()

	handler.ListServices(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Services []*Service `json:"services"`
		Count    int        `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Services) != 1 {
		t.Fatalf("expected 1 active service, got %d", resp.Count)
	}
	if resp.Services[0].Name != "Klipp" {
		t.Errorf("unexpected service: %s", resp.Services[0].Name)
	}
}

func TestUpdateService_NotFound(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	body, _ := json.Marshal(UpdateServiceRequest{})
	req := httptest.NewRequest(http.MethodPatch, "/admin/services/nope", bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("serviceID", "nope")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	handler.UpdateService(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestRepository_Update(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	svc := seedService(t, repo, "Farge", 90, true)

	newDuration := 120
	inactive := false
	updated, err := repo.Update(ctx, svc.ID, &UpdateServiceRequest{
		DurationMinutes: &newDuration,
		IsActive:        &inactive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.DurationMinutes != 120 {
		t.Errorf("expected duration 120, got %d", updated.DurationMinutes)
	}
	if updated.IsActive {
		t.Error("expected service to be inactive")
	}
	if updated.Name != "Farge" {
		t.Errorf("expected name to be unchanged, got %s", updated.Name)
	}
}

func TestRepository_DurationMap(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	a := seedService(t, repo, "Klipp", 30, true)
	b := seedService(t, repo, "Farge", 90, true)

	durations, err := repo.DurationMap(ctx, []string{a.ID, b.ID, "missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(durations) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(durations))
	}
	if durations[a.ID] != 30 || durations[b.ID] != 90 {
		t.Errorf("unexpected durations: %v", durations)
	}
	if _, ok := durations["missing"]; ok {
		t.Error("expected unknown ID to be absent")
	}
}

func TestListGroups_Sorted(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.CreateGroup(ctx, "Negler", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.CreateGroup(ctx, "Hår", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	groups, err := repo.ListGroups(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 || groups[0].Name != "Hår" {
		t.Fatalf("expected Hår first, got %v", groups)
	}
}
