package hours

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bellasalong/booking-platform/internal/clock"
	"github.com/bellasalong/booking-platform/pkg/logging"
)

func TestUpsertBusinessHours_Success(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, clock.NewFixed("2026-03-02", "10:00"), logging.Default())

	body, _ := json.Marshal(map[string]any{
		"business_hours": []BusinessHoursEntry{
			{DayOfWeek: "monday", OpenTime: "09:00", CloseTime: "17:00"},
			{DayOfWeek: "sunday", IsClosed: true},
		},
	})
	req := httptest.NewRequest(http.MethodPut, "/admin/business-hours", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.UpsertBusinessHours(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	entry, err := repo.GetBusinessHours(context.Background(), "monday")
	if err != nil || entry == nil {
		t.Fatalf("expected monday entry, got %v %v", entry, err)
	}
	if entry.OpenTime != "09:00" || entry.CloseTime != "17:00" {
		t.Errorf("unexpected hours: %+v", entry)
	}
}

func TestUpsertBusinessHours_InvertedWindow(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), clock.NewFixed("2026-03-02", "10:00"), logging.Default())

	body, _ := json.Marshal(map[string]any{
		"business_hours": []BusinessHoursEntry{
			{DayOfWeek: "monday", OpenTime: "17:00", CloseTime: "09:00"},
		},
	})
	req := httptest.NewRequest(http.MethodPut, "/admin/business-hours", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.UpsertBusinessHours(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreateOverride_OverlappingRanges(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), clock.NewFixed("2026-03-02", "10:00"), logging.Default())

	body, _ := json.Marshal(CreateOverrideRequest{
		Date: "2026-05-17",
		TimeRanges: []TimeRange{
			{StartTime: "09:00", EndTime: "13:00"},
			{StartTime: "12:00", EndTime: "16:00"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/schedule-overrides", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateOverride(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreateOverride_ClosedDay(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, clock.NewFixed("2026-03-02", "10:00"), logging.Default())

	body, _ := json.Marshal(CreateOverrideRequest{
		Date:     "2026-05-17",
		IsClosed: true,
		Reason:   "Grunnlovsdag",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/schedule-overrides", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateOverride(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	override, err := repo.GetOverride(context.Background(), "2026-05-17")
	if err != nil || override == nil {
		t.Fatalf("expected stored override, got %v %v", override, err)
	}
	if !override.IsClosed {
		t.Error("expected override to be closed")
	}
}

func TestCreateOverride_InvalidDate(t *testing.T) {
	repo := NewInMemoryRepository()

	_, err := repo.CreateOverride(context.Background(), &CreateOverrideRequest{Date: "17.05.2026"})
	if err != ErrInvalidDate {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestRepository_ListOverridesRange(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	for _, date := range []string{"2026-05-01", "2026-05-17", "2026-06-01"} {
		if _, err := repo.CreateOverride(ctx, &CreateOverrideRequest{Date: date, IsClosed: true}); err != nil {
			t.Fatalf("seed override %s: %v", date, err)
		}
	}

	overrides, err := repo.ListOverrides(ctx, "2026-05-01", "2026-05-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overrides) != 2 {
		t.Fatalf("expected 2 overrides in May, got %d", len(overrides))
	}
	if overrides[0].Date != "2026-05-01" || overrides[1].Date != "2026-05-17" {
		t.Errorf("unexpected order: %v", overrides)
	}
}

func TestRepository_DeleteOverride(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.CreateOverride(ctx, &CreateOverrideRequest{Date: "2026-05-17", IsClosed: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.DeleteOverride(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.DeleteOverride(ctx, created.ID); err != ErrOverrideNotFound {
		t.Errorf("expected ErrOverrideNotFound, got %v", err)
	}
}
