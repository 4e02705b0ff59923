package reports

import (
	"context"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestWorkerDayRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	cols := []string{"day", "worker_id", "name", "appointments", "booked_minutes", "service_ids"}
	mock.ExpectQuery(`SELECT to_char\(a\.appointment_date, 'YYYY-MM-DD'\) AS day`).
		WithArgs(noon(2026, 3, 2), noon(2026, 3, 8)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("2026-03-02", "w1", "Kari", int64(3), int64(150), "{s1,s2}").
			AddRow("2026-03-03", "w2", "Nina", int64(1), int64(30), "{s1}"))

	repo := NewWorkerDayRepository(db)
	rows, err := repo.List(context.Background(), "2026-03-02", "2026-03-08")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].WorkerName != "Kari" || rows[0].BookedMinutes != 150 {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if !reflect.DeepEqual(rows[0].ServiceIDs, []string{"s1", "s2"}) {
		t.Errorf("unexpected service IDs: %v", rows[0].ServiceIDs)
	}
	if rows[1].Day != "2026-03-03" || rows[1].Appointments != 1 {
		t.Errorf("unexpected second row: %+v", rows[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestWorkerDayRepository_List_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	cols := []string{"day", "worker_id", "name", "appointments", "booked_minutes", "service_ids"}
	mock.ExpectQuery(`SELECT to_char`).
		WillReturnRows(sqlmock.NewRows(cols))

	repo := NewWorkerDayRepository(db)
	rows, err := repo.List(context.Background(), "2026-03-02", "2026-03-08")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", rows)
	}
}

func TestWorkerDayRepository_List_BadDates(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewWorkerDayRepository(db)
	if _, err := repo.List(context.Background(), "yesterday", "2026-03-08"); err == nil {
		t.Error("expected error for malformed date")
	}
}
