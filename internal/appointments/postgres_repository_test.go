package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
)

var apptTestColumns = []string{
	"id", "customer_id", "worker_id", "service_ids", "appointment_date",
	"appointment_time", "status", "start_minute", "end_minute",
	"cancellation_token", "created_at",
}

func apptRow(id, hhmm string, start, end int) []any {
	return []any{
		id, "c1", "w1", []string{"cut"},
		time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		hhmm, Status("confirmed"), start, end, "tok-" + id,
		time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

const listActiveQuery = `FROM appointments\s+WHERE worker_id = \$1 AND status <> 'cancelled' AND id IS DISTINCT FROM NULLIF\(\$2, ''\)::uuid`

func TestPostgresListActiveByWorker_ExcludesSelf(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(listActiveQuery).
		WithArgs("w1", "a2").
		WillReturnRows(pgxmock.NewRows(apptTestColumns).AddRow(apptRow("a1", "10:00", 600, 630)...))

	repo := NewPostgresRepositoryWithDB(mock)
	appts, err := repo.ListActiveByWorker(context.Background(), "w1", "a2")
	if err != nil {
		t.Fatalf("ListActiveByWorker failed: %v", err)
	}
	if len(appts) != 1 || appts[0].ID != "a1" {
		t.Fatalf("unexpected result: %+v", appts)
	}
	if appts[0].Date != "2026-03-02" {
		t.Errorf("Date = %q, want 2026-03-02", appts[0].Date)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListActiveByWorker_EmptyExclusion(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	// The empty exclusion marker must reach the database untouched; the
	// NULLIF cast turns it into NULL so no row is filtered out.
	mock.ExpectQuery(listActiveQuery).
		WithArgs("w1", "").
		WillReturnRows(pgxmock.NewRows(apptTestColumns).
			AddRow(apptRow("a1", "10:00", 600, 630)...).
			AddRow(apptRow("a2", "11:00", 660, 690)...))

	repo := NewPostgresRepositoryWithDB(mock)
	appts, err := repo.ListActiveByWorker(context.Background(), "w1", "")
	if err != nil {
		t.Fatalf("ListActiveByWorker failed: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(appts))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_MapsExclusionViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO appointments`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(&pgconn.PgError{Code: "23P01"})

	repo := NewPostgresRepositoryWithDB(mock)
	err = repo.Create(context.Background(), &Appointment{
		CustomerID:        "c1",
		WorkerID:          "w1",
		ServiceIDs:        []string{"cut"},
		Date:              "2026-03-02",
		Time:              "10:00",
		Status:            StatusConfirmed,
		StartMinute:       600,
		EndMinute:         630,
		CancellationToken: "tok",
	})

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.WorkerID != "w1" || conflict.Time != "10:00" {
		t.Errorf("unexpected conflict details: %+v", conflict)
	}
}

func TestPostgresUpdateSchedule_MapsExclusionViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE appointments\s+SET appointment_date`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(),
		).
		WillReturnError(&pgconn.PgError{Code: "23P01"})

	repo := NewPostgresRepositoryWithDB(mock)
	_, err = repo.UpdateSchedule(context.Background(), "a1", "2026-03-02", "10:00", 600, 630)

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}
