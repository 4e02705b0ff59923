package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bellasalong/booking-platform/internal/clock"
)

// exclusionViolation is the Postgres error code raised by the
// no-double-booking exclusion constraint.
const exclusionViolation = "23P01"

// apptDB defines the database interface needed by PostgresRepository
type apptDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores appointments in the relational database.
// The day-granularity date is stored as a UTC timestamp pinned to noon so
// the civil date never drifts across timezone boundaries.
type PostgresRepository struct {
	db apptDB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(db apptDB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const apptColumns = `id, customer_id, worker_id, service_ids, appointment_date, appointment_time, status, start_minute, end_minute, cancellation_token, created_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var date time.Time
	if err := row.Scan(
		&a.ID,
		&a.CustomerID,
		&a.WorkerID,
		&a.ServiceIDs,
		&date,
		&a.Time,
		&a.Status,
		&a.StartMinute,
		&a.EndMinute,
		&a.CancellationToken,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.Date = date.UTC().Format("2006-01-02")
	return &a, nil
}

// Create inserts a new appointment row. A violation of the worker overlap
// exclusion constraint is returned as a ConflictError.
func (r *PostgresRepository) Create(ctx context.Context, appt *Appointment) error {
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	date, err := clock.NoonUTC(appt.Date)
	if err != nil {
		return ErrInvalidDate
	}

	query := `
		INSERT INTO appointments (id, customer_id, worker_id, service_ids, appointment_date, appointment_time, status, start_minute, end_minute, cancellation_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	if err := r.db.QueryRow(ctx, query,
		appt.ID,
		appt.CustomerID,
		appt.WorkerID,
		appt.ServiceIDs,
		date,
		appt.Time,
		appt.Status,
		appt.StartMinute,
		appt.EndMinute,
		appt.CancellationToken,
	).Scan(&appt.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
			return &ConflictError{WorkerID: appt.WorkerID, Date: appt.Date, Time: appt.Time}
		}
		return fmt.Errorf("appointments: insert failed: %w", err)
	}
	return nil
}

// GetByID fetches a single appointment.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	query := `SELECT ` + apptColumns + ` FROM appointments WHERE id = $1`
	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointments: select failed: %w", err)
	}
	return appt, nil
}

// GetByToken fetches an appointment by its cancellation token.
func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*Appointment, error) {
	query := `SELECT ` + apptColumns + ` FROM appointments WHERE cancellation_token = $1`
	appt, err := scanAppointment(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointments: select by token failed: %w", err)
	}
	return appt, nil
}

// UpdateStatus sets the status of an appointment and returns the stored row.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Appointment, error) {
	query := `UPDATE appointments SET status = $2 WHERE id = $1 RETURNING ` + apptColumns
	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointments: update status failed: %w", err)
	}
	return appt, nil
}

// UpdateSchedule moves an appointment to a new date and time. A violation
// of the worker overlap exclusion constraint is returned as a ConflictError.
func (r *PostgresRepository) UpdateSchedule(ctx context.Context, id, dateKey, hhmm string, startMinute, endMinute int) (*Appointment, error) {
	date, err := clock.NoonUTC(dateKey)
	if err != nil {
		return nil, ErrInvalidDate
	}
	query := `
		UPDATE appointments
		SET appointment_date = $2, appointment_time = $3, start_minute = $4, end_minute = $5
		WHERE id = $1
		RETURNING ` + apptColumns
	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id, date, hhmm, startMinute, endMinute))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAppointmentNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
			return nil, &ConflictError{Date: dateKey, Time: hhmm}
		}
		return nil, fmt.Errorf("appointments: update schedule failed: %w", err)
	}
	return appt, nil
}

// ListActiveByWorker returns all non-cancelled appointments for a worker
// across all dates, optionally excluding one ID.
func (r *PostgresRepository) ListActiveByWorker(ctx context.Context, workerID, excludeID string) ([]*Appointment, error) {
	query := `
		SELECT ` + apptColumns + `
		FROM appointments
		WHERE worker_id = $1 AND status <> 'cancelled' AND id IS DISTINCT FROM NULLIF($2, '')::uuid
		ORDER BY appointment_date, appointment_time
	`
	return r.list(ctx, query, workerID, excludeID)
}

// ListConfirmedByDate returns confirmed appointments on a date key.
func (r *PostgresRepository) ListConfirmedByDate(ctx context.Context, dateKey string) ([]*Appointment, error) {
	date, err := clock.NoonUTC(dateKey)
	if err != nil {
		return nil, ErrInvalidDate
	}
	query := `
		SELECT ` + apptColumns + `
		FROM appointments
		WHERE appointment_date = $1 AND status = 'confirmed'
		ORDER BY appointment_time
	`
	return r.list(ctx, query, date)
}

// ListByDateRange returns all appointments in the inclusive date range.
func (r *PostgresRepository) ListByDateRange(ctx context.Context, from, to string) ([]*Appointment, error) {
	fromDate, err := clock.NoonUTC(from)
	if err != nil {
		return nil, ErrInvalidDate
	}
	toDate, err := clock.NoonUTC(to)
	if err != nil {
		return nil, ErrInvalidDate
	}
	query := `
		SELECT ` + apptColumns + `
		FROM appointments
		WHERE appointment_date BETWEEN $1 AND $2
		ORDER BY appointment_date, appointment_time
	`
	return r.list(ctx, query, fromDate, toDate)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*Appointment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("appointments: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("appointments: scan failed: %w", err)
		}
		out = append(out, appt)
	}
	return out, rows.Err()
}
