package hours

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores opening hours in the relational database.
// Override time ranges are kept as a jsonb column since they are only ever
// read back as a whole.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("hours: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// UpsertBusinessHours writes the weekday entry, replacing any existing one.
func (r *PostgresRepository) UpsertBusinessHours(ctx context.Context, entry *BusinessHoursEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO business_hours (day_of_week, open_time, close_time, is_closed)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (day_of_week) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			is_closed = EXCLUDED.is_closed
	`
	if _, err := r.pool.Exec(ctx, query, entry.DayOfWeek, entry.OpenTime, entry.CloseTime, entry.IsClosed); err != nil {
		return fmt.Errorf("hours: upsert business hours failed: %w", err)
	}
	return nil
}

// ListBusinessHours returns all weekday entries.
func (r *PostgresRepository) ListBusinessHours(ctx context.Context) ([]*BusinessHoursEntry, error) {
	query := `SELECT day_of_week, open_time, close_time, is_closed FROM business_hours ORDER BY day_of_week`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("hours: list business hours failed: %w", err)
	}
	defer rows.Close()

	var out []*BusinessHoursEntry
	for rows.Next() {
		var e BusinessHoursEntry
		if err := rows.Scan(&e.DayOfWeek, &e.OpenTime, &e.CloseTime, &e.IsClosed); err != nil {
			return nil, fmt.Errorf("hours: scan business hours failed: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// GetBusinessHours returns the entry for a weekday, or nil when absent.
func (r *PostgresRepository) GetBusinessHours(ctx context.Context, dayOfWeek string) (*BusinessHoursEntry, error) {
	query := `SELECT day_of_week, open_time, close_time, is_closed FROM business_hours WHERE day_of_week = $1`
	rows, err := r.pool.Query(ctx, query, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("hours: select business hours failed: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var e BusinessHoursEntry
	if err := rows.Scan(&e.DayOfWeek, &e.OpenTime, &e.CloseTime, &e.IsClosed); err != nil {
		return nil, fmt.Errorf("hours: scan business hours failed: %w", err)
	}
	return &e, nil
}

// CreateOverride writes a date override, replacing any existing one for the date.
func (r *PostgresRepository) CreateOverride(ctx context.Context, req *CreateOverrideRequest) (*ScheduleOverride, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ranges, err := json.Marshal(req.TimeRanges)
	if err != nil {
		return nil, fmt.Errorf("hours: marshal time ranges failed: %w", err)
	}

	override := &ScheduleOverride{
		ID:         uuid.New().String(),
		Date:       req.Date,
		IsClosed:   req.IsClosed,
		TimeRanges: append([]TimeRange(nil), req.TimeRanges...),
		OpenTime:   req.OpenTime,
		CloseTime:  req.CloseTime,
		Reason:     req.Reason,
	}
	query := `
		INSERT INTO schedule_overrides (id, date, is_closed, time_ranges, open_time, close_time, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (date) DO UPDATE SET
			id = EXCLUDED.id,
			is_closed = EXCLUDED.is_closed,
			time_ranges = EXCLUDED.time_ranges,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			reason = EXCLUDED.reason
	`
	if _, err := r.pool.Exec(ctx, query,
		override.ID, override.Date, override.IsClosed, ranges,
		override.OpenTime, override.CloseTime, override.Reason,
	); err != nil {
		return nil, fmt.Errorf("hours: insert override failed: %w", err)
	}
	return override, nil
}

const overrideColumns = `id, to_char(date, 'YYYY-MM-DD'), is_closed, time_ranges, open_time, close_time, reason`

func scanOverride(scan func(dest ...any) error) (*ScheduleOverride, error) {
	var o ScheduleOverride
	var ranges []byte
	if err := scan(&o.ID, &o.Date, &o.IsClosed, &ranges, &o.OpenTime, &o.CloseTime, &o.Reason); err != nil {
		return nil, err
	}
	if len(ranges) > 0 {
		if err := json.Unmarshal(ranges, &o.TimeRanges); err != nil {
			return nil, fmt.Errorf("hours: unmarshal time ranges failed: %w", err)
		}
	}
	return &o, nil
}

// GetOverride returns the override for a date key, or nil when absent.
func (r *PostgresRepository) GetOverride(ctx context.Context, date string) (*ScheduleOverride, error) {
	query := `SELECT ` + overrideColumns + ` FROM schedule_overrides WHERE date = $1`
	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("hours: select override failed: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanOverride(rows.Scan)
}

// ListOverrides returns overrides inside the inclusive date range.
func (r *PostgresRepository) ListOverrides(ctx context.Context, from, to string) ([]*ScheduleOverride, error) {
	query := `SELECT ` + overrideColumns + ` FROM schedule_overrides WHERE date BETWEEN $1 AND $2 ORDER BY date`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("hours: list overrides failed: %w", err)
	}
	defer rows.Close()

	var out []*ScheduleOverride
	for rows.Next() {
		o, err := scanOverride(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hours: scan override failed: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// DeleteOverride removes an override by ID.
func (r *PostgresRepository) DeleteOverride(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM schedule_overrides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("hours: delete override failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOverrideNotFound
	}
	return nil
}
