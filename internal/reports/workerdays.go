package reports

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/bellasalong/booking-platform/internal/clock"
)

// WorkerDay is one worker's load on one day.
type WorkerDay struct {
	Day           string   `json:"day"`
	WorkerID      string   `json:"worker_id"`
	WorkerName    string   `json:"worker_name"`
	Appointments  int64    `json:"appointments"`
	BookedMinutes int64    `json:"booked_minutes"`
	ServiceIDs    []string `json:"service_ids"`
}

// WorkerDayRepository reads per-worker daily utilization rows.
type WorkerDayRepository struct {
	db *sql.DB
}

func NewWorkerDayRepository(db *sql.DB) *WorkerDayRepository {
	return &WorkerDayRepository{db: db}
}

// List returns the utilization rows between two date keys, inclusive,
// ordered by day and worker name. Cancelled appointments are excluded.
func (r *WorkerDayRepository) List(ctx context.Context, from, to string) ([]WorkerDay, error) {
	start, err := clock.NoonUTC(from)
	if err != nil {
		return nil, fmt.Errorf("reports: invalid from date: %w", err)
	}
	end, err := clock.NoonUTC(to)
	if err != nil {
		return nil, fmt.Errorf("reports: invalid to date: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(a.appointment_date, 'YYYY-MM-DD') AS day,
		       a.worker_id, w.name,
		       COUNT(*) AS appointments,
		       COALESCE(SUM(a.end_minute - a.start_minute), 0) AS booked_minutes,
		       ARRAY(SELECT DISTINCT unnest(b.service_ids)
		             FROM appointments b
		             WHERE b.worker_id = a.worker_id
		               AND b.appointment_date = a.appointment_date
		               AND b.status <> 'cancelled') AS service_ids
		FROM appointments a
		JOIN workers w ON w.id = a.worker_id
		WHERE a.status <> 'cancelled'
		  AND a.appointment_date >= $1 AND a.appointment_date <= $2
		GROUP BY day, a.worker_id, w.name, a.appointment_date
		ORDER BY day, w.name`, start, end)
	if err != nil {
		return nil, fmt.Errorf("reports: query worker days: %w", err)
	}
	defer rows.Close()

	var out []WorkerDay
	for rows.Next() {
		var d WorkerDay
		if err := rows.Scan(&d.Day, &d.WorkerID, &d.WorkerName,
			&d.Appointments, &d.BookedMinutes, pq.Array(&d.ServiceIDs)); err != nil {
			return nil, fmt.Errorf("reports: scan worker day: %w", err)
		}
		if d.ServiceIDs == nil {
			d.ServiceIDs = []string{}
		}
		out = append(out, d)
	}
	if out == nil {
		out = []WorkerDay{}
	}
	return out, rows.Err()
}
