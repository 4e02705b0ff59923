package reports

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bellasalong/booking-platform/internal/clock"
)

// Stats aggregates booking activity over an inclusive date-key range.
type Stats struct {
	From            string `json:"from"`
	To              string `json:"to"`
	Booked          int64  `json:"booked"`
	Completed       int64  `json:"completed"`
	Cancelled       int64  `json:"cancelled"`
	UniqueCustomers int64  `json:"unique_customers"`
	RevenueCents    int64  `json:"revenue_cents"`
}

// statsDB defines the database interface needed by StatsRepository
type statsDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StatsRepository queries booking aggregates from the database.
type StatsRepository struct {
	db statsDB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	if pool == nil {
		panic("reports: pgx pool required for stats")
	}
	return &StatsRepository{db: pool}
}

// NewStatsRepositoryWithDB allows injecting a mock database for testing.
func NewStatsRepositoryWithDB(db statsDB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Summary returns aggregated booking metrics between two date keys,
// inclusive on both ends. Appointment dates are stored pinned to noon
// UTC, so the noon timestamps bound the range exactly.
func (r *StatsRepository) Summary(ctx context.Context, from, to string) (*Stats, error) {
	start, err := clock.NoonUTC(from)
	if err != nil {
		return nil, fmt.Errorf("reports: invalid from date: %w", err)
	}
	end, err := clock.NoonUTC(to)
	if err != nil {
		return nil, fmt.Errorf("reports: invalid to date: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("reports: to must not be before from")
	}

	stats := &Stats{From: from, To: to}

	bookedQuery := `SELECT COUNT(*) FROM appointments WHERE appointment_date >= $1 AND appointment_date <= $2`
	if err := r.db.QueryRow(ctx, bookedQuery, start, end).Scan(&stats.Booked); err != nil {
		return nil, fmt.Errorf("reports: count booked: %w", err)
	}

	completedQuery := `SELECT COUNT(*) FROM appointments WHERE appointment_date >= $1 AND appointment_date <= $2 AND status = 'completed'`
	if err := r.db.QueryRow(ctx, completedQuery, start, end).Scan(&stats.Completed); err != nil {
		return nil, fmt.Errorf("reports: count completed: %w", err)
	}

	cancelledQuery := `SELECT COUNT(*) FROM appointments WHERE appointment_date >= $1 AND appointment_date <= $2 AND status = 'cancelled'`
	if err := r.db.QueryRow(ctx, cancelledQuery, start, end).Scan(&stats.Cancelled); err != nil {
		return nil, fmt.Errorf("reports: count cancelled: %w", err)
	}

	customersQuery := `SELECT COUNT(DISTINCT customer_id) FROM appointments WHERE appointment_date >= $1 AND appointment_date <= $2 AND status <> 'cancelled'`
	if err := r.db.QueryRow(ctx, customersQuery, start, end).Scan(&stats.UniqueCustomers); err != nil {
		return nil, fmt.Errorf("reports: count customers: %w", err)
	}

	revenueQuery := `SELECT COALESCE(SUM(s.price_cents), 0) FROM appointments a JOIN services s ON s.id = ANY(a.service_ids) WHERE a.appointment_date >= $1 AND a.appointment_date <= $2 AND a.status = 'completed'`
	if err := r.db.QueryRow(ctx, revenueQuery, start, end).Scan(&stats.RevenueCents); err != nil {
		return nil, fmt.Errorf("reports: sum revenue: %w", err)
	}

	return stats, nil
}
