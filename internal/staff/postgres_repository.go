package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores workers in the relational database.
// Working hours and offered services live in side tables and are
// hydrated onto the Worker aggregate on every read.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("staff: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a worker and its schedule/service rows in one transaction.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateWorkerRequest) (*Worker, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("staff: begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	worker := &Worker{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		IsActive:     req.Active(),
		ServiceIDs:   append([]string(nil), req.ServiceIDs...),
		WorkingHours: append([]WorkingHoursEntry(nil), req.WorkingHours...),
	}

	query := `
		INSERT INTO workers (id, name, email, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if err := tx.QueryRow(ctx, query, worker.ID, worker.Name, worker.Email, worker.IsActive).
		Scan(&worker.CreatedAt); err != nil {
		return nil, fmt.Errorf("staff: insert worker failed: %w", err)
	}

	if err := insertHours(ctx, tx, worker.ID, worker.WorkingHours); err != nil {
		return nil, err
	}
	if err := insertServices(ctx, tx, worker.ID, worker.ServiceIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("staff: commit failed: %w", err)
	}
	return worker, nil
}

func insertHours(ctx context.Context, tx pgx.Tx, workerID string, entries []WorkingHoursEntry) error {
	for _, e := range entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO worker_hours (worker_id, day_of_week, start_time, end_time) VALUES ($1, $2, $3, $4)`,
			workerID, e.DayOfWeek, e.StartTime, e.EndTime)
		if err != nil {
			return fmt.Errorf("staff: insert working hours failed: %w", err)
		}
	}
	return nil
}

func insertServices(ctx context.Context, tx pgx.Tx, workerID string, serviceIDs []string) error {
	for _, serviceID := range serviceIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO worker_services (worker_id, service_id) VALUES ($1, $2)`,
			workerID, serviceID)
		if err != nil {
			return fmt.Errorf("staff: insert worker service failed: %w", err)
		}
	}
	return nil
}

// GetByID fetches a worker with hours and services hydrated.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Worker, error) {
	query := `SELECT id, name, email, is_active, created_at FROM workers WHERE id = $1`
	var w Worker
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&w.ID, &w.Name, &w.Email, &w.IsActive, &w.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("staff: select worker failed: %w", err)
	}

	if err := r.hydrate(ctx, map[string]*Worker{w.ID: &w}); err != nil {
		return nil, err
	}
	return &w, nil
}

// List returns all workers with hours and services hydrated.
func (r *PostgresRepository) List(ctx context.Context) ([]*Worker, error) {
	return r.list(ctx, `SELECT id, name, email, is_active, created_at FROM workers ORDER BY name`)
}

// ListActive returns bookable workers only.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]*Worker, error) {
	return r.list(ctx, `SELECT id, name, email, is_active, created_at FROM workers WHERE is_active ORDER BY name`)
}

// ListForServices returns active workers offering every given service.
// The service check runs in memory over the hydrated aggregates since the
// full active roster is small.
func (r *PostgresRepository) ListForServices(ctx context.Context, serviceIDs []string) ([]*Worker, error) {
	active, err := r.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Worker, 0, len(active))
	for _, w := range active {
		if w.OffersAll(serviceIDs) {
			out = append(out, w)
		}
	}
	return out, nil
}

// SetWorkingHours replaces a worker's weekly schedule.
func (r *PostgresRepository) SetWorkingHours(ctx context.Context, workerID string, entries []WorkingHoursEntry) (*Worker, error) {
	seen := make(map[string]bool, len(entries))
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, err
		}
		if seen[entries[i].DayOfWeek] {
			return nil, ErrDuplicateDayOfWeek
		}
		seen[entries[i].DayOfWeek] = true
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("staff: begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM worker_hours WHERE worker_id = $1`, workerID); err != nil {
		return nil, fmt.Errorf("staff: clear working hours failed: %w", err)
	}
	if err := insertHours(ctx, tx, workerID, entries); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("staff: commit failed: %w", err)
	}
	return r.GetByID(ctx, workerID)
}

// SetServices replaces the set of services a worker offers.
func (r *PostgresRepository) SetServices(ctx context.Context, workerID string, serviceIDs []string) (*Worker, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("staff: begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM worker_services WHERE worker_id = $1`, workerID); err != nil {
		return nil, fmt.Errorf("staff: clear worker services failed: %w", err)
	}
	if err := insertServices(ctx, tx, workerID, serviceIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("staff: commit failed: %w", err)
	}
	return r.GetByID(ctx, workerID)
}

func (r *PostgresRepository) list(ctx context.Context, query string) ([]*Worker, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("staff: list workers failed: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*Worker)
	var out []*Worker
	for rows.Next() {
		var w Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Email, &w.IsActive, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("staff: scan worker failed: %w", err)
		}
		byID[w.ID] = &w
		out = append(out, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.hydrate(ctx, byID); err != nil {
		return nil, err
	}
	return out, nil
}

// hydrate attaches working hours and service IDs to the given workers
// with one query per side table.
func (r *PostgresRepository) hydrate(ctx context.Context, byID map[string]*Worker) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	hourRows, err := r.pool.Query(ctx,
		`SELECT worker_id, day_of_week, start_time, end_time FROM worker_hours WHERE worker_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("staff: load working hours failed: %w", err)
	}
	defer hourRows.Close()
	for hourRows.Next() {
		var workerID string
		var e WorkingHoursEntry
		if err := hourRows.Scan(&workerID, &e.DayOfWeek, &e.StartTime, &e.EndTime); err != nil {
			return fmt.Errorf("staff: scan working hours failed: %w", err)
		}
		if w, ok := byID[workerID]; ok {
			w.WorkingHours = append(w.WorkingHours, e)
		}
	}
	if err := hourRows.Err(); err != nil {
		return err
	}

	svcRows, err := r.pool.Query(ctx,
		`SELECT worker_id, service_id FROM worker_services WHERE worker_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("staff: load worker services failed: %w", err)
	}
	defer svcRows.Close()
	for svcRows.Next() {
		var workerID, serviceID string
		if err := svcRows.Scan(&workerID, &serviceID); err != nil {
			return fmt.Errorf("staff: scan worker service failed: %w", err)
		}
		if w, ok := byID[workerID]; ok {
			w.ServiceIDs = append(w.ServiceIDs, serviceID)
		}
	}
	return svcRows.Err()
}
