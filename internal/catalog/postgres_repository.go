package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores the service catalog in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("catalog: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const serviceColumns = `id, COALESCE(group_id::text, ''), name, description, duration_minutes, price_cents, is_active, created_at`

func scanService(row pgx.Row) (*Service, error) {
	var svc Service
	if err := row.Scan(
		&svc.ID,
		&svc.GroupID,
		&svc.Name,
		&svc.Description,
		&svc.DurationMinutes,
		&svc.PriceCents,
		&svc.IsActive,
		&svc.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &svc, nil
}

// Create inserts a new service row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO services (id, group_id, name, description, duration_minutes, price_cents, is_active)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7)
		RETURNING ` + serviceColumns
	svc, err := scanService(r.pool.QueryRow(ctx, query,
		id,
		req.GroupID,
		req.Name,
		req.Description,
		req.DurationMinutes,
		req.PriceCents,
		req.Active(),
	))
	if err != nil {
		return nil, fmt.Errorf("catalog: insert service failed: %w", err)
	}
	return svc, nil
}

// Update applies a partial update and returns the stored row.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpdateServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE services SET
			group_id         = COALESCE(NULLIF($2, '')::uuid, group_id),
			name             = COALESCE($3, name),
			description      = COALESCE($4, description),
			duration_minutes = COALESCE($5, duration_minutes),
			price_cents      = COALESCE($6, price_cents),
			is_active        = COALESCE($7, is_active)
		WHERE id = $1
		RETURNING ` + serviceColumns
	groupID := ""
	if req.GroupID != nil {
		groupID = *req.GroupID
	}
	svc, err := scanService(r.pool.QueryRow(ctx, query,
		id,
		groupID,
		req.Name,
		req.Description,
		req.DurationMinutes,
		req.PriceCents,
		req.IsActive,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("catalog: update service failed: %w", err)
	}
	return svc, nil
}

// GetByID fetches a single service.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	svc, err := scanService(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("catalog: select service failed: %w", err)
	}
	return svc, nil
}

// List returns every service, active or not.
func (r *PostgresRepository) List(ctx context.Context) ([]*Service, error) {
	return r.list(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY name`)
}

// ListActive returns bookable services only.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]*Service, error) {
	return r.list(ctx, `SELECT `+serviceColumns+` FROM services WHERE is_active ORDER BY name`)
}

func (r *PostgresRepository) list(ctx context.Context, query string) ([]*Service, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: list services failed: %w", err)
	}
	defer rows.Close()

	var out []*Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan service failed: %w", err)
		}
		out = append(out, svc)
	}
	return out, rows.Err()
}

// DurationMap bulk-fetches durations for the given service IDs in one query.
func (r *PostgresRepository) DurationMap(ctx context.Context, serviceIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return out, nil
	}

	query := `SELECT id, duration_minutes FROM services WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("catalog: duration map query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var duration int
		if err := rows.Scan(&id, &duration); err != nil {
			return nil, fmt.Errorf("catalog: scan duration failed: %w", err)
		}
		out[id] = duration
	}
	return out, rows.Err()
}

// CreateGroup inserts a new service group row.
func (r *PostgresRepository) CreateGroup(ctx context.Context, name string, sortOrder int) (*ServiceGroup, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	group := &ServiceGroup{ID: uuid.New().String(), Name: name, SortOrder: sortOrder}
	query := `INSERT INTO service_groups (id, name, sort_order) VALUES ($1, $2, $3)`
	if _, err := r.pool.Exec(ctx, query, group.ID, group.Name, group.SortOrder); err != nil {
		return nil, fmt.Errorf("catalog: insert group failed: %w", err)
	}
	return group, nil
}

// ListGroups returns all service groups in display order.
func (r *PostgresRepository) ListGroups(ctx context.Context) ([]*ServiceGroup, error) {
	query := `SELECT id, name, sort_order FROM service_groups ORDER BY sort_order, name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: list groups failed: %w", err)
	}
	defer rows.Close()

	var out []*ServiceGroup
	for rows.Next() {
		var g ServiceGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.SortOrder); err != nil {
			return nil, fmt.Errorf("catalog: scan group failed: %w", err)
		}
		out = append(out, &g)
	}
	return out, rows.Err()
}
