package customers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores customers in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("customers: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// FindOrCreate upserts on the unique email column so concurrent bookings by
// the same customer never race into duplicates.
func (r *PostgresRepository) FindOrCreate(ctx context.Context, req *FindOrCreateRequest) (*Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO customers (id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			phone = CASE WHEN EXCLUDED.phone <> '' THEN EXCLUDED.phone ELSE customers.phone END
		RETURNING id, name, email, phone, created_at
	`
	var c Customer
	if err := r.pool.QueryRow(ctx, query,
		uuid.New().String(), req.Name, req.NormalizedEmail(), req.Phone,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("customers: upsert failed: %w", err)
	}
	return &c, nil
}

// GetByID fetches a single customer.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Customer, error) {
	query := `SELECT id, name, email, phone, created_at FROM customers WHERE id = $1`
	var c Customer
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customers: select failed: %w", err)
	}
	return &c, nil
}

// List returns all customers ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]*Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, email, phone, created_at FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("customers: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("customers: scan failed: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
