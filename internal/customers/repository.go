package customers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for customer storage
type Repository interface {
	FindOrCreate(ctx context.Context, req *FindOrCreateRequest) (*Customer, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu        sync.RWMutex
	customers map[string]*Customer // keyed by ID
	byEmail   map[string]string    // normalized email -> ID
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		customers: make(map[string]*Customer),
		byEmail:   make(map[string]string),
	}
}

// FindOrCreate matches by normalized email, refreshing name and phone on a
// match, and creates the customer otherwise
func (r *InMemoryRepository) FindOrCreate(ctx context.Context, req *FindOrCreateRequest) (*Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	email := req.NormalizedEmail()

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byEmail[email]; ok {
		existing := *r.customers[id]
		existing.Name = req.Name
		if req.Phone != "" {
			existing.Phone = req.Phone
		}
		r.customers[id] = &existing
		return &existing, nil
	}

	customer := &Customer{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     email,
		Phone:     req.Phone,
		CreatedAt: time.Now().UTC(),
	}
	r.customers[customer.ID] = customer
	r.byEmail[email] = customer.ID
	return customer, nil
}

// GetByID retrieves a customer by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// List returns all customers ordered by name
func (r *InMemoryRepository) List(ctx context.Context) ([]*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
