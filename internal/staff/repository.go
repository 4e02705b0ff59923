package staff

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for worker storage
type Repository interface {
	Create(ctx context.Context, req *CreateWorkerRequest) (*Worker, error)
	GetByID(ctx context.Context, id string) (*Worker, error)
	List(ctx context.Context) ([]*Worker, error)
	ListActive(ctx context.Context) ([]*Worker, error)
	// ListForServices returns active workers that offer every given service.
	ListForServices(ctx context.Context, serviceIDs []string) ([]*Worker, error)
	SetWorkingHours(ctx context.Context, workerID string, entries []WorkingHoursEntry) (*Worker, error)
	SetServices(ctx context.Context, workerID string, serviceIDs []string) (*Worker, error)
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu      sync.RWMutex
	workers map[string]*Worker
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		workers: make(map[string]*Worker),
	}
}

// Create creates a new worker in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateWorkerRequest) (*Worker, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	worker := &Worker{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		IsActive:     req.Active(),
		ServiceIDs:   append([]string(nil), req.ServiceIDs...),
		WorkingHours: append([]WorkingHoursEntry(nil), req.WorkingHours...),
		CreatedAt:    time.Now().UTC(),
	}

	r.mu.Lock()
	r.workers[worker.ID] = worker
	r.mu.Unlock()

	return worker, nil
}

// GetByID retrieves a worker by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	worker, ok := r.workers[id]
	if !ok {
		return nil, ErrWorkerNotFound
	}
	return worker, nil
}

// List returns all workers ordered by name
func (r *InMemoryRepository) List(ctx context.Context) ([]*Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Worker, 0, len(r.workers))
	for _, w := range r.workers {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListActive returns active workers ordered by name
func (r *InMemoryRepository) ListActive(ctx context.Context) ([]*Worker, error) {
	all, _ := r.List(ctx)
	out := make([]*Worker, 0, len(all))
	for _, w := range all {
		if w.IsActive {
			out = append(out, w)
		}
	}
	return out, nil
}

// ListForServices returns active workers offering every given service
func (r *InMemoryRepository) ListForServices(ctx context.Context, serviceIDs []string) ([]*Worker, error) {
	active, _ := r.ListActive(ctx)
	out := make([]*Worker, 0, len(active))
	for _, w := range active {
		if w.OffersAll(serviceIDs) {
			out = append(out, w)
		}
	}
	return out, nil
}

// SetWorkingHours replaces a worker's weekly schedule
func (r *InMemoryRepository) SetWorkingHours(ctx context.Context, workerID string, entries []WorkingHoursEntry) (*Worker, error) {
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

	r.mu.Lock()
	defer r.mu.Unlock()

	worker, ok := r.workers[workerID]
	if !ok {
		return nil, ErrWorkerNotFound
	}
	updated := *worker
	updated.WorkingHours = append([]WorkingHoursEntry(nil), entries...)
	r.workers[workerID] = &updated
	return &updated, nil
}

// SetServices replaces the set of services a worker offers
func (r *InMemoryRepository) SetServices(ctx context.Context, workerID string, serviceIDs []string) (*Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	worker, ok := r.workers[workerID]
	if !ok {
		return nil, ErrWorkerNotFound
	}
	updated := *worker
	updated.ServiceIDs = append([]string(nil), serviceIDs...)
	r.workers[workerID] = &updated
	return &updated, nil
}
