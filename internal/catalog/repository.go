package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for service catalog storage
type Repository interface {
	Create(ctx context.Context, req *CreateServiceRequest) (*Service, error)
	Update(ctx context.Context, id string, req *UpdateServiceRequest) (*Service, error)
	GetByID(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context) ([]*Service, error)
	ListActive(ctx context.Context) ([]*Service, error)
	// DurationMap bulk-fetches durations for the given service IDs.
	// Unknown IDs are simply absent from the result.
	DurationMap(ctx context.Context, serviceIDs []string) (map[string]int, error)
	CreateGroup(ctx context.Context, name string, sortOrder int) (*ServiceGroup, error)
	ListGroups(ctx context.Context) ([]*ServiceGroup, error)
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu       sync.RWMutex
	services map[string]*Service
	groups   map[string]*ServiceGroup
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		services: make(map[string]*Service),
		groups:   make(map[string]*ServiceGroup),
	}
}

// Create creates a new service in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	svc := &Service{
		ID:              uuid.New().String(),
		GroupID:         req.GroupID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		IsActive:        req.Active(),
		CreatedAt:       time.Now().UTC(),
	}

	r.mu.Lock()
	r.services[svc.ID] = svc
	r.mu.Unlock()

	return svc, nil
}

// Update applies a partial update to a stored service
func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpdateServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	svc, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	updated := *svc
	req.Apply(&updated)
	r.services[id] = &updated
	return &updated, nil
}

// GetByID retrieves a service by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// List returns all services ordered by name
func (r *InMemoryRepository) List(ctx context.Context) ([]*Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Service, 0, len(r.services))
	for _, svc := range r.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListActive returns active services ordered by name
func (r *InMemoryRepository) ListActive(ctx context.Context) ([]*Service, error) {
	all, _ := r.List(ctx)
	out := make([]*Service, 0, len(all))
	for _, svc := range all {
		if svc.IsActive {
			out = append(out, svc)
		}
	}
	return out, nil
}

// DurationMap returns durations for the requested service IDs
func (r *InMemoryRepository) DurationMap(ctx context.Context, serviceIDs []string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int, len(serviceIDs))
	for _, id := range serviceIDs {
		if svc, ok := r.services[id]; ok {
			out[id] = svc.DurationMinutes
		}
	}
	return out, nil
}

// CreateGroup creates a new service group in memory
func (r *InMemoryRepository) CreateGroup(ctx context.Context, name string, sortOrder int) (*ServiceGroup, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	group := &ServiceGroup{
		ID:        uuid.New().String(),
		Name:      name,
		SortOrder: sortOrder,
	}

	r.mu.Lock()
	r.groups[group.ID] = group
	r.mu.Unlock()

	return group, nil
}

// ListGroups returns all groups ordered by sort order, then name
func (r *InMemoryRepository) ListGroups(ctx context.Context) ([]*ServiceGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*ServiceGroup, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
