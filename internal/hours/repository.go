package hours

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Repository defines the interface for opening-hours storage
type Repository interface {
	UpsertBusinessHours(ctx context.Context, entry *BusinessHoursEntry) error
	ListBusinessHours(ctx context.Context) ([]*BusinessHoursEntry, error)
	// GetBusinessHours returns nil with no error when the weekday has no
	// entry, which means the salon is closed that day.
	GetBusinessHours(ctx context.Context, dayOfWeek string) (*BusinessHoursEntry, error)
	CreateOverride(ctx context.Context, req *CreateOverrideRequest) (*ScheduleOverride, error)
	// GetOverride returns nil with no error when the date has no override.
	GetOverride(ctx context.Context, date string) (*ScheduleOverride, error)
	ListOverrides(ctx context.Context, from, to string) ([]*ScheduleOverride, error)
	DeleteOverride(ctx context.Context, id string) error
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu        sync.RWMutex
	weekdays  map[string]*BusinessHoursEntry
	overrides map[string]*ScheduleOverride // keyed by date
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		weekdays:  make(map[string]*BusinessHoursEntry),
		overrides: make(map[string]*ScheduleOverride),
	}
}

// UpsertBusinessHours stores the entry for its weekday
func (r *InMemoryRepository) UpsertBusinessHours(ctx context.Context, entry *BusinessHoursEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	clone := *entry
	r.mu.Lock()
	r.weekdays[entry.DayOfWeek] = &clone
	r.mu.Unlock()
	return nil
}

// ListBusinessHours returns all weekday entries ordered by weekday name
func (r *InMemoryRepository) ListBusinessHours(ctx context.Context) ([]*BusinessHoursEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*BusinessHoursEntry, 0, len(r.weekdays))
	for _, e := range r.weekdays {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

// GetBusinessHours returns the entry for a weekday, or nil when absent
func (r *InMemoryRepository) GetBusinessHours(ctx context.Context, dayOfWeek string) (*BusinessHoursEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.weekdays[dayOfWeek], nil
}

// CreateOverride stores a date override, replacing any existing one for the date
func (r *InMemoryRepository) CreateOverride(ctx context.Context, req *CreateOverrideRequest) (*ScheduleOverride, error) {
	if err := req.Validate(); err != nil {
		return nil, err
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

	r.mu.Lock()
	r.overrides[override.Date] = override
	r.mu.Unlock()

	return override, nil
}

// GetOverride returns the override for a date, or nil when absent
func (r *InMemoryRepository) GetOverride(ctx context.Context, date string) (*ScheduleOverride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.overrides[date], nil
}

// ListOverrides returns overrides with from <= date <= to, ordered by date
func (r *InMemoryRepository) ListOverrides(ctx context.Context, from, to string) ([]*ScheduleOverride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*ScheduleOverride
	for _, o := range r.overrides {
		if o.Date >= from && o.Date <= to {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// DeleteOverride removes an override by ID
func (r *InMemoryRepository) DeleteOverride(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for date, o := range r.overrides {
		if o.ID == id {
			delete(r.overrides, date)
			return nil
		}
	}
	return ErrOverrideNotFound
}
