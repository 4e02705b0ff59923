package catalog

import (
	"strings"
	"time"
)

// Service is a bookable treatment offered by the salon.
type Service struct {
	ID              string    `json:"id"`
	GroupID         string    `json:"group_id,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int64     `json:"price_cents"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// ServiceGroup clusters services for display ("Hair", "Nails").
type ServiceGroup struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// CreateServiceRequest is the admin request body for creating a service.
type CreateServiceRequest struct {
	GroupID         string `json:"group_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int64  `json:"price_cents"`
	IsActive        *bool  `json:"is_active"`
}

// Validate validates the create service request
func (r *CreateServiceRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if r.PriceCents < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// Active defaults to true when the request omits is_active.
func (r *CreateServiceRequest) Active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}

// UpdateServiceRequest is the admin request body for updating a service.
// Nil fields are left unchanged.
type UpdateServiceRequest struct {
	GroupID         *string `json:"group_id"`
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes"`
	PriceCents      *int64  `json:"price_cents"`
	IsActive        *bool   `json:"is_active"`
}

// Validate validates the update service request
func (r *UpdateServiceRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return ErrInvalidName
	}
	if r.DurationMinutes != nil && *r.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if r.PriceCents != nil && *r.PriceCents < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// Apply copies the set fields onto an existing service.
func (r *UpdateServiceRequest) Apply(s *Service) {
	if r.GroupID != nil {
		s.GroupID = *r.GroupID
	}
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.PriceCents != nil {
		s.PriceCents = *r.PriceCents
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}
