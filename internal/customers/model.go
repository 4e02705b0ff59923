package customers

import (
	"strings"
	"time"
)

// Customer is a booking customer, deduplicated by email.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FindOrCreateRequest carries the contact details captured by the booking
// wizard. An existing customer is matched by normalized email; name and
// phone are refreshed on match so the latest details win.
type FindOrCreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate validates the find-or-create request
func (r *FindOrCreateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if !strings.Contains(r.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// NormalizedEmail returns the email lowercased and trimmed, the form used
// as the dedupe key.
func (r *FindOrCreateRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(r.Email))
}
