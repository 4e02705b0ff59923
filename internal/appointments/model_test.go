package appointments

import (
	"encoding/json"
	"testing"
)

func TestServiceRefAcceptsBareID(t *testing.T) {
	var req CreateAppointmentRequest
	payload := `{"services": ["svc-1", "svc-2"]}`

	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := req.ServiceIDs()
	if len(ids) != 2 || ids[0] != "svc-1" || ids[1] != "svc-2" {
		t.Errorf("unexpected IDs: %v", ids)
	}
}

func TestServiceRefAcceptsExpandedObject(t *testing.T) {
	var req CreateAppointmentRequest
	payload := `{"services": [{"id": "svc-1", "name": "Klipp", "duration_minutes": 30}, "svc-2"]}`

	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := req.ServiceIDs()
	if len(ids) != 2 || ids[0] != "svc-1" || ids[1] != "svc-2" {
		t.Errorf("unexpected IDs: %v", ids)
	}
}

func TestServiceRefRejectsObjectWithoutID(t *testing.T) {
	var req CreateAppointmentRequest
	payload := `{"services": [{"name": "Klipp"}]}`

	if err := json.Unmarshal([]byte(payload), &req); err == nil {
		t.Error("expected error for object without id")
	}
}

func TestCreateAppointmentRequestValidate(t *testing.T) {
	valid := CreateAppointmentRequest{
		CustomerName:  "Anna",
		CustomerEmail: "anna@example.com",
		WorkerID:      "w1",
		Services:      []ServiceRef{{ID: "svc-1"}},
		Date:          "2026-03-02",
		Time:          "10:00",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*CreateAppointmentRequest)
		want   error
	}{
		{"missing name", func(r *CreateAppointmentRequest) { r.CustomerName = " " }, ErrMissingCustomer},
		{"bad email", func(r *CreateAppointmentRequest) { r.CustomerEmail = "nope" }, ErrMissingCustomer},
		{"missing worker", func(r *CreateAppointmentRequest) { r.WorkerID = "" }, ErrMissingWorker},
		{"no services", func(r *CreateAppointmentRequest) { r.Services = nil }, ErrMissingServices},
		{"bad date", func(r *CreateAppointmentRequest) { r.Date = "02.03.2026" }, ErrInvalidDate},
		{"bad time", func(r *CreateAppointmentRequest) { r.Time = "25:00" }, ErrInvalidTime},
	}
	for _, c := range cases {
		req := valid
		c.mutate(&req)
		if err := req.Validate(); err != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, err)
		}
	}
}

func TestNewCancellationToken(t *testing.T) {
	a, err := NewCancellationToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewCancellationToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("expected tokens to differ")
	}
}
