package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Doctor mirrors the backend's doctor resource. AvailableDays maps a
// weekday key ("mon".."sun") to time-range strings like "10:00-14:00".
type Doctor struct {
	ID             int                 `json:"id,omitempty"`
	Name           string              `json:"name"`
	Specialization string              `json:"specialization"`
	AvailableDays  map[string][]string `json:"available_days"`
	SlotDuration   int                 `json:"slot_duration,omitempty"`
}

// ListDoctors returns all doctors.
func (c *Client) ListDoctors(ctx context.Context, sessionID string) ([]Doctor, error) {
	var doctors []Doctor
	if err := c.doJSON(ctx, sessionID, http.MethodGet, "/doctors/", nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// GetDoctor returns one doctor by ID.
func (c *Client) GetDoctor(ctx context.Context, sessionID string, doctorID int) (*Doctor, error) {
	var doctor Doctor
	if err := c.doJSON(ctx, sessionID, http.MethodGet, fmt.Sprintf("/doctors/%d", doctorID), nil, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// CreateDoctor registers a new doctor.
func (c *Client) CreateDoctor(ctx context.Context, sessionID string, doctor Doctor) (*Doctor, error) {
	var created Doctor
	if err := c.doJSON(ctx, sessionID, http.MethodPost, "/doctors/", doctor, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDoctor updates an existing doctor.
func (c *Client) UpdateDoctor(ctx context.Context, sessionID string, doctorID int, doctor Doctor) (*Doctor, error) {
	var updated Doctor
	if err := c.doJSON(ctx, sessionID, http.MethodPut, fmt.Sprintf("/doctors/%d", doctorID), doctor, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteDoctor removes a doctor.
func (c *Client) DeleteDoctor(ctx context.Context, sessionID string, doctorID int) error {
	return c.doJSON(ctx, sessionID, http.MethodDelete, fmt.Sprintf("/doctors/%d", doctorID), nil, nil)
}

// AvailableSlots returns the open appointment slots for a doctor on a
// date (YYYY-MM-DD). Slot computation is entirely backend-side.
func (c *Client) AvailableSlots(ctx context.Context, sessionID string, doctorID int, date string) ([]string, error) {
	path := fmt.Sprintf("/doctor_slot/%d/available-slots?date_str=%s", doctorID, url.QueryEscape(date))

	var slots []string
	if err := c.doJSON(ctx, sessionID, http.MethodGet, path, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
