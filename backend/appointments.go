package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Appointment mirrors the backend's appointment resource. Date and times
// are passed through as the backend's ISO strings; the portal never
// computes with them.
type Appointment struct {
	ID        int    `json:"id,omitempty"`
	DoctorID  int    `json:"doctor_id"`
	PatientID int    `json:"patient_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// ListAppointments returns all appointments.
func (c *Client) ListAppointments(ctx context.Context, sessionID string) ([]Appointment, error) {
	var appointments []Appointment
	if err := c.doJSON(ctx, sessionID, http.MethodGet, "/appointments/", nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// GetAppointment returns one appointment by ID.
func (c *Client) GetAppointment(ctx context.Context, sessionID string, appointmentID int) (*Appointment, error) {
	var appointment Appointment
	if err := c.doJSON(ctx, sessionID, http.MethodGet, fmt.Sprintf("/appointments/%d", appointmentID), nil, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// CreateAppointment books an appointment. Slot conflicts come back from
// the backend as a StatusError; check with IsStatus(err, http.StatusConflict).
func (c *Client) CreateAppointment(ctx context.Context, sessionID string, appointment Appointment) (*Appointment, error) {
	var created Appointment
	if err := c.doJSON(ctx, sessionID, http.MethodPost, "/appointments/", appointment, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAppointment updates an existing appointment.
func (c *Client) UpdateAppointment(ctx context.Context, sessionID string, appointmentID int, appointment Appointment) (*Appointment, error) {
	var updated Appointment
	if err := c.doJSON(ctx, sessionID, http.MethodPut, fmt.Sprintf("/appointments/%d", appointmentID), appointment, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAppointment cancels an appointment.
func (c *Client) DeleteAppointment(ctx context.Context, sessionID string, appointmentID int) error {
	return c.doJSON(ctx, sessionID, http.MethodDelete, fmt.Sprintf("/appointments/%d", appointmentID), nil, nil)
}
