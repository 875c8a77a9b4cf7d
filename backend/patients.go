package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Patient mirrors the backend's patient resource.
type Patient struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// ListPatients returns all patients.
func (c *Client) ListPatients(ctx context.Context, sessionID string) ([]Patient, error) {
	var patients []Patient
	if err := c.doJSON(ctx, sessionID, http.MethodGet, "/patients/", nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// GetPatient returns one patient by ID.
func (c *Client) GetPatient(ctx context.Context, sessionID string, patientID int) (*Patient, error) {
	var patient Patient
	if err := c.doJSON(ctx, sessionID, http.MethodGet, fmt.Sprintf("/patients/%d", patientID), nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// CreatePatient registers a new patient.
func (c *Client) CreatePatient(ctx context.Context, sessionID string, patient Patient) (*Patient, error) {
	var created Patient
	if err := c.doJSON(ctx, sessionID, http.MethodPost, "/patients/", patient, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePatient updates an existing patient.
func (c *Client) UpdatePatient(ctx context.Context, sessionID string, patientID int, patient Patient) (*Patient, error) {
	var updated Patient
	if err := c.doJSON(ctx, sessionID, http.MethodPut, fmt.Sprintf("/patients/%d", patientID), patient, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePatient removes a patient.
func (c *Client) DeletePatient(ctx context.Context, sessionID string, patientID int) error {
	return c.doJSON(ctx, sessionID, http.MethodDelete, fmt.Sprintf("/patients/%d", patientID), nil, nil)
}
