// Package adapter is the client side of the command surface: a thin resty
// wrapper used by cabinetctl to drive a running cabinetd.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/smaillet/cabinet/models"
)

// ClientConfig configures the daemon connection.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to a running cabinetd over its localhost API.
type Client struct {
	client *resty.Client
}

// NewClient constructs a [Client] with sane defaults for a local daemon.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://127.0.0.1:8787"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &Client{client: cli}
}

// errorBody mirrors the daemon's failure response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// mapHTTPError converts a non-2xx response into a tagged sentinel error
// carrying the daemon's displayable message.
func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	var body errorBody
	message := strings.TrimSpace(string(resp.Body()))
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		message = body.Message
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrInvalidInput, message)
	default:
		return fmt.Errorf("%w: %s", ErrServerFailure, message)
	}
}

// ListProfiles fetches the profile catalog summaries.
func (c *Client) ListProfiles(ctx context.Context) ([]models.ProfileSummary, error) {
	var summaries []models.ProfileSummary

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&summaries).
		Get("/api/profiles")
	if err != nil {
		return nil, fmt.Errorf("list profiles request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return summaries, nil
}

// CreateProfile creates a profile and returns its summary.
func (c *Client) CreateProfile(ctx context.Context, name, password string) (models.ProfileSummary, error) {
	var summary models.ProfileSummary

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"name": name, "password": password}).
		SetResult(&summary).
		Post("/api/profiles")
	if err != nil {
		return models.ProfileSummary{}, fmt.Errorf("create profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProfileSummary{}, err
	}

	return summary, nil
}

// OpenProfile unlocks a profile, making it the daemon's active session.
func (c *Client) OpenProfile(ctx context.Context, profileID, password string) (models.ProfileSummary, error) {
	var summary models.ProfileSummary

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"password": password}).
		SetResult(&summary).
		Post("/api/profiles/" + profileID + "/open")
	if err != nil {
		return models.ProfileSummary{}, fmt.Errorf("open profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProfileSummary{}, err
	}

	return summary, nil
}

// CloseSession locks the daemon's active session.
func (c *Client) CloseSession(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Post("/api/session/close")
	if err != nil {
		return fmt.Errorf("close session request: %w", err)
	}
	return mapHTTPError(resp)
}

// ListPatients fetches the active profile's patients.
func (c *Client) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&patients).
		Get("/api/patients")
	if err != nil {
		return nil, fmt.Errorf("list patients request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return patients, nil
}

// CreatePatient adds a patient to the active profile's store.
func (c *Client) CreatePatient(ctx context.Context, input models.PatientInput) (models.Patient, error) {
	var patient models.Patient

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		SetResult(&patient).
		Post("/api/patients")
	if err != nil {
		return models.Patient{}, fmt.Errorf("create patient request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Patient{}, err
	}

	return patient, nil
}

// DeletePatient removes a patient by id. Idempotent on the daemon side.
func (c *Client) DeletePatient(ctx context.Context, patientID string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Delete("/api/patients/" + patientID)
	if err != nil {
		return fmt.Errorf("delete patient request: %w", err)
	}
	return mapHTTPError(resp)
}
