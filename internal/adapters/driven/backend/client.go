// Package backend implements the complaint repository and route
// planner ports against the municipal backend's REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
	"github.com/civita-labs/civita-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// ProactiveRate throttles outgoing requests. The backend is a
	// small municipal service; event-triggered refresh storms should
	// not flatten it.
	ProactiveRate = 5 // requests per second

	// ProactiveBurst allows short bursts, e.g. a status update
	// immediately followed by its refresh.
	ProactiveBurst = 10
)

// Ensure Client implements the ports.
var (
	_ driven.ComplaintRepository = (*Client)(nil)
	_ driven.RoutePlanner        = (*Client)(nil)
)

// Client is the stateless HTTP wrapper around the backend API. It
// holds no complaint state of its own: every answer is a fresh
// projection of backend truth.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a backend client for the given base URL, e.g.
// "http://127.0.0.1:5000".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(ProactiveRate), ProactiveBurst),
	}
}

// Wire types for the backend contract.

type createResponse struct {
	Success   bool              `json:"success"`
	Complaint *domain.Complaint `json:"complaint"`
}

type listResponse struct {
	Complaints []domain.Complaint `json:"complaints"`
}

type statusRequest struct {
	Status     domain.Status `json:"status"`
	AssignedTo string        `json:"assigned_to,omitempty"`
}

type statusResponse struct {
	Success bool `json:"success"`
}

type routeRequest struct {
	Start        domain.Location `json:"start"`
	ComplaintIDs []string        `json:"complaint_ids"`
}

type routeResponse struct {
	Route []domain.RouteStep `json:"route"`
}

// Create files a new complaint.
func (c *Client) Create(ctx context.Context, draft domain.ComplaintDraft) (*domain.Complaint, error) {
	var resp createResponse
	if err := c.do(ctx, http.MethodPost, "/api/complaints", draft, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Complaint == nil || resp.Complaint.ID == "" {
		return nil, fmt.Errorf("create complaint: %w", domain.ErrBackendRejected)
	}
	return resp.Complaint, nil
}

// List fetches the current complaint set, optionally server-filtered
// by priority.
func (c *Client) List(ctx context.Context, priority domain.Priority) ([]domain.Complaint, error) {
	path := "/api/complaints"
	if priority != "" {
		path += "?priority=" + url.QueryEscape(string(priority))
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Complaints == nil {
		return []domain.Complaint{}, nil
	}
	return resp.Complaints, nil
}

// Get fetches a single complaint by identifier.
func (c *Client) Get(ctx context.Context, id string) (*domain.Complaint, error) {
	var resp domain.Complaint
	if err := c.do(ctx, http.MethodGet, "/api/complaint/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("get complaint %s: %w", id, domain.ErrNotFound)
	}
	return &resp, nil
}

// UpdateStatus transitions a complaint to the given status.
func (c *Client) UpdateStatus(ctx context.Context, id string, status domain.Status, assignedTo string) error {
	req := statusRequest{Status: status, AssignedTo: assignedTo}
	var resp statusResponse
	if err := c.do(ctx, http.MethodPost, "/api/complaint/"+url.PathEscape(id)+"/status", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("update status of %s: %w", id, domain.ErrBackendRejected)
	}
	return nil
}

// ComputeRoute asks the backend for a visiting order over ids,
// starting from start. The response order is preserved as-is.
func (c *Client) ComputeRoute(ctx context.Context, start domain.Location, ids []string) ([]domain.RouteStep, error) {
	req := routeRequest{Start: start, ComplaintIDs: ids}
	var resp routeResponse
	if err := c.do(ctx, http.MethodPost, "/api/compute_route", req, &resp); err != nil {
		return nil, err
	}
	if resp.Route == nil {
		return nil, fmt.Errorf("compute route: %w", domain.ErrBackendRejected)
	}
	return resp.Route, nil
}

// Health probes the backend liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		OK bool `json:"ok"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("health: %w", domain.ErrBackendRejected)
	}
	return nil
}

// do sends one JSON request and decodes the JSON answer into out.
//
// Error taxonomy: anything that prevented an answer from arriving is a
// transport error and returned wrapped but otherwise as-is; an answer
// that arrived with a failure status wraps domain.ErrBackendRejected
// (or domain.ErrNotFound for 404) so callers can tell the two apart.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("backend: %s %s", method, path)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, domain.ErrBackendRejected)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode answer: %w", method, path, domain.ErrBackendRejected)
	}
	return nil
}
