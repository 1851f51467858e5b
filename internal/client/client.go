// Package client is the API facade for the feedback service. It is the one
// place in the codebase that performs network I/O; everything above it works
// with typed results and plain errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/grcdash/fbk/internal/models"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "http://localhost:8080/api/v1"

// DefaultTimeout bounds every request. A hung server fails the call instead
// of leaving the caller waiting indefinitely.
const DefaultTimeout = 30 * time.Second

// APIError is returned for any non-2xx response. The service does not send
// a structured error payload, so the status code is all we carry.
type APIError struct {
	Status int
	Method string
	Path   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s %s returned %d", e.Method, e.Path, e.Status)
}

// Client issues REST requests against the feedback API.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithHTTPClient replaces the underlying http.Client (used in tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger sets the logger for request debugging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for the given base URL. An empty baseURL falls back
// to DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: DefaultTimeout},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListResult is one page of feedback plus the unfiltered total.
type ListResult struct {
	Items []models.Feedback `json:"data"`
	Total int               `json:"total"`
}

// CreateRequest is the payload for submitting new feedback.
type CreateRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    models.Category `json:"category"`
	Priority    models.Priority `json:"priority"`
	ImpactArea  string          `json:"impactArea,omitempty"`
}

// UpdateRequest is a partial update; nil fields are omitted from the PATCH.
type UpdateRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *models.Category `json:"category,omitempty"`
	Priority    *models.Priority `json:"priority,omitempty"`
	Status      *models.Status   `json:"status,omitempty"`
}

// List fetches a page of feedback, filtered server-side via query params
// mirroring models.Filters.
func (c *Client) List(ctx context.Context, f models.Filters, page, pageSize int) (*ListResult, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if active(string(f.Category)) {
		q.Set("category", string(f.Category))
	}
	if active(string(f.Status)) {
		q.Set("status", string(f.Status))
	}
	if active(string(f.Priority)) {
		q.Set("priority", string(f.Priority))
	}
	if f.SortBy != "" {
		q.Set("sortBy", string(f.SortBy))
	}
	if !f.From.IsZero() {
		q.Set("from", f.From.Format("2006-01-02"))
	}
	if !f.To.IsZero() {
		q.Set("to", f.To.Format("2006-01-02"))
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}

	var res ListResult
	if err := c.doJSON(ctx, http.MethodGet, "/feedback", q, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Get fetches a single feedback item by id.
func (c *Client) Get(ctx context.Context, id string) (*models.Feedback, error) {
	var fb models.Feedback
	if err := c.doJSON(ctx, http.MethodGet, "/feedback/"+id, nil, nil, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// Create submits new feedback and returns the created record with the
// server-assigned id.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*models.Feedback, error) {
	var fb models.Feedback
	if err := c.doJSON(ctx, http.MethodPost, "/feedback", nil, req, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// Update applies a partial update and returns the updated record.
func (c *Client) Update(ctx context.Context, id string, req UpdateRequest) (*models.Feedback, error) {
	var fb models.Feedback
	if err := c.doJSON(ctx, http.MethodPatch, "/feedback/"+id, nil, req, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// Delete removes a feedback item.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/feedback/"+id, nil, nil, nil)
}

// Vote casts a vote and returns the server's authoritative new count.
func (c *Client) Vote(ctx context.Context, id string, dir models.VoteDirection) (int, error) {
	body := map[string]string{"vote": string(dir)}
	var res struct {
		Votes int `json:"votes"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/feedback/"+id+"/vote", nil, body, &res); err != nil {
		return 0, err
	}
	return res.Votes, nil
}

// ListComments fetches the comments on a feedback item.
func (c *Client) ListComments(ctx context.Context, id string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.doJSON(ctx, http.MethodGet, "/feedback/"+id+"/comments", nil, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment posts a new comment and returns it.
func (c *Client) AddComment(ctx context.Context, id, body string) (*models.Comment, error) {
	var comment models.Comment
	payload := map[string]string{"body": body}
	if err := c.doJSON(ctx, http.MethodPost, "/feedback/"+id+"/comments", nil, payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UploadAttachment uploads a file as multipart form data.
func (c *Client) UploadAttachment(ctx context.Context, filename string, r io.Reader) (*models.Attachment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("copy attachment: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/feedback/attachments", &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var att models.Attachment
	if err := c.send(req, &att); err != nil {
		return nil, err
	}
	return &att, nil
}

// Analytics fetches aggregate feedback counters.
func (c *Client) Analytics(ctx context.Context) (*models.Analytics, error) {
	var a models.Analytics
	if err := c.doJSON(ctx, http.MethodGet, "/feedback/analytics", nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Engagement fetches community participation metrics.
func (c *Client) Engagement(ctx context.Context) (*models.Engagement, error) {
	var e models.Engagement
	if err := c.doJSON(ctx, http.MethodGet, "/feedback/engagement", nil, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// AIInsights fetches server-generated trend observations.
func (c *Client) AIInsights(ctx context.Context) ([]models.AIInsight, error) {
	var insights []models.AIInsight
	if err := c.doJSON(ctx, http.MethodGet, "/feedback/ai-insights", nil, nil, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}

// Roadmap fetches planned items, optionally scoped to a quarter ("2024-Q3").
func (c *Client) Roadmap(ctx context.Context, quarter string) ([]models.RoadmapItem, error) {
	var q url.Values
	if quarter != "" {
		q = url.Values{"quarter": []string{quarter}}
	}
	var items []models.RoadmapItem
	if err := c.doJSON(ctx, http.MethodGet, "/roadmap", q, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Community fetches community-wide statistics.
func (c *Client) Community(ctx context.Context) (*models.CommunityStats, error) {
	var s models.CommunityStats
	if err := c.doJSON(ctx, http.MethodGet, "/feedback/community", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// doJSON performs one request with a JSON body and decodes a JSON response
// into out (out may be nil for 204-style responses).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send executes a prepared request and decodes the response.
func (c *Client) send(req *http.Request, out any) error {
	c.log.Debug("api request", "method", req.Method, "url", req.URL.String())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &APIError{Status: resp.StatusCode, Method: req.Method, Path: req.URL.Path}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func active(v string) bool {
	return v != "" && v != models.FilterAll
}
