package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/models"
	"github.com/minhtpham/mealgrid/internal/planner"
)

const defaultTimeout = 10 * time.Second

// StatusError is a non-2xx reply: the server was reached and turned the
// request down. Transport failures never produce one, so callers can tell
// "rejected" from "offline".
type StatusError struct {
	Route  string
	Status string
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Route, e.Detail, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Route, e.Status)
}

// Client talks to the planner backend. All methods return plain errors; the
// degrade-to-local policy (warn and keep going) is the caller's job, so that
// commands which genuinely need the server can still fail loudly.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// BaseURL returns the configured server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// LoadWeek fetches the slot assignments for the week starting at the
// window's Monday.
func (c *Client) LoadWeek(ctx context.Context, w planner.WeekWindow) (models.WeekResponse, error) {
	u := fmt.Sprintf("%s/planner/week?start=%s", c.baseURL, url.QueryEscape(w.StartISO()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.WeekResponse{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.WeekResponse{}, fmt.Errorf("planner week request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.WeekResponse{}, &StatusError{Route: "GET /planner/week", Status: resp.Status, Detail: responseDetail(resp)}
	}

	var week models.WeekResponse
	if err := json.NewDecoder(resp.Body).Decode(&week); err != nil {
		return models.WeekResponse{}, fmt.Errorf("failed to decode week response: %w", err)
	}
	return week, nil
}

// SaveSlot upserts one planner slot. A nil recipeID clears the slot. The
// server echoes the saved record so the caller can reconcile local state
// with whatever normalization the server applied.
func (c *Client) SaveSlot(ctx context.Context, date string, meal constants.MealType, recipeID *int, note string) (models.SlotRecord, error) {
	body, err := json.Marshal(models.SlotRequest{
		Date:     date,
		MealType: string(meal),
		RecipeID: recipeID,
		Note:     note,
	})
	if err != nil {
		return models.SlotRecord{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/planner/slot", bytes.NewReader(body))
	if err != nil {
		return models.SlotRecord{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.SlotRecord{}, fmt.Errorf("planner slot save failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.SlotRecord{}, &StatusError{Route: "POST /planner/slot", Status: resp.Status, Detail: responseDetail(resp)}
	}

	var rec models.SlotRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return models.SlotRecord{}, fmt.Errorf("failed to decode slot echo: %w", err)
	}
	return rec, nil
}

// FetchRecipes loads both catalog feeds and merges them, tagging each entry
// with its source. A failed feed fails the whole fetch; callers fall back to
// the offline cache.
func (c *Client) FetchRecipes(ctx context.Context) ([]models.CatalogEntry, error) {
	student, err := c.fetchFeed(ctx, "/api/student/recipes", constants.SourceStudent)
	if err != nil {
		return nil, err
	}
	gym, err := c.fetchFeed(ctx, "/api/gym/recipes", constants.SourceGym)
	if err != nil {
		return nil, err
	}
	return append(student, gym...), nil
}

func (c *Client) fetchFeed(ctx context.Context, path string, src constants.RecipeSource) ([]models.CatalogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recipe feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Route: "GET " + path, Status: resp.Status, Detail: responseDetail(resp)}
	}

	var entries []models.CatalogEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode recipe feed %s: %w", path, err)
	}
	for i := range entries {
		entries[i].Source = src
	}
	return entries, nil
}

// Ping checks that the server answers at all. Used by doctor.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/planner/week", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// responseDetail extracts the message from a non-2xx body, or "" when there
// is none. FastAPI-style backends put it under "detail"; others use "message".
func responseDetail(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return ""
}
