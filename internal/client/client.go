package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"tripcraft/internal/models/request_models"
	"tripcraft/internal/models/response_models"
)

const (
	DefaultBaseURL   = "http://localhost:52502"
	DefaultInterests = "general sightseeing"
)

// ErrRequestInFlight is returned when the same kind of generation is already
// running on this client.
var ErrRequestInFlight = errors.New("request already in flight")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
	TraceID    string
}

func (e *APIError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("api: %d %s (trace %s)", e.StatusCode, e.Message, e.TraceID)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	itineraryBusy   atomic.Bool
	suggestionsBusy atomic.Bool
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateItinerary asks the backend for a days-long plan. Empty interests
// are replaced with DefaultInterests.
func (c *Client) GenerateItinerary(ctx context.Context, destination string, days int, interests string) (response_models.Itinerary, error) {
	if !c.itineraryBusy.CompareAndSwap(false, true) {
		return response_models.Itinerary{}, ErrRequestInFlight
	}
	defer c.itineraryBusy.Store(false)

	req := request_models.ItineraryRequest{
		Destination: destination,
		Days:        request_models.DayCount(days),
		Interests:   interestsOrDefault(interests),
	}
	var itinerary response_models.Itinerary
	if err := c.post(ctx, "/api/generate-itinerary", req, &itinerary); err != nil {
		return response_models.Itinerary{}, err
	}
	return itinerary, nil
}

func (c *Client) GenerateSuggestions(ctx context.Context, destination, interests string) ([]string, error) {
	if !c.suggestionsBusy.CompareAndSwap(false, true) {
		return nil, ErrRequestInFlight
	}
	defer c.suggestionsBusy.Store(false)

	req := request_models.SuggestionRequest{
		Destination: destination,
		Interests:   interestsOrDefault(interests),
	}
	var resp response_models.SuggestionsResponse
	if err := c.post(ctx, "/api/generate-suggestions", req, &resp); err != nil {
		return nil, err
	}
	if resp.Suggestions == nil {
		return nil, errors.New("api: invalid suggestions format")
	}
	return resp.Suggestions, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var body struct {
			Error   string `json:"error"`
			TraceID string `json:"trace_id"`
		}
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			apiErr.Message = body.Error
			apiErr.TraceID = body.TraceID
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func interestsOrDefault(interests string) string {
	if strings.TrimSpace(interests) == "" {
		return DefaultInterests
	}
	return interests
}
