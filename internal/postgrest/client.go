// Package postgrest reads and writes missing-persons records through a
// Supabase/PostgREST REST endpoint.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/manshur0590/TraceMe/internal/domain"
)

// selectColumns is the fixed projection requested from the collection
const selectColumns = "id,name,photo_url,face_embedding"

var (
	// ErrUnexpectedStatus is returned for any answer other than the expected one
	ErrUnexpectedStatus = errors.New("unexpected status from reference store")
	ErrInvalidResponse  = errors.New("invalid response from reference store")
)

// Config holds the REST endpoint settings
type Config struct {
	BaseURL string
	APIKey  string
	Table   string
	Timeout time.Duration
}

// Client is a minimal PostgREST client for one table
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a new PostgREST client
func NewClient(config Config) *Client {
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	if config.Table == "" {
		config.Table = "missing_persons"
	}

	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
	}
}

func (c *Client) tableURL() string {
	return c.config.BaseURL + "/rest/v1/" + url.PathEscape(c.config.Table)
}

// ListPersons fetches every record with its embedding in a single request.
// Any status other than 200 is a failure.
func (c *Client) ListPersons(ctx context.Context) ([]domain.Person, error) {
	query := url.Values{"select": {selectColumns}}

	body, err := c.do(ctx, http.MethodGet, c.tableURL()+"?"+query.Encode(), nil, http.StatusOK, nil)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}

	var rows []personRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("list persons: %w: %v", ErrInvalidResponse, err)
	}

	persons := make([]domain.Person, 0, len(rows))
	for _, row := range rows {
		persons = append(persons, row.toDomain())
	}

	return persons, nil
}

// AddPerson inserts a record and fills in the id assigned by the store
func (c *Client) AddPerson(ctx context.Context, person *domain.Person) error {
	payload, err := json.Marshal(newInsertRow(person))
	if err != nil {
		return fmt.Errorf("add person: marshal: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"Prefer":       "return=representation",
	}

	body, err := c.do(ctx, http.MethodPost, c.tableURL(), payload, http.StatusCreated, headers)
	if err != nil {
		return fmt.Errorf("add person: %w", err)
	}

	var rows []personRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("add person: %w: %v", ErrInvalidResponse, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("add person: %w: empty representation", ErrInvalidResponse)
	}

	person.ID = rows[0].ID.String()
	return nil
}

// Ping checks that the table is reachable with the configured key
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{"select": {"id"}, "limit": {"1"}}

	if _, err := c.do(ctx, http.MethodGet, c.tableURL()+"?"+query.Encode(), nil, http.StatusOK, nil); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, target string, payload []byte, wantStatus int, headers map[string]string) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("apikey", c.config.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, truncate(string(body), 256))
	}

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
