// Package plex is a minimal Plex Media Server client: library sections,
// server identity, and filtered section searches.
package plex

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vmunix/plexfind/pkg/query"
)

// DefaultTimeout bounds each request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client interacts with the Plex Media Server API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new Plex client.
func NewClient(baseURL, token string, log *slog.Logger, opts ...Option) *Client {
	if log == nil {
		log = slog.Default()
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		log:     log.With("component", "plex"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Identity holds Plex server identity information.
type Identity struct {
	Name              string `json:"name"`
	Version           string `json:"version"`
	MachineIdentifier string `json:"machineIdentifier"`
}

// identityResponse is the XML response from the root endpoint.
type identityResponse struct {
	XMLName           xml.Name `xml:"MediaContainer"`
	FriendlyName      string   `xml:"friendlyName,attr"`
	Version           string   `xml:"version,attr"`
	MachineIdentifier string   `xml:"machineIdentifier,attr"`
}

// Section represents a Plex library section.
type Section struct {
	Key           string     `xml:"key,attr" json:"key"`
	Title         string     `xml:"title,attr" json:"title"`
	Type          string     `xml:"type,attr" json:"type"`
	Locations     []Location `xml:"Location" json:"locations,omitempty"`
	ScannedAt     int64      `xml:"scannedAt,attr" json:"scannedAt,omitempty"`
	RefreshingRaw int        `xml:"refreshing,attr" json:"-"`
}

// Refreshing returns true if the section is currently being scanned.
func (s Section) Refreshing() bool {
	return s.RefreshingRaw == 1
}

// Query returns the section in the form the query compiler resolves
// targets against.
func (s Section) Query() query.Section {
	return query.Section{ID: s.Key, Type: s.Type, Title: s.Title}
}

// Location represents a library section's filesystem location.
type Location struct {
	Path string `xml:"path,attr" json:"path"`
}

// sectionsResponse is the XML response from /library/sections.
type sectionsResponse struct {
	XMLName  xml.Name  `xml:"MediaContainer"`
	Sections []Section `xml:"Directory"`
}

// get performs an authenticated GET and decodes the XML body into v.
func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/xml")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("plex request",
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := xml.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// GetSections returns all library sections.
func (c *Client) GetSections(ctx context.Context) ([]Section, error) {
	var result sectionsResponse
	if err := c.get(ctx, "/library/sections", &result); err != nil {
		return nil, err
	}
	return result.Sections, nil
}

// Sections returns the library sections in the form the query compiler
// resolves targets against.
func (c *Client) Sections(ctx context.Context) ([]query.Section, error) {
	sections, err := c.GetSections(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]query.Section, len(sections))
	for i, s := range sections {
		out[i] = s.Query()
	}
	return out, nil
}

// GetIdentity returns the Plex server name, version and machine identifier.
func (c *Client) GetIdentity(ctx context.Context) (*Identity, error) {
	var result identityResponse
	if err := c.get(ctx, "/", &result); err != nil {
		return nil, err
	}
	return &Identity{
		Name:              result.FriendlyName,
		Version:           result.Version,
		MachineIdentifier: result.MachineIdentifier,
	}, nil
}

// Execute runs a compiled search against its library section and returns
// the single page of records the query's window selects.
func (c *Client) Execute(ctx context.Context, q *query.Compiled) ([]Record, error) {
	if q.SectionID == "" {
		return nil, query.ErrNoSection
	}
	path := fmt.Sprintf("/library/sections/%s/all?%s", q.SectionID, q.Values())

	var result libraryItemsResponse
	if err := c.get(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("search section %s: %w", q.SectionID, err)
	}

	records := result.records()
	c.log.Debug("section search complete",
		"section", q.SectionID,
		"sort", q.Sort,
		"results", len(records))
	return records, nil
}
