package tvmaze

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tvshelf/tvshelf/internal/domain"
)

const (
	// DefaultBaseURL is the public TVmaze API
	DefaultBaseURL   = "https://api.tvmaze.com/"
	defaultUserAgent = "tvshelf/0.1"
)

// Ensure Client implements domain.CatalogClient at compile time.
var _ domain.CatalogClient = (*Client)(nil)

// Client talks to the TVmaze HTTP API
type Client struct {
	baseURL    *url.URL
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// Options configures a Client
type Options struct {
	BaseURL   string        // Defaults to DefaultBaseURL
	UserAgent string        // Defaults to "tvshelf/<version>"
	Timeout   time.Duration // Zero means no client-side timeout
}

// NewClient creates a new TVmaze API client
func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse catalog base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("catalog base url %q must include scheme and host", raw)
	}
	base.Path = strings.TrimRight(base.Path, "/")
	base.RawQuery = ""
	base.Fragment = ""

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:   base,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		logger: logger,
	}, nil
}

// ListShows returns the first page of the show index
func (c *Client) ListShows(ctx context.Context) ([]domain.Show, error) {
	var dtos []ShowDTO
	if err := c.get(ctx, "list shows", "/shows", nil, &dtos); err != nil {
		return nil, err
	}
	return MapShows(dtos), nil
}

// ListShowsPage returns page n of the show index (250 shows per page)
func (c *Client) ListShowsPage(ctx context.Context, page int) ([]domain.Show, error) {
	if page < 0 {
		return nil, &domain.RemoteError{Op: "list shows", Err: fmt.Errorf("invalid page %d", page)}
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	var dtos []ShowDTO
	if err := c.get(ctx, "list shows", "/shows", query, &dtos); err != nil {
		return nil, err
	}
	return MapShows(dtos), nil
}

// GetShow returns a show with its cast embedded
func (c *Client) GetShow(ctx context.Context, id int) (*domain.Show, error) {
	query := url.Values{}
	query.Set("embed", "cast")

	var dto ShowDTO
	if err := c.get(ctx, "get show", "/shows/"+strconv.Itoa(id), query, &dto); err != nil {
		return nil, err
	}
	show := MapShow(dto)
	return &show, nil
}

// SearchShows returns the scored search envelopes for a name query
func (c *Client) SearchShows(ctx context.Context, q string) ([]domain.SearchResult, error) {
	query := url.Values{}
	query.Set("q", q)

	var dtos []SearchResultDTO
	if err := c.get(ctx, "search shows", "/search/shows", query, &dtos); err != nil {
		return nil, err
	}
	return MapSearchResults(dtos), nil
}

// get performs a GET and decodes the JSON body into dest.
// Every failure is returned as a *domain.RemoteError.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, dest any) error {
	endpoint := *c.baseURL
	endpoint.Path = c.baseURL.Path + path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}
	reqURL := endpoint.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &domain.RemoteError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("catalog request", "op", op, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "op", op, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &domain.RemoteError{Op: op, Err: ctxErr}
		}
		return &domain.RemoteError{Op: op, Err: fmt.Errorf("%w: %w", domain.ErrCatalogUnreachable, unwrapURLError(err))}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.RemoteError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &domain.RemoteError{Op: op, Err: domain.ErrShowNotFound}
	case resp.StatusCode != http.StatusOK:
		c.logger.Error("catalog request error", "op", op, "status", resp.StatusCode, "body", truncate(string(body), 200))
		return &domain.RemoteError{Op: op, Err: fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return &domain.RemoteError{Op: op, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

// unwrapURLError drops the "Get <url>:" prefix net/http adds
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
