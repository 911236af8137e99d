// Package catalog is the HTTP client for the remote, read-only creature
// database. All responses are normalised into IndexEntry and Detail.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/joestump/dexview/internal/logging"
	"github.com/joestump/dexview/internal/metrics"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	defaultTimeout = 10 * time.Second
	defaultBackoff = 200 * time.Millisecond

	// maxErrorBody bounds how much of a failed response is kept in the error.
	maxErrorBody = 512
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration // per attempt
	Retries    int           // extra attempts after the first, for retryable failures
	Backoff    time.Duration // base of the exponential backoff
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client fetches the index, detail records and category vocabulary.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	timeout time.Duration
	retries uint64
	backoff time.Duration
	http    *http.Client
	log     *zap.Logger
}

// New creates a Client from opts.
func New(opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		backoff: opts.Backoff,
		http:    opts.HTTPClient,
		log:     logging.OrNop(opts.Logger),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.backoff <= 0 {
		c.backoff = defaultBackoff
	}
	if opts.Retries > 0 {
		c.retries = uint64(opts.Retries)
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

// FetchIndex returns one page of the index. The remote offers no useful
// server-side filtering, so callers request the whole index with a limit
// larger than the catalog.
func (c *Client) FetchIndex(ctx context.Context, limit, offset int) ([]IndexEntry, error) {
	u := fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", c.baseURL, limit, offset)
	var p listPayload
	if err := c.getJSON(ctx, "index", u, &p); err != nil {
		return nil, err
	}
	entries := make([]IndexEntry, 0, len(p.Results))
	for _, r := range p.Results {
		entries = append(entries, IndexEntry{Name: r.Name, URL: r.URL})
	}
	c.log.Debug("index fetched", zap.Int("entries", len(entries)), zap.Int("count", p.Count))
	return entries, nil
}

// FetchDetail fetches one detail record. ref is either a numeric ID or an
// absolute reference URL taken from the index.
func (c *Client) FetchDetail(ctx context.Context, ref string) (*Detail, error) {
	u, err := c.detailURL(ref)
	if err != nil {
		metrics.RemoteFetchesTotal.WithLabelValues("detail", "error").Inc()
		return nil, &RemoteFetchError{URL: ref, Err: err}
	}
	var p detailPayload
	if err := c.getJSON(ctx, "detail", u, &p); err != nil {
		return nil, err
	}
	return normalize(&p), nil
}

// FetchDetailByID fetches the detail record for id.
func (c *Client) FetchDetailByID(ctx context.Context, id int) (*Detail, error) {
	return c.FetchDetail(ctx, strconv.Itoa(id))
}

// FetchCategories returns the category (type) vocabulary in remote order.
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	var p listPayload
	if err := c.getJSON(ctx, "categories", c.baseURL+"/type", &p); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(p.Results))
	for _, r := range p.Results {
		names = append(names, r.Name)
	}
	return names, nil
}

func (c *Client) detailURL(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		return fmt.Sprintf("%s/pokemon/%d", c.baseURL, id), nil
	}
	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidReference
	}
	return ref, nil
}

// getJSON GETs u and decodes the body into v, retrying transport failures,
// 429 and 5xx responses with exponential backoff.
func (c *Client) getJSON(ctx context.Context, kind, u string, v any) error {
	start := time.Now()
	attempt := 0

	b := retry.WithMaxRetries(c.retries, retry.NewExponential(c.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		err := c.getOnce(ctx, u, v)
		if err != nil && ctx.Err() == nil && retryable(err) {
			c.log.Debug("retrying remote fetch",
				zap.String("kind", kind), zap.String("url", u), zap.Int("attempt", attempt), zap.Error(err))
			return retry.RetryableError(err)
		}
		return err
	})
	metrics.RemoteFetchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if err != nil {
		var rfe *RemoteFetchError
		if !errors.As(err, &rfe) {
			// Cancelled while backing off.
			err = &RemoteFetchError{URL: u, Err: err}
		}
		outcome := "error"
		if errors.Is(err, ErrNotFound) {
			outcome = "not_found"
		}
		metrics.RemoteFetchesTotal.WithLabelValues(kind, outcome).Inc()
		return err
	}
	metrics.RemoteFetchesTotal.WithLabelValues(kind, "ok").Inc()
	return nil
}

func (c *Client) getOnce(ctx context.Context, u string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &RemoteFetchError{URL: u, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteFetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RemoteFetchError{
			URL:        u,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &RemoteFetchError{URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func retryable(err error) bool {
	var rfe *RemoteFetchError
	if !errors.As(err, &rfe) {
		return false
	}
	switch {
	case rfe.StatusCode == 0:
		return true
	case rfe.StatusCode == http.StatusTooManyRequests:
		return true
	case rfe.StatusCode >= 500:
		return true
	default:
		return false
	}
}
