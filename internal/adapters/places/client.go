// internal/adapters/places/client.go
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"place_sentiment/internal/adapters/observability"
	"place_sentiment/internal/domain"
)

const (
	service        = "places"
	endpointFind   = "findplace"
	endpointDetail = "details"
)

type Client struct {
	base string
	hc   *http.Client
	key  string
}

func New(base, key string, timeout time.Duration) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
		key:  key,
	}, nil
}

// ---- Public API (one request per call, never retried) ----

// FindPlace resolves a free-text query to the upstream's best candidate.
// The query is forwarded untouched, empty included.
func (c *Client) FindPlace(ctx context.Context, query string) (*domain.Place, error) {
	q := url.Values{}
	q.Set("input", query)
	q.Set("inputtype", "textquery")
	q.Set("fields", "place_id,name")

	var out findPlaceResponse
	if err := c.get(ctx, endpointFind, "/findplacefromtext/json", q, &out); err != nil {
		return nil, err
	}
	switch out.Status {
	case statusOK:
	case statusZeroResults:
		return nil, nil
	default:
		return nil, statusErr(out.Status, out.ErrorMessage)
	}
	return mapCandidate(out.Candidates), nil
}

// PlaceReviews returns the reviews of id in upstream order. A stale id yields
// an empty slice, not an error.
func (c *Client) PlaceReviews(ctx context.Context, id domain.PlaceID, language string) ([]domain.RawReview, error) {
	q := url.Values{}
	q.Set("place_id", string(id))
	q.Set("fields", "reviews")
	if language != "" {
		q.Set("language", language)
	}

	var out detailsResponse
	if err := c.get(ctx, endpointDetail, "/details/json", q, &out); err != nil {
		return nil, err
	}
	switch out.Status {
	case statusOK:
	case statusZeroResults, statusNotFound:
		return nil, nil
	default:
		return nil, statusErr(out.Status, out.ErrorMessage)
	}
	return mapReviews(out.Result.Reviews), nil
}

// ---- Internals ----

const (
	statusOK            = "OK"
	statusZeroResults   = "ZERO_RESULTS"
	statusNotFound      = "NOT_FOUND"
	statusRequestDenied = "REQUEST_DENIED"
)

var ErrRequestDenied = errors.New("places: request denied")

func statusErr(status, msg string) error {
	if status == statusRequestDenied {
		return fmt.Errorf("%w: %w: %s", domain.ErrUpstream, ErrRequestDenied, msg)
	}
	if msg != "" {
		return fmt.Errorf("%w: status %s: %s", domain.ErrUpstream, status, msg)
	}
	return fmt.Errorf("%w: status %s", domain.ErrUpstream, status)
}

// get performs a single GET and decodes the JSON body into out.
// Every failure is wrapped in domain.ErrUpstream.
func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values, out any) error {
	q.Set("key", c.key)
	u := c.base + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", domain.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "place-sentiment/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(service, endpoint, 0, time.Since(start))
		// *url.Error prints the request URL, which carries the key
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		log.Debug().Str("endpoint", endpoint).Err(err).Msg("places request failed")
		return fmt.Errorf("%w: %s: %w", domain.ErrUpstream, endpoint, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal(service, endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s: bad status %d: %s",
			domain.ErrUpstream, endpoint, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode: %w", domain.ErrUpstream, endpoint, err)
	}
	return nil
}
