// Package postcodeapi resolves Australian postcodes through a remote HTTP
// lookup service.
package postcodeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/valyala/fasthttp"

	"github.com/samirrijal/campusradius/internal/core/domain"
	"github.com/samirrijal/campusradius/internal/pkg/metrics"
)

const resolverLabel = "api"

// Options tunes the client. Zero values pick the defaults.
type Options struct {
	Timeout         time.Duration
	MaxRetries      int
	InitialInterval time.Duration
}

// Client implements ports.PostcodeResolver against the postcodes-au endpoint.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	opts    Options
}

// New creates a Client for baseURL (e.g. https://host/wp-json/api/v1).
func New(baseURL string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = 200 * time.Millisecond
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &fasthttp.Client{
			Name:                "campusradius",
			ReadTimeout:         opts.Timeout,
			WriteTimeout:        opts.Timeout,
			MaxIdleConnDuration: time.Minute,
		},
		opts: opts,
	}
}

type lookupResponse struct {
	Records struct {
		Zipcodes []zipcode `json:"zipcodes"`
	} `json:"records"`
}

type zipcode struct {
	Postcode string `json:"postcode"`
	Locality string `json:"locality"`
	State    string `json:"state"`
	Lat      coord  `json:"lat"`
	Lng      coord  `json:"lng"`
}

// coord accepts a JSON string or number. Empty or unparsable input leaves
// it unset.
type coord struct {
	val float64
	ok  bool
}

func (c *coord) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	c.val, c.ok = f, true
	return nil
}

// Resolve looks up code, retrying transport failures with exponential backoff.
func (c *Client) Resolve(ctx context.Context, code string) (*domain.Postcode, error) {
	start := time.Now()
	defer func() {
		metrics.LookupDuration.WithLabelValues(resolverLabel).Observe(time.Since(start).Seconds())
	}()

	var pc *domain.Postcode
	op := func() error {
		var err error
		pc, err = c.lookup(ctx, code)
		if err != nil && !errors.Is(err, domain.ErrTransport) {
			return backoff.Permanent(err)
		}
		return err
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.opts.InitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.opts.MaxRetries)), ctx)

	if err := backoff.Retry(op, policy); err != nil {
		metrics.LookupErrors.WithLabelValues(resolverLabel, errorKind(err)).Inc()
		return nil, err
	}
	return pc, nil
}

func (c *Client) lookup(ctx context.Context, code string) (*domain.Postcode, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/postcodes-au?q=" + url.QueryEscape(code))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	timeout := c.opts.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("%w: postcode lookup: %v", domain.ErrTransport, err)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	case status >= 500 || status == fasthttp.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: postcode lookup returned %d", domain.ErrTransport, status)
	case status != fasthttp.StatusOK:
		return nil, fmt.Errorf("postcode lookup returned %d", status)
	}

	var body lookupResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: decode postcode response: %v", domain.ErrTransport, err)
	}
	if len(body.Records.Zipcodes) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}

	z := body.Records.Zipcodes[0]
	if !z.Lat.ok || !z.Lng.ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingCoordinates, code)
	}

	pc := &domain.Postcode{
		Code:     z.Postcode,
		Place:    z.Locality,
		State:    z.State,
		Location: domain.GeoPoint{Lat: z.Lat.val, Lon: z.Lng.val},
	}
	if pc.Code == "" {
		pc.Code = code
	}
	return pc, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrMissingCoordinates):
		return "missing_coordinates"
	case errors.Is(err, domain.ErrTransport):
		return "transport"
	default:
		return "other"
	}
}
