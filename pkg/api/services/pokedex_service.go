package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pokeatlas/pokedex-api/pkg/api/models"
	"github.com/pokeatlas/pokedex-api/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for upstream PokeAPI calls.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_requests_total",
		Help: "Total upstream PokeAPI requests by status",
	}, []string{"status"})

	upstreamRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pokeapi_request_duration_seconds",
		Help:    "Upstream PokeAPI request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})
)

// ErrInvalidBaseURL is returned when the configured upstream base URL does
// not parse, is opaque, or has a scheme other than http/https.
var ErrInvalidBaseURL = errors.New("invalid upstream base URL")

// UpstreamErrorKind classifies how an upstream fetch failed.
type UpstreamErrorKind string

const (
	// KindTransport covers DNS, connection and timeout failures.
	KindTransport UpstreamErrorKind = "transport"

	// KindStatus covers responses with a non-2xx status code.
	KindStatus UpstreamErrorKind = "status"

	// KindDecode covers structurally invalid JSON bodies.
	KindDecode UpstreamErrorKind = "decode"
)

// UpstreamError is a per-request upstream failure. The handler maps every
// kind to a bare 500; the kind and detail only reach the logs.
type UpstreamError struct {
	Kind       UpstreamErrorKind
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	case KindDecode:
		return fmt.Sprintf("upstream response decode failed: %v", e.Err)
	default:
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PokedexService fetches paginated pokemon lists from a PokeAPI-compatible
// upstream. It is immutable after construction and safe for concurrent use.
type PokedexService struct {
	httpClient *http.Client
	base       *url.URL
	logger     zerolog.Logger
}

// NewPokedexService validates the base URL and returns a ready service.
// The base must be an absolute http(s) URL capable of serving as a base
// for relative path joins; anything else is a startup-fatal config error.
func NewPokedexService(baseURL string) (*PokedexService, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if !u.IsAbs() || u.Opaque != "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q cannot serve as a base for relative joins", ErrInvalidBaseURL, baseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q is not http or https", ErrInvalidBaseURL, u.Scheme)
	}

	return &PokedexService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		base:       u,
		logger:     logging.NewLogger("pokedex-service"),
	}, nil
}

// ListPokemon fetches one page of the upstream pokemon list. A single
// attempt, no retries; the caller's context cancels the in-flight request.
func (s *PokedexService) ListPokemon(ctx context.Context, limit, offset uint32) (*models.ResourcePage, error) {
	u := s.base.JoinPath("pokemon")
	q := u.Query()
	q.Set("limit", strconv.FormatUint(uint64(limit), 10))
	q.Set("offset", strconv.FormatUint(uint64(offset), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &UpstreamError{Kind: KindTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	upstreamRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		upstreamRequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, &UpstreamError{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	upstreamRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Kind: KindStatus, StatusCode: resp.StatusCode}
	}

	var page models.ResourcePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &UpstreamError{Kind: KindDecode, Err: err}
	}

	s.logger.Debug().
		Uint32("limit", limit).
		Uint32("offset", offset).
		Uint32("count", page.Count).
		Int("results", len(page.Results)).
		Msg("fetched pokemon page")

	return &page, nil
}
