package remote

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

	"go-jobboard-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds one round trip, connection setup included
	DefaultTimeout = 5 * time.Second
	// DefaultRateLimit caps outbound lookups per second across both collaborators
	DefaultRateLimit = rate.Limit(50)

	serviceTokenTTL    = time.Minute
	serviceTokenIssuer = "go-jobboard-backend"
	maxBodyBytes       = 1 << 20
)

// identityResponse is the subset of the identity service user document we read.
type identityResponse struct {
	ID    string   `json:"id"`
	Roles []string `json:"roles"`
}

// ListingStore answers listing existence from this process's own event store.
type ListingStore interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Directory resolves identities and listings over HTTP. Every call is a single
// round trip; any outcome other than 2xx or 404 is reported as Unreachable.
type Directory struct {
	httpClient  *http.Client
	identityURL string
	listingURL  string
	listings    ListingStore
	timeout     time.Duration
	limiter     *rate.Limiter
	tokenSecret []byte
}

// Option configures a Directory.
type Option func(*Directory)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Directory) {
		d.httpClient = client
	}
}

// WithTimeout sets the per-call deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Directory) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithRateLimit sets a custom rate limit (requests per second).
func WithRateLimit(rps float64) Option {
	return func(d *Directory) {
		if rps > 0 {
			d.limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
		}
	}
}

// WithServiceToken signs every outbound request with a short-lived HS256 bearer token.
func WithServiceToken(secret string) Option {
	return func(d *Directory) {
		if secret != "" {
			d.tokenSecret = []byte(secret)
		}
	}
}

// WithLocalListings answers listing lookups from store instead of the network.
func WithLocalListings(store ListingStore) Option {
	return func(d *Directory) {
		d.listings = store
	}
}

// NewDirectory creates a directory client. identityURL and listingURL are
// collection URLs; the entity id is appended as the last path segment.
func NewDirectory(identityURL, listingURL string, opts ...Option) *Directory {
	d := &Directory{
		httpClient:  &http.Client{},
		identityURL: strings.TrimRight(identityURL, "/"),
		listingURL:  strings.TrimRight(listingURL, "/"),
		timeout:     DefaultTimeout,
		limiter:     rate.NewLimiter(DefaultRateLimit, int(DefaultRateLimit)),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Exists reports whether the identity or listing id resolves.
func (d *Directory) Exists(ctx context.Context, kind domain.LookupKind, id string) domain.Lookup {
	if strings.TrimSpace(id) == "" {
		return domain.NotFound()
	}

	switch kind {
	case domain.KindIdentity:
		return d.get(ctx, d.identityURL, id, nil)
	case domain.KindListing:
		if d.listings != nil {
			return d.localListing(ctx, id)
		}
		return d.get(ctx, d.listingURL, id, nil)
	default:
		return domain.Unreachable(fmt.Errorf("unknown lookup kind %d", kind))
	}
}

// Roles fetches the identity document and returns its role set.
func (d *Directory) Roles(ctx context.Context, userID string) domain.Lookup {
	if strings.TrimSpace(userID) == "" {
		return domain.NotFound()
	}

	var user identityResponse
	lookup := d.get(ctx, d.identityURL, userID, &user)
	if lookup.Outcome != domain.LookupFound {
		return lookup
	}
	return domain.Found(domain.NewRoleSet(user.Roles...))
}

func (d *Directory) localListing(ctx context.Context, id string) domain.Lookup {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	ok, err := d.listings.Exists(ctx, id)
	if err != nil {
		return domain.Unreachable(fmt.Errorf("local listing lookup: %w", err))
	}
	if !ok {
		return domain.NotFound()
	}
	return domain.Found(nil)
}

// get performs one GET against baseURL/id and classifies the outcome.
// When out is non-nil a 2xx body must decode into it, otherwise the
// collaborator is considered Unreachable.
func (d *Directory) get(ctx context.Context, baseURL, id string, out interface{}) domain.Lookup {
	if baseURL == "" {
		return domain.Unreachable(errors.New("collaborator URL not configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.limiter.Wait(ctx); err != nil {
		return domain.Unreachable(fmt.Errorf("rate limiter: %w", err))
	}

	requestURL := baseURL + "/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return domain.Unreachable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	if len(d.tokenSecret) > 0 {
		token, err := d.serviceToken()
		if err != nil {
			return domain.Unreachable(fmt.Errorf("sign service token: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return domain.Unreachable(fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NotFound()
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return domain.Found(nil)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return domain.Unreachable(fmt.Errorf("read response: %w", err))
		}
		if err := decodeBody(body, out); err != nil {
			return domain.Unreachable(fmt.Errorf("parse json: %w", err))
		}
		return domain.Found(nil)
	default:
		return domain.Unreachable(fmt.Errorf("unexpected status code %d", resp.StatusCode))
	}
}

// decodeBody accepts both a bare document and one wrapped in the
// {"data": ...} envelope our own services respond with.
func decodeBody(body []byte, out interface{}) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		return json.Unmarshal(envelope.Data, out)
	}
	return json.Unmarshal(body, out)
}

func (d *Directory) serviceToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    serviceTokenIssuer,
		Subject:   "directory",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(serviceTokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(d.tokenSecret)
}
