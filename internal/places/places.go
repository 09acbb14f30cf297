// Package places provides advisory place autocomplete against a Nominatim
// endpoint. Results are cached through an injected Storage so deployments
// can share a Redis cache or stay in-memory; lookups failing or timing out
// degrade to "no suggestions" and never block form completion.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Place is one autocomplete suggestion.
type Place struct {
	PlaceID     string `json:"place_id"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type,omitempty"`
}

// Storage is the cache behind the client. The method set matches the fiber
// storage drivers, so a Redis storage can be injected directly.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// Client queries one Nominatim endpoint with caching.
type Client struct {
	baseURL string
	limit   int
	ttl     time.Duration
	cache   Storage
	http    *http.Client
}

// New creates a client. cache may not be nil; use NewMemoryStore for a
// process-local cache.
func New(baseURL string, limit int, ttl time.Duration, cache Storage) *Client {
	return &Client{
		baseURL: baseURL,
		limit:   limit,
		ttl:     ttl,
		cache:   cache,
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// nominatimPlace matches the upstream response, where place_id is a number.
type nominatimPlace struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
	Type        string      `json:"type"`
}

// Search returns up to the configured number of suggestions for a free-text
// query. Cached results are served without an upstream call. The bool return
// reports a cache hit.
func (c *Client) Search(ctx context.Context, query string) ([]Place, bool, error) {
	q := trimQuery(query)
	if q == "" {
		return nil, false, nil
	}

	key := q + "|" + strconv.Itoa(c.limit)
	if data, err := c.cache.Get(key); err == nil && data != nil {
		var cached []Place
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, true, nil
		}
	}

	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, false, fmt.Errorf("bad nominatim url: %w", err)
	}
	qs := u.Query()
	qs.Set("q", q)
	qs.Set("format", "json")
	qs.Set("addressdetails", "0")
	qs.Set("limit", strconv.Itoa(c.limit))
	u.RawQuery = qs.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, false, err
	}
	// Identify the application per the Nominatim usage policy.
	req.Header.Set("User-Agent", "calshare/1.0")
	req.Header.Set("Accept-Language", "en")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, false, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	var raw []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, false, fmt.Errorf("decode nominatim response: %w", err)
	}

	places := make([]Place, 0, len(raw))
	for _, p := range raw {
		places = append(places, Place{
			PlaceID:     p.PlaceID.String(),
			DisplayName: p.DisplayName,
			Lat:         p.Lat,
			Lon:         p.Lon,
			Type:        p.Type,
		})
	}

	if data, err := json.Marshal(places); err == nil {
		c.cache.Set(key, data, c.ttl)
	}
	return places, false, nil
}

// trimQuery mirrors the form's behavior of ignoring 1-character queries.
func trimQuery(q string) string {
	t := strings.TrimSpace(q)
	if len(t) < 2 {
		return ""
	}
	return t
}
