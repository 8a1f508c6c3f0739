package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Client handles communication with the Nominatim reverse-geocoding API.
// Report addresses are resolved best-effort at submission time; a
// failure here never fails the request.
type Client struct {
	BaseURL    *url.URL
	HTTPClient *http.Client
}

// NewClient creates a new Nominatim client with default timeout.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		parsed, _ = url.Parse(defaultBaseURL)
	}
	return &Client{
		BaseURL: parsed,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
	}
}

// ReverseQuery represents parameters for reverse geocoding requests.
type ReverseQuery struct {
	Lat    float64 `url:"lat"`
	Lon    float64 `url:"lon"`
	Format string  `url:"format"`
	Zoom   *int    `url:"zoom,omitempty"`
}

// ReverseResponse is the response structure for /reverse.
type ReverseResponse struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Road     string `json:"road"`
		Suburb   string `json:"suburb"`
		City     string `json:"city"`
		State    string `json:"state"`
		Postcode string `json:"postcode"`
		Country  string `json:"country"`
	} `json:"address"`
	Error string `json:"error,omitempty"`
}

// Reverse resolves a display address for the given coordinates.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	q := ReverseQuery{Lat: lat, Lon: lon, Format: "jsonv2"}
	params, err := query.Values(q)
	if err != nil {
		return "", errors.Wrap(err, "encoding reverse geocode query")
	}

	endpoint := *c.BaseURL
	endpoint.Path = "/reverse"
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", errors.Wrap(err, "creating reverse geocode request")
	}
	req.Header.Set("User-Agent", "civic-api/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "executing reverse geocode request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nominatim error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading reverse geocode response")
	}

	var reverse ReverseResponse
	if err := json.Unmarshal(body, &reverse); err != nil {
		return "", errors.Wrap(err, "decoding reverse geocode response")
	}
	if reverse.Error != "" {
		return "", fmt.Errorf("nominatim error: %s", reverse.Error)
	}

	return reverse.DisplayName, nil
}
