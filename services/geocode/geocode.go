package geocode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Result is a resolved address.
type Result struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"displayName"`
}

// Service resolves a free-text address to coordinates. A nil result with
// a nil error means the address could not be resolved.
type Service interface {
	Geocode(address string) (*Result, error)
}

// NominatimClient implements Service against a Nominatim-compatible
// search endpoint.
type NominatimClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewNominatimClient creates a geocoding client for the given endpoint.
func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *NominatimClient) Geocode(address string) (*Result, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequest(http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}
	// Nominatim requires an identifying User-Agent.
	req.Header.Set("User-Agent", "FixItNow-App/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocoding response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocoding response: %w", err)
	}

	return &Result{Lat: lat, Lng: lng, DisplayName: results[0].DisplayName}, nil
}
