package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tripplanner.app/config"
	"tripplanner.app/errors"
	"tripplanner.app/models"
)

// OpenMeteoGeocoder resolves place names via the Open-Meteo geocoding API
type OpenMeteoGeocoder struct {
	baseURL string
	client  *http.Client
}

// NewOpenMeteoGeocoder creates a geocoding client from forecast configuration
func NewOpenMeteoGeocoder(config *config.ForecastConfig) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{
		baseURL: config.GeocodingBaseURL,
		client:  &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second},
	}
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// Geocode returns the best-match coordinates for a place name. Not-found and
// provider failures both come back as a nil result: the caller treats an
// unresolvable destination the same way regardless of cause.
func (g *OpenMeteoGeocoder) Geocode(name string) (*models.Coordinates, error) {
	if name == "" {
		return nil, errors.NewValidationError("place name cannot be empty")
	}

	requestURL := fmt.Sprintf("%s/search?name=%s&count=1", g.baseURL, url.QueryEscape(name))

	resp, err := g.client.Get(requestURL)
	if err != nil {
		return nil, nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var decoded geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, nil
	}

	if len(decoded.Results) == 0 {
		return nil, nil
	}

	first := decoded.Results[0]
	return &models.Coordinates{Latitude: first.Latitude, Longitude: first.Longitude}, nil
}
