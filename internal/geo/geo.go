package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/simskyeconomy/simsky-core/internal/config"
)

// Location is a best-effort description of where an IP address points.
// Unknown coordinates stay nil.
type Location struct {
	Name      string
	Latitude  *float64
	Longitude *float64
}

// Unknown is the fallback returned whenever a lookup cannot complete.
func Unknown() Location {
	return Location{Name: "Unknown location"}
}

// Resolver resolves a source IP to an approximate location. Lookup never
// fails; any error degrades to Unknown.
type Resolver interface {
	Lookup(ctx context.Context, ip string) Location
}

type HTTPResolver struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewHTTPResolver(config *config.GeoConfig, log *zap.Logger) *HTTPResolver {
	return &HTTPResolver{
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: config.Timeout},
		log:     log,
	}
}

type lookupResponse struct {
	Status     string  `json:"status"`
	City       string  `json:"city"`
	RegionName string  `json:"regionName"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

func (r *HTTPResolver) Lookup(ctx context.Context, ip string) Location {
	url := fmt.Sprintf("%s/json/%s", r.baseURL, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		r.log.Warn("geolocation request build failed", zap.Error(err))
		return Unknown()
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warn("geolocation lookup failed", zap.String("ip", ip), zap.Error(err))
		return Unknown()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Warn("geolocation lookup returned bad status",
			zap.String("ip", ip),
			zap.Int("status", resp.StatusCode))
		return Unknown()
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		r.log.Warn("geolocation response malformed", zap.String("ip", ip), zap.Error(err))
		return Unknown()
	}

	if body.Status != "success" {
		return Unknown()
	}

	lat, lon := body.Lat, body.Lon
	return Location{
		Name:      fmt.Sprintf("%s, %s, %s", body.City, body.RegionName, body.Country),
		Latitude:  &lat,
		Longitude: &lon,
	}
}
