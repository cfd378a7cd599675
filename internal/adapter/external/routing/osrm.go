package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/infrastructure/circuitbreaker"
	"github.com/scoot-me/scootme/internal/ports"
)

// OSRMClient talks to an OSRM routing server for road distance and ETA.
// Coordinates go on the URL as lng,lat pairs.
type OSRMClient struct {
	baseURL string
	http    *circuitbreaker.HTTPClient
	log     *zap.Logger
}

func NewOSRMClient(baseURL string, timeout time.Duration, log *zap.Logger) ports.RouteClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	settings := circuitbreaker.DefaultHTTPClientSettings("osrm")
	settings.Timeout = timeout

	return &OSRMClient{
		baseURL: baseURL,
		http:    circuitbreaker.NewHTTPClientWithSettings(settings, log),
		log:     log,
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

func (c *OSRMClient) Route(ctx context.Context, from, to domain.Location) (*ports.RouteInfo, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		c.baseURL,
		from.Longitude, from.Latitude,
		to.Longitude, to.Latitude,
	)

	resp, err := c.http.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: osrm request failed: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: osrm returned status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode osrm response: %v", domain.ErrUpstream, err)
	}

	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		c.log.Warn("OSRM returned no route",
			zap.String("code", parsed.Code),
			zap.Int("routes", len(parsed.Routes)),
		)
		return nil, fmt.Errorf("%w: no route found", domain.ErrUpstream)
	}

	return &ports.RouteInfo{
		DistanceMeters:  parsed.Routes[0].Distance,
		DurationSeconds: parsed.Routes[0].Duration,
	}, nil
}
