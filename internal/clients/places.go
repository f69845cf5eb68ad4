package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Location is a resolved geocode result.
type Location struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	City  string  `json:"city"`
	State string  `json:"state"`
}

// Place is a single candidate from a nearby search, used to seed the group
// directory.
type Place struct {
	PlaceID string  `json:"placeId"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Geocoder resolves zip codes and searches nearby places.
type Geocoder interface {
	GeocodeZip(ctx context.Context, zip string) (*Location, error)
	SearchNearby(ctx context.Context, query string, lat, lng float64) ([]Place, error)
}

// PlacesClient calls the geocoding/places API. When a redis client is
// supplied, zip geocode results are cached; the client behaves identically
// without one.
type PlacesClient struct {
	httpClient *resty.Client
	apiKey     string
	cache      *redis.Client
	logger     *zap.Logger
}

const geocodeCacheTTL = 24 * time.Hour

// NewPlacesClient creates a places/geocoding client. cache may be nil.
func NewPlacesClient(baseURL, apiKey string, cache *redis.Client, logger *zap.Logger) *PlacesClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/json")

	return &PlacesClient{
		httpClient: client,
		apiKey:     apiKey,
		cache:      cache,
		logger:     logger,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		AddressComponents []struct {
			LongName  string   `json:"long_name"`
			ShortName string   `json:"short_name"`
			Types     []string `json:"types"`
		} `json:"address_components"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GeocodeZip resolves a zip code to a location, or nil when the zip cannot
// be resolved.
func (p *PlacesClient) GeocodeZip(ctx context.Context, zip string) (*Location, error) {
	if loc := p.cachedLocation(ctx, zip); loc != nil {
		return loc, nil
	}

	var response geocodeResponse
	resp, err := p.httpClient.R().
		SetContext(ctx).
		SetQueryParam("address", zip).
		SetQueryParam("key", p.apiKey).
		SetResult(&response).
		Get("/geocode/json")

	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("geocode request failed: status %d", resp.StatusCode())
	}
	if response.Status != "OK" || len(response.Results) == 0 {
		// Unresolvable zip is not an error for callers
		return nil, nil
	}

	result := response.Results[0]
	loc := &Location{
		Lat: result.Geometry.Location.Lat,
		Lng: result.Geometry.Location.Lng,
	}
	for _, comp := range result.AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "locality", "postal_town":
				loc.City = comp.LongName
			case "administrative_area_level_1":
				loc.State = comp.ShortName
			}
		}
	}

	p.storeLocation(ctx, zip, loc)
	return loc, nil
}

type nearbySearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Vicinity string `json:"vicinity"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// SearchNearby returns place candidates for a free-text query around a point.
func (p *PlacesClient) SearchNearby(ctx context.Context, query string, lat, lng float64) ([]Place, error) {
	var response nearbySearchResponse
	resp, err := p.httpClient.R().
		SetContext(ctx).
		SetQueryParam("keyword", query).
		SetQueryParam("location", fmt.Sprintf("%f,%f", lat, lng)).
		SetQueryParam("radius", "40000").
		SetQueryParam("key", p.apiKey).
		SetResult(&response).
		Get("/place/nearbysearch/json")

	if err != nil {
		return nil, fmt.Errorf("nearby search failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("nearby search failed: status %d", resp.StatusCode())
	}
	if response.Status != "OK" {
		return nil, nil
	}

	places := make([]Place, 0, len(response.Results))
	for _, r := range response.Results {
		places = append(places, Place{
			PlaceID: r.PlaceID,
			Name:    r.Name,
			Address: r.Vicinity,
			Lat:     r.Geometry.Location.Lat,
			Lng:     r.Geometry.Location.Lng,
		})
	}
	return places, nil
}

func (p *PlacesClient) cachedLocation(ctx context.Context, zip string) *Location {
	if p.cache == nil {
		return nil
	}
	data, err := p.cache.Get(ctx, geocodeCacheKey(zip)).Result()
	if err != nil {
		return nil
	}
	var loc Location
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		return nil
	}
	return &loc
}

func (p *PlacesClient) storeLocation(ctx context.Context, zip string, loc *Location) {
	if p.cache == nil {
		return
	}
	data, err := json.Marshal(loc)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, geocodeCacheKey(zip), data, geocodeCacheTTL).Err(); err != nil {
		p.logger.Warn("geocode cache write failed", zap.Error(err))
	}
}

func geocodeCacheKey(zip string) string {
	return "geocode:zip:" + zip
}
