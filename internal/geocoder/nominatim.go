package geocoder

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"contractor-directory-api/internal/models"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NominatimConfig configures the HTTP geocoder.
type NominatimConfig struct {
	BaseURL      string
	UserAgent    string
	CountryCodes string
	Timeout      time.Duration
}

// Nominatim geocodes through a Nominatim-compatible /search endpoint.
type Nominatim struct {
	client *fasthttp.Client
	cfg    NominatimConfig
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewNominatim creates an HTTP geocoder. The client is shared across requests.
func NewNominatim(client *fasthttp.Client, cfg NominatimConfig) *Nominatim {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Nominatim{client: client, cfg: cfg}
}

// Geocode returns the provider's top match.
func (n *Nominatim) Geocode(ctx context.Context, text string) (*models.Coordinate, error) {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Set("q", text)
	args.Set("format", "json")
	args.Set("limit", "1")
	if n.cfg.CountryCodes != "" {
		args.Set("countrycodes", n.cfg.CountryCodes)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(n.cfg.BaseURL + "/search?" + string(args.QueryString()))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if n.cfg.UserAgent != "" {
		req.Header.SetUserAgent(n.cfg.UserAgent)
	}

	res := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(res)

	deadline := time.Now().Add(n.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := n.client.DoDeadline(req, res, deadline); err != nil {
		return nil, fmt.Errorf("nominatim: request failed: %w", err)
	}
	if res.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("nominatim: unexpected status %d", res.StatusCode())
	}

	var places []nominatimPlace
	if err := json.Unmarshal(res.Body(), &places); err != nil {
		return nil, fmt.Errorf("nominatim: failed to decode response: %w", err)
	}
	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: invalid latitude %q", places[0].Lat)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: invalid longitude %q", places[0].Lon)
	}

	return &models.Coordinate{Latitude: lat, Longitude: lon}, nil
}
