package geocoder

import (
	"context"
	"strings"
	"time"

	"contractor-directory-api/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Cache is the key/value store behind Cached.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Cached memoises another geocoder. Matches are kept for hitTTL and misses for missTTL;
// provider errors are never cached. Cache failures degrade to calling the wrapped geocoder.
type Cached struct {
	next    Geocoder
	cache   Cache
	hitTTL  time.Duration
	missTTL time.Duration
	logger  zerolog.Logger
}

// NewCached wraps next with a cache.
func NewCached(next Geocoder, cache Cache, hitTTL, missTTL time.Duration, logger zerolog.Logger) *Cached {
	return &Cached{next: next, cache: cache, hitTTL: hitTTL, missTTL: missTTL, logger: logger}
}

const missMarker = "null"

// CacheKey derives a stable key from the normalised term.
func CacheKey(text string) string {
	normalised := strings.ToLower(strings.Join(strings.Fields(text), " "))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(normalised)).String()
}

// Geocode serves the term from cache, asking the wrapped geocoder and storing its answer on a miss.
func (c *Cached) Geocode(ctx context.Context, text string) (*models.Coordinate, error) {
	key := CacheKey(text)

	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn().Err(err).Msg("geocode cache read failed")
	}
	if ok {
		if raw == missMarker {
			return nil, nil
		}
		var coord models.Coordinate
		if err := json.Unmarshal([]byte(raw), &coord); err == nil {
			return &coord, nil
		}
		c.logger.Warn().Str("key", key).Msg("discarding malformed geocode cache entry")
	}

	coord, err := c.next.Geocode(ctx, text)
	if err != nil {
		return nil, err
	}

	value, ttl := missMarker, c.missTTL
	if coord != nil {
		encoded, err := json.Marshal(coord)
		if err != nil {
			return coord, nil
		}
		value, ttl = string(encoded), c.hitTTL
	}
	if ttl > 0 {
		if err := c.cache.Set(ctx, key, value, ttl); err != nil {
			c.logger.Warn().Err(err).Msg("geocode cache write failed")
		}
	}
	return coord, nil
}
