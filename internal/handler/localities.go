package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"contractor-directory-api/internal/models"
	"contractor-directory-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// LocalityService interface for dependency injection
type LocalityService interface {
	Lookup(ctx context.Context, query string) ([]models.Locality, error)
	Nearest(ctx context.Context, lat, lon float64) (*models.Locality, error)
}

// LocalityHandler handles gazetteer requests
type LocalityHandler struct {
	service LocalityService
	logger  zerolog.Logger
}

// NewLocalityHandler creates a new locality handler
func NewLocalityHandler(svc LocalityService, logger zerolog.Logger) *LocalityHandler {
	return &LocalityHandler{service: svc, logger: logger}
}

// Geocode godoc
// @Summary            Look up localities by name
// @Tags               Localities
// @Produce            json
// @Param              q query string true "Locality, state and/or postcode"
// @Success            200 {object} []models.Locality
// @Failure            400 {object} ErrorResponse
// @Failure            500 {object} ErrorResponse
// @Router             /api/localities/geocode [GET]
func (h *LocalityHandler) Geocode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	localities, err := h.service.Lookup(c.Request.Context(), query)
	if errors.Is(err, service.ErrInvalidArgument) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("q", query).Msg("locality lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if localities == nil {
		localities = []models.Locality{}
	}
	c.JSON(http.StatusOK, localities)
}

// Reverse godoc
// @Summary            Find the locality nearest to a coordinate
// @Tags               Localities
// @Produce            json
// @Param              lat query number true "Latitude"
// @Param              lon query number true "Longitude"
// @Success            200 {object} models.Locality
// @Failure            400 {object} ErrorResponse
// @Failure            404 {object} ErrorResponse
// @Failure            500 {object} ErrorResponse
// @Router             /api/localities/reverse [GET]
func (h *LocalityHandler) Reverse(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	locality, err := h.service.Nearest(c.Request.Context(), lat, lon)
	if errors.Is(err, service.ErrInvalidArgument) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("reverse lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if locality == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no locality found near the specified coordinates"})
		return
	}

	c.JSON(http.StatusOK, locality)
}
