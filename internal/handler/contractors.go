package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"contractor-directory-api/internal/metrics"
	"contractor-directory-api/internal/models"
	"contractor-directory-api/internal/repository"
	"contractor-directory-api/internal/search"
	"contractor-directory-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SearchCacheControl is sent with every successful search.
const SearchCacheControl = "public, s-maxage=60, stale-while-revalidate=120"

// Error codes and messages returned on unexpected failures.
const (
	CodeContractorsFetchError = "CONTRACTORS_FETCH_ERROR"
	MsgContractorsFetchError  = "Failed to fetch contractors"
	CodeContractorFetchError  = "CONTRACTOR_FETCH_ERROR"
	MsgContractorFetchError   = "Failed to fetch contractor"
)

// ContractorService interface for dependency injection
type ContractorService interface {
	Search(ctx context.Context, q search.Query) (*service.SearchResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Contractor, error)
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Success        bool                      `json:"success"`
	Contractors    []models.RankedContractor `json:"contractors"`
	Pagination     search.Pagination         `json:"pagination"`
	SearchLocation *models.Coordinate        `json:"searchLocation,omitempty"`
}

// ContractorResponse is the body of a successful detail lookup.
type ContractorResponse struct {
	Success    bool               `json:"success"`
	Contractor *models.Contractor `json:"contractor"`
}

// ErrorResponse is returned for caller errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FailureResponse is returned for unexpected server errors.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// ContractorHandler handles contractor directory requests
type ContractorHandler struct {
	service ContractorService
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewContractorHandler creates a new contractor handler
func NewContractorHandler(svc ContractorService, m *metrics.Metrics, logger zerolog.Logger) *ContractorHandler {
	return &ContractorHandler{service: svc, metrics: m, logger: logger}
}

// Search godoc
// @Summary            Search contractors
// @Description        Filters, paginates and, when the location geocodes, ranks contractors nearest first.
// @Tags               Contractors
// @Produce            json
// @Param              limit query string false "Page size (1-100) or 'all'"
// @Param              offset query integer false "Rows to skip"
// @Param              location query string false "Suburb, state or postcode"
// @Param              distance query number false "Radius in km"
// @Param              city query string false "City contains (ignored when location is set)"
// @Param              state query string false "State contains (ignored when location is set)"
// @Param              postalCode query string false "Postcode contains (ignored when location is set)"
// @Param              gender query string false "Male, Female or All"
// @Param              supportType query string false "Title contains, or All"
// @Success            200 {object} SearchResponse
// @Failure            400 {object} ErrorResponse
// @Failure            429 {object} ErrorResponse
// @Failure            500 {object} FailureResponse
// @Router             /api/contractors [GET]
func (h *ContractorHandler) Search(c *gin.Context) {
	start := time.Now()
	q, err := search.ParseQuery(c.Request.URL.Query())
	if err != nil {
		var verr *search.ValidationError
		if errors.As(err, &verr) {
			h.metrics.ObserveSearch(metrics.OutcomeInvalid, time.Since(start))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: verr.Message})
			return
		}
		h.fail(c, err, CodeContractorsFetchError, MsgContractorsFetchError)
		return
	}

	result, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err, CodeContractorsFetchError, MsgContractorsFetchError)
		return
	}

	contractors := result.Contractors
	if contractors == nil {
		contractors = []models.RankedContractor{}
	}

	c.Header("Cache-Control", SearchCacheControl)
	c.JSON(http.StatusOK, SearchResponse{
		Success:        true,
		Contractors:    contractors,
		Pagination:     result.Pagination,
		SearchLocation: result.SearchLocation,
	})
}

// Get godoc
// @Summary            Get a contractor
// @Tags               Contractors
// @Produce            json
// @Param              id path string true "Contractor id (UUID)"
// @Success            200 {object} ContractorResponse
// @Failure            400 {object} ErrorResponse
// @Failure            404 {object} ErrorResponse
// @Failure            500 {object} FailureResponse
// @Router             /api/contractors/{id} [GET]
func (h *ContractorHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid contractor id."})
		return
	}

	contractor, err := h.service.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Contractor not found."})
		return
	}
	if err != nil {
		h.fail(c, err, CodeContractorFetchError, MsgContractorFetchError)
		return
	}

	c.JSON(http.StatusOK, ContractorResponse{Success: true, Contractor: contractor})
}

func (h *ContractorHandler) fail(c *gin.Context, err error, code, message string) {
	h.logger.Error().Err(err).
		Str("path", c.Request.URL.Path).
		Str("query", c.Request.URL.RawQuery).
		Msg("contractor request failed")
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, FailureResponse{Success: false, Error: message, Code: code})
}
