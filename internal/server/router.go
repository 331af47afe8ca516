// Package server assembles the HTTP routes.
package server

import (
	"fmt"
	"net/http"

	"contractor-directory-api/internal/handler"
	"contractor-directory-api/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the collaborators the router wires into routes.
type Dependencies struct {
	Contractors *handler.ContractorHandler
	Localities  *handler.LocalityHandler
	// RateLimit guards the search route when non-nil.
	RateLimit gin.HandlerFunc
	Gatherer  prometheus.Gatherer
	Logger    zerolog.Logger
	// AllowedOrigins enables CORS for the listed origins; "*" allows any.
	AllowedOrigins []string
	// TrustedProxies lists proxy IPs or CIDRs whose forwarding headers set the client IP.
	// When empty the socket address is the client IP.
	TrustedProxies []string
}

// NewRouter builds the gin engine.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, fmt.Errorf("server: trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))
	if len(deps.AllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(deps.AllowedOrigins)))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	search := []gin.HandlerFunc{deps.Contractors.Search}
	if deps.RateLimit != nil {
		search = append([]gin.HandlerFunc{deps.RateLimit}, search...)
	}
	api.GET("/contractors", search...)
	api.GET("/contractors/:id", deps.Contractors.Get)

	api.GET("/localities/geocode", deps.Localities.Geocode)
	api.GET("/localities/reverse", deps.Localities.Reverse)

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	cfg.ExposeHeaders = []string{
		middleware.RequestIDHeader,
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"X-RateLimit-Reset",
		"Retry-After",
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
