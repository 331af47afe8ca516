package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "contractor-directory-api/docs"
	"contractor-directory-api/internal/cache"
	"contractor-directory-api/internal/config"
	"contractor-directory-api/internal/db"
	"contractor-directory-api/internal/geocoder"
	"contractor-directory-api/internal/handler"
	"contractor-directory-api/internal/logger"
	"contractor-directory-api/internal/metrics"
	"contractor-directory-api/internal/middleware"
	"contractor-directory-api/internal/ratelimit"
	"contractor-directory-api/internal/repository"
	"contractor-directory-api/internal/server"
	"contractor-directory-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

// @title          Contractor Directory API
// @version        1.0
// @description    Location-aware search over the support worker directory.
// @BasePath       /
// @schemes        http https
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	log.Logger = logger.New(config.LogLevel, config.LogPretty)
	gin.SetMode(config.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database connection
	conn, err := db.NewPostgresPool(ctx, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	var redisClient *redis.Client
	if config.RedisURL != "" {
		redisClient, err = db.NewRedisClient(ctx, config.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to redis")
		}
		defer redisClient.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize layers
	contractorRepo := repository.NewContractorRepository(conn)
	localityRepo := repository.NewLocalityRepository(conn)

	searchService := service.NewContractorSearchService(
		contractorRepo,
		buildGeocoder(config, localityRepo, redisClient),
		service.SearchOptions{
			BoundingBoxPrefilter: config.SearchBoundingBoxPrefilter,
			ReportRankedTotal:    config.SearchReportRankedTotal,
			MaskContactDetails:   config.SearchMaskContactDetails,
		},
		m,
		log.Logger.With().Str("component", "search").Logger(),
	)
	localityService := service.NewLocalityService(localityRepo)

	var rateLimit gin.HandlerFunc
	if config.RateLimitEnabled {
		limiter := ratelimit.NewRedisLimiter(redisClient, "ratelimit:search", config.RateLimitRequests, config.RateLimitWindow)
		rateLimit = middleware.RateLimit(limiter, m, log.Logger)
	}

	r, err := server.NewRouter(server.Dependencies{
		Contractors:    handler.NewContractorHandler(searchService, m, log.Logger),
		Localities:     handler.NewLocalityHandler(localityService, log.Logger),
		RateLimit:      rateLimit,
		Gatherer:       reg,
		Logger:         log.Logger,
		AllowedOrigins: config.CORSAllowedOrigins,
		TrustedProxies: config.TrustedProxies,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build router")
	}

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", config.ServerAddress).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}

// buildGeocoder chains the local gazetteer and the HTTP provider, cached in Redis when available.
// It returns nil when neither source is configured.
func buildGeocoder(config config.Config, localities *repository.LocalityRepository, redisClient *redis.Client) service.Geocoder {
	var chain geocoder.Chain
	if config.GeocoderUseGazetteer {
		chain = append(chain, geocoder.NewGazetteer(localities))
	}
	if config.GeocoderProviderURL != "" {
		chain = append(chain, geocoder.NewNominatim(&fasthttp.Client{
			Name:                config.GeocoderUserAgent,
			MaxConnsPerHost:     16,
			ReadTimeout:         config.GeocoderTimeout,
			WriteTimeout:        config.GeocoderTimeout,
			MaxIdleConnDuration: time.Minute,
		}, geocoder.NominatimConfig{
			BaseURL:      config.GeocoderProviderURL,
			UserAgent:    config.GeocoderUserAgent,
			CountryCodes: config.GeocoderCountryCodes,
			Timeout:      config.GeocoderTimeout,
		}))
	}
	if len(chain) == 0 {
		log.Warn().Msg("no geocoder configured, distance ranking disabled")
		return nil
	}

	var g geocoder.Geocoder = chain
	if redisClient != nil {
		g = geocoder.NewCached(
			g,
			cache.NewRedisRepository(redisClient, "geocode"),
			config.GeocodeCacheTTL,
			config.GeocodeMissCacheTTL,
			log.Logger.With().Str("component", "geocoder").Logger(),
		)
	}
	return g
}
