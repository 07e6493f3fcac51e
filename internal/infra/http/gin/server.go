package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staysia/internal/infra/config"
	"staysia/internal/infra/obs"
)

type PropertyHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	ToggleFavorite(c *gin.Context)
	Details(c *gin.Context)
	Pricing(c *gin.Context)
	UploadImage(c *gin.Context)
	Sections(c *gin.Context)
}

type CalendarHTTP interface {
	Open(c *gin.Context)
	Month(c *gin.Context)
	Select(c *gin.Context)
	Clear(c *gin.Context)
	Confirm(c *gin.Context)
}

type BookingHTTP interface {
	List(c *gin.Context)
}

type LookupHTTP interface {
	CheckEmail(c *gin.Context)
	Locations(c *gin.Context)
	Currencies(c *gin.Context)
}

type Handlers struct {
	Property       PropertyHTTP
	Calendar       CalendarHTTP
	Booking        BookingHTTP
	Lookup         LookupHTTP
	AuthMiddleware gin.HandlerFunc
	HostKey        gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, obsMW, health, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func NewRouter(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	registerSwaggerRoutes(router)

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	hostOnly := h.HostKey
	if hostOnly == nil {
		hostOnly = func(c *gin.Context) {
			writeError(c, http.StatusForbidden, CodeHostKeyInvalid, "host endpoints disabled")
		}
	}
	if h.Property != nil {
		api.GET("/properties", h.Property.List)
		api.POST("/properties", hostOnly, h.Property.Create)
		api.POST("/properties/favorite", h.Property.ToggleFavorite)
		api.GET("/properties/:id", h.Property.Details)
		api.GET("/properties/:id/pricing", h.Property.Pricing)
		api.POST("/properties/:id/images", hostOnly, h.Property.UploadImage)
		api.GET("/home/sections", h.Property.Sections)
	}
	if h.Lookup != nil {
		api.GET("/check-email", h.Lookup.CheckEmail)
		api.GET("/locations/search", h.Lookup.Locations)
		api.GET("/currencies", h.Lookup.Currencies)
	}
	if h.Calendar != nil {
		sessions := api.Group("/calendar/sessions")
		sessions.POST("", h.Calendar.Open)
		sessions.GET("/:id", h.Calendar.Month)
		sessions.POST("/:id/select", h.Calendar.Select)
		sessions.DELETE("/:id/selection", h.Calendar.Clear)
		sessions.POST("/:id/confirm", h.Calendar.Confirm)
	}
	if h.Booking != nil {
		api.GET("/bookings", h.Booking.List)
	}
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", IdempotencyKeyHeader, HostKeyHeader},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			obs.RequestIDHeader,
			"Location",
		},
		MaxAge: 12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug", "dev", "local":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
