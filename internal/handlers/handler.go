package handlers

import (
	"safety_monitor/internal/logger"
	"safety_monitor/internal/metrics"
	"safety_monitor/internal/service"
	"safety_monitor/internal/stream"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	hub      *stream.Hub
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. hub may be nil,
// in which case /ws only streams periodic state.
func NewHandler(services *service.Service, hub *stream.Hub, log *logger.Logger) *Handler {
	return &Handler{services: services, hub: hub, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	h.registerAPIRoutes(router)

	// live stream on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerDashboardRoutes(api)
		h.registerSOSRoutes(api)
		h.registerFireRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerDashboardRoutes(api *gin.RouterGroup) {
	api.GET("/dashboard", h.getDashboard)
	// Body example: {"alcohol":0.02,"gas_ppm":40,"temperature_c":31,"aqi":60,"flame":8,"smoke_mg_m3":0.4,"accident":false,"location":{"lat":23.81,"lon":90.41}}
	api.POST("/readings", h.ingestReading)
}

func (h *Handler) registerSOSRoutes(api *gin.RouterGroup) {
	sos := api.Group("/sos")
	{
		sos.POST("", h.sendSOS)
		sos.GET("/history", h.getHistory)
	}
}

func (h *Handler) registerFireRoutes(api *gin.RouterGroup) {
	fire := api.Group("/fire")
	{
		fire.POST("/hazard", h.pushHazard)
		fire.DELETE("/override", h.releaseOverride)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.getLogs)
		logs.GET("/summary", h.getLogSummary)
	}
}
