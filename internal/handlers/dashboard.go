package handlers

import (
	"context"
	"errors"
	"net/http"

	"safety_monitor/internal/models"
	"safety_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK       = "ok"
	statusSent     = "sent"
	statusReleased = "released"

	historyPlaceholder = "No SOS signals sent yet."

	errGetDashboard    = "failed to load dashboard"
	errIngest          = "failed to ingest reading"
	errSendSOS         = "failed to send SOS"
	errPushHazard      = "failed to apply hazard push"
	errRelease         = "failed to release override"
	errUnavailable     = "dashboard unavailable"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError maps controller errors onto HTTP codes.
func (h *Handler) respondServiceError(c *gin.Context, userMsg, logKey string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidReading), errors.Is(err, service.ErrEmptySource),
		isFilterError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrStaleReading):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrControllerStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		h.logAndJSONError(c, http.StatusServiceUnavailable, errUnavailable, logKey, err)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err)
	}
}

// ReadingRequest is one complete snapshot. All fields are required; partial
// snapshots are rejected.
type ReadingRequest struct {
	Alcohol      *float64         `json:"alcohol" binding:"required" example:"0.02"`
	GasPPM       *int             `json:"gas_ppm" binding:"required" example:"40"`
	TemperatureC *float64         `json:"temperature_c" binding:"required" example:"31"`
	AirQuality   *int             `json:"aqi" binding:"required" example:"60"`
	Flame        *int             `json:"flame" binding:"required" example:"8"`
	SmokeMgM3    *float64         `json:"smoke_mg_m3" binding:"required" example:"0.4"`
	Accident     *bool            `json:"accident" binding:"required" example:"false"`
	Location     *models.Location `json:"location" binding:"required"`
	// Optional; must increase between readings. Omitted means "now".
	TakenAt *string `json:"taken_at,omitempty" example:"2025-08-01T10:00:00Z"`
}

// SOSRequest is the manual SOS payload.
type SOSRequest struct {
	Source string `json:"source" binding:"required" example:"Smart Helmet"`
}

// HazardRequest mirrors the remote 0|1 fire link push.
type HazardRequest struct {
	Active *bool `json:"active" binding:"required" example:"true"`
}

func (r ReadingRequest) toModel() (models.Reading, error) {
	out := models.Reading{
		Alcohol:      *r.Alcohol,
		GasPPM:       *r.GasPPM,
		TemperatureC: *r.TemperatureC,
		AirQuality:   *r.AirQuality,
		Flame:        *r.Flame,
		SmokeMgM3:    *r.SmokeMgM3,
		Accident:     *r.Accident,
		Location:     *r.Location,
	}
	if r.TakenAt != nil && *r.TakenAt != "" {
		t, err := parseQueryTime(*r.TakenAt)
		if err != nil {
			return models.Reading{}, err
		}
		out.TakenAt = t
	}
	return out, nil
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get dashboard
// @Description  Current view-model: reading, per-category verdicts, ignition, markers and SOS history
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.Dashboard
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	v, err := h.services.Dashboard.View(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, errGetDashboard, "dashboard_view_failed", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Ingest reading
// @Description  Submits one complete snapshot from an external source
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body      ReadingRequest  true  "Reading snapshot"
// @Success      200   {object}  models.Dashboard
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/readings [post]
func (h *Handler) ingestReading(c *gin.Context) {
	var req ReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	r, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	v, err := h.services.Dashboard.Ingest(c.Request.Context(), r)
	if err != nil {
		h.respondServiceError(c, errIngest, "reading_ingest_failed", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Send SOS
// @Description  Always records a manual SOS from the given source with the current location
// @Tags         sos
// @Accept       json
// @Produce      json
// @Param        body  body      SOSRequest  true  "SOS source"
// @Success      200   {object}  map[string]interface{}  "status, notification"
// @Failure      400   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/sos [post]
func (h *Handler) sendSOS(c *gin.Context) {
	var req SOSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	n, err := h.services.Dashboard.SendSOS(c.Request.Context(), req.Source)
	if err != nil {
		h.respondServiceError(c, errSendSOS, "sos_send_failed", err)
		return
	}
	if h.log != nil {
		h.log.Infow("sos_sent", "source", n.Source, "id", n.ID)
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSent, "notification": n})
}

// @Summary      SOS history
// @Description  Most recent first, at most 20 entries
// @Tags         sos
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, events, placeholder"
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/sos/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	events, err := h.services.Dashboard.History(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, errGetDashboard, "sos_history_failed", err)
		return
	}
	resp := gin.H{
		"count":  len(events),
		"events": events,
	}
	if len(events) == 0 {
		resp["placeholder"] = historyPlaceholder
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Push fire hazard
// @Description  Same as a 0|1 message on the Redis hazard channel. The fire sensors stay externally driven until the override is released.
// @Tags         fire
// @Accept       json
// @Produce      json
// @Param        body  body      HazardRequest  true  "Hazard state"
// @Success      200   {object}  models.Dashboard
// @Failure      400   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/fire/hazard [post]
func (h *Handler) pushHazard(c *gin.Context) {
	var req HazardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	v, err := h.services.Dashboard.PushHazard(c.Request.Context(), *req.Active)
	if err != nil {
		h.respondServiceError(c, errPushHazard, "hazard_push_failed", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Release fire override
// @Description  Returns flame and smoke to the simulated source
// @Tags         fire
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/fire/override [delete]
func (h *Handler) releaseOverride(c *gin.Context) {
	v, err := h.services.Dashboard.ReleaseOverride(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, errRelease, "override_release_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusReleased, "state": v})
}
