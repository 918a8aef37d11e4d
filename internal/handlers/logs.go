package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"safety_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"

	errJournalUnavailable = "failed to load audit journal"
)

// @Summary      List audit journal
// @Description  Emitted SOS records and fire link pushes, newest first. 'kind' may repeat or be comma separated; 'SOS' selects both SOS kinds. A date-only 'to' covers the whole day.
// @Tags         logs
// @Produce      json
// @Param        from      query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to        query   string  false  "End of range, inclusive"  example(2025-08-31)
// @Param        kind      query   string  false  "Journal kind"  Enums(SOS,SOS_AUTO,SOS_MANUAL,HAZARD_PUSH,HAZARD_CLEAR,OVERRIDE_RELEASE)
// @Param        source    query   string  false  "Alarm source"  Enums(Smart Helmet,Mining Safety,Fire/Smoke Alarm)
// @Param        category  query   string  false  "Alert category"  Enums(ACCIDENT_IMPACT,MINE_GAS,MINE_HEAT,FIRE_SMOKE)
// @Param        limit     query   int     false  "Maximum entries (default 200, max 1000)"
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	f, err := parseLogFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	events, err := h.services.EventLog.List(c.Request.Context(), f)
	if err != nil {
		h.respondServiceError(c, errJournalUnavailable, "audit_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// @Summary      Summarize audit journal
// @Description  Counts per kind, per latching category and per alarm source, plus the latest SOS. Accepts the same filters as /api/v1/logs except limit.
// @Tags         logs
// @Produce      json
// @Param        from      query   string  false  "Start of range"
// @Param        to        query   string  false  "End of range, inclusive"
// @Param        kind      query   string  false  "Journal kind"
// @Param        source    query   string  false  "Alarm source"
// @Param        category  query   string  false  "Alert category"
// @Success      200   {object}  service.JournalSummary
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs/summary [get]
func (h *Handler) getLogSummary(c *gin.Context) {
	f, err := parseLogFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sum, err := h.services.EventLog.Summary(c.Request.Context(), f)
	if err != nil {
		h.respondServiceError(c, errJournalUnavailable, "audit_summary_failed", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// parseLogFilter reads the journal query string. Value checks on kind,
// source and category belong to the service.
func parseLogFilter(c *gin.Context) (service.LogFilter, error) {
	var (
		f   service.LogFilter
		err error
	)
	if qs := c.Query("from"); qs != "" {
		if f.From, err = parseQueryTime(qs); err != nil {
			return f, fmt.Errorf("invalid 'from': %w", err)
		}
	}
	if qs := c.Query("to"); qs != "" {
		if f.To, err = parseQueryTime(qs); err != nil {
			return f, fmt.Errorf("invalid 'to': %w", err)
		}
		if !strings.ContainsAny(qs, "T ") {
			f.To = f.To.Add(24*time.Hour - time.Nanosecond)
		}
	}
	for _, raw := range c.QueryArray("kind") {
		f.Kinds = append(f.Kinds, strings.Split(raw, ",")...)
	}
	f.Source = c.Query("source")
	f.Category = c.Query("category")
	if qs := c.Query("limit"); qs != "" {
		if f.Limit, err = strconv.Atoi(qs); err != nil {
			return f, fmt.Errorf("invalid 'limit' %q", qs)
		}
	}
	return f, nil
}

// parseQueryTime accepts RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD' and
// returns UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q, use RFC3339 or YYYY-MM-DD", s)
}

func isFilterError(err error) bool {
	for _, target := range []error{
		service.ErrInvalidTimeRange,
		service.ErrUnknownKind,
		service.ErrUnknownSource,
		service.ErrUnknownCategory,
		service.ErrNegativeLimit,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
