package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"safety_monitor/internal/alert"
	"safety_monitor/internal/logger"
	"safety_monitor/internal/metrics"
	"safety_monitor/internal/models"
	"safety_monitor/internal/repository"

	"github.com/google/uuid"
)

const (
	eventQueueSize       = 64
	defaultLocateTimeout = 5 * time.Second
	journalTimeout       = 2 * time.Second
)

// Remote hazard push mapping for the fire field group.
const (
	HazardFlame = 100
	HazardSmoke = 15.0
	ClearFlame  = 5
	ClearSmoke  = 0.05

	FireLinkHazard = "FIRE DETECTED!"
	FireLinkSafe   = "SAFE"

	recenterZoom = 15
	fireCallout  = "Fire detected here"
)

// DefaultOrigin is used when no start location is configured.
var DefaultOrigin = models.Location{Lat: 23.8103, Lon: 90.4125}

type eventKind int

const (
	evIngest eventKind = iota
	evHazard
	evRelease
	evSOS
	evLocationFix
)

type event struct {
	kind    eventKind
	reading models.Reading
	active  bool
	source  string
	fix     models.Location
	reply   chan result // nil for fire-and-forget events
}

type result struct {
	view models.Dashboard
	note models.Notification
	err  error
}

// dashboardState is touched only by the loop goroutine.
type dashboardState struct {
	reading      models.Reading
	lastTaken    time.Time
	cls          models.Classification
	latch        *alert.Latch
	history      *alert.History
	fireOverride bool
	fireLink     string
	tick         uint64
}

// DashboardService is the single-threaded controller: every reading, push
// and manual action becomes an event processed to completion by Run.
type DashboardService struct {
	thresholds    alert.Thresholds
	auditRepo     repository.AuditRepo
	publisher     Publisher
	locator       Locator
	locateTimeout time.Duration
	log           *logger.Logger
	now           func() time.Time
	newID         func() string

	events   chan event
	done     chan struct{}
	stopOnce sync.Once

	state dashboardState

	// last published view; readable from any goroutine
	mu   sync.RWMutex
	view models.Dashboard
}

func NewDashboardService(auditRepo repository.AuditRepo, opts Options) *DashboardService {
	s := &DashboardService{
		thresholds:    opts.Thresholds,
		auditRepo:     auditRepo,
		publisher:     opts.Publisher,
		locator:       opts.Locator,
		locateTimeout: opts.LocateTimeout,
		log:           opts.Log,
		now:           time.Now,
		newID:         uuid.NewString,
		events:        make(chan event, eventQueueSize),
		done:          make(chan struct{}),
	}
	if s.thresholds.IsZero() {
		s.thresholds = alert.DefaultThresholds()
	}
	if s.publisher == nil {
		s.publisher = nopPublisher{}
	}
	if s.locateTimeout <= 0 {
		s.locateTimeout = defaultLocateTimeout
	}
	if s.log == nil {
		s.log = logger.Nop()
	}

	origin := opts.Origin
	if origin == (models.Location{}) {
		origin = DefaultOrigin
	}
	s.state = dashboardState{
		reading: baselineReading(origin),
		latch:   alert.NewLatch(),
		history: alert.NewHistory(alert.HistoryCapacity),
	}
	s.state.cls = alert.Classify(s.state.reading, s.thresholds)
	s.view = s.buildView(s.now().UTC())
	return s
}

// baselineReading is the calm snapshot shown before the first tick.
func baselineReading(origin models.Location) models.Reading {
	return models.Reading{
		Alcohol:      0.02,
		GasPPM:       12,
		TemperatureC: 28,
		AirQuality:   45,
		Flame:        10,
		SmokeMgM3:    0.05,
		Location:     origin,
	}
}

// Run consumes events until ctx is canceled.
func (s *DashboardService) Run(ctx context.Context) {
	defer s.stopOnce.Do(func() { close(s.done) })
	s.log.Infow("dashboard_loop_started")

	for {
		select {
		case <-ctx.Done():
			s.log.Infow("dashboard_loop_stopped")
			return
		case ev := <-s.events:
			res := s.handle(ctx, ev)
			if ev.reply != nil {
				ev.reply <- res
			}
		}
	}
}

// -------- Public API --------

// Ingest validates a reading at the source boundary and applies it.
func (s *DashboardService) Ingest(ctx context.Context, r models.Reading) (models.Dashboard, error) {
	if err := ValidateReading(r); err != nil {
		metrics.ReadingsRejected.WithLabelValues("invalid").Inc()
		return models.Dashboard{}, err
	}
	res, err := s.submit(ctx, event{kind: evIngest, reading: r})
	return res.view, err
}

// PushHazard applies a remote fire hazard push (true = hazard, false = clear).
func (s *DashboardService) PushHazard(ctx context.Context, active bool) (models.Dashboard, error) {
	res, err := s.submit(ctx, event{kind: evHazard, active: active})
	return res.view, err
}

// ReleaseOverride hands flame/smoke back to the simulated source.
func (s *DashboardService) ReleaseOverride(ctx context.Context) (models.Dashboard, error) {
	res, err := s.submit(ctx, event{kind: evRelease})
	return res.view, err
}

// SendSOS always records a manual notification; latches are not consulted.
func (s *DashboardService) SendSOS(ctx context.Context, source string) (models.Notification, error) {
	src, err := normalizeSource(source)
	if err != nil {
		return models.Notification{}, err
	}
	res, err := s.submit(ctx, event{kind: evSOS, source: src})
	return res.note, err
}

// View returns the last published view-model.
func (s *DashboardService) View(ctx context.Context) (models.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return models.Dashboard{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view, nil
}

// History returns the SOS history, most recent first.
func (s *DashboardService) History(ctx context.Context) ([]models.Notification, error) {
	v, err := s.View(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Notification, len(v.History))
	copy(out, v.History)
	return out, nil
}

// -------- Event loop --------

func (s *DashboardService) submit(ctx context.Context, ev event) (result, error) {
	ev.reply = make(chan result, 1)
	select {
	case s.events <- ev:
	case <-ctx.Done():
		return result{}, ctx.Err()
	case <-s.done:
		return result{}, ErrControllerStopped
	}

	select {
	case res := <-ev.reply:
		return res, res.err
	case <-ctx.Done():
		return result{}, ctx.Err()
	case <-s.done:
		return result{}, ErrControllerStopped
	}
}

func (s *DashboardService) handle(ctx context.Context, ev event) result {
	switch ev.kind {
	case evIngest:
		return s.applyReading(ctx, ev.reading)
	case evHazard:
		return s.applyHazard(ctx, ev.active)
	case evRelease:
		return s.applyRelease(ctx)
	case evSOS:
		return s.applySOS(ctx, ev.source)
	case evLocationFix:
		return s.applyFix(ctx, ev.fix)
	default:
		return result{err: fmt.Errorf("unknown event kind %d", ev.kind)}
	}
}

func (s *DashboardService) applyReading(ctx context.Context, r models.Reading) result {
	now := s.now().UTC()

	if r.TakenAt.IsZero() {
		r.TakenAt = now
	} else {
		r.TakenAt = r.TakenAt.UTC()
		if !s.state.lastTaken.IsZero() && !r.TakenAt.After(s.state.lastTaken) {
			metrics.ReadingsRejected.WithLabelValues("stale").Inc()
			return result{err: fmt.Errorf("%w (taken_at %s, last %s)",
				ErrStaleReading, r.TakenAt.Format(time.RFC3339Nano), s.state.lastTaken.Format(time.RFC3339Nano))}
		}
	}
	if r.TakenAt.After(s.state.lastTaken) {
		s.state.lastTaken = r.TakenAt
	}

	// externally driven fire group keeps the pushed values
	if s.state.fireOverride {
		r.Flame = s.state.reading.Flame
		r.SmokeMgM3 = s.state.reading.SmokeMgM3
	}

	return result{view: s.evaluate(ctx, r, now)}
}

func (s *DashboardService) applyHazard(ctx context.Context, active bool) result {
	now := s.now().UTC()
	r := s.state.reading
	r.TakenAt = now
	s.state.fireOverride = true

	label := "clear"
	if active {
		r.Flame, r.SmokeMgM3 = HazardFlame, HazardSmoke
		s.state.fireLink = FireLinkHazard
		label = "hazard"
	} else {
		r.Flame, r.SmokeMgM3 = ClearFlame, ClearSmoke
		s.state.fireLink = FireLinkSafe
	}
	metrics.HazardPushes.WithLabelValues(label).Inc()
	s.log.Infow("hazard_push", "active", active)

	s.journal(ctx, hazardEntry(now, active, s.state.fireLink,
		models.FireSample{Flame: r.Flame, SmokeMgM3: r.SmokeMgM3}))

	view := s.evaluate(ctx, r, now)

	if active {
		loc := r.Location
		s.raise(ctx, models.UserAlert{
			Title:    FireLinkHazard,
			Message:  "Remote fire sensor reported a hazard.",
			Location: &loc,
			RaisedAt: now,
		})
		s.requestLocation(ctx)
	}
	return result{view: view}
}

func (s *DashboardService) applyRelease(ctx context.Context) result {
	now := s.now().UTC()
	was := s.state.fireOverride
	s.state.fireOverride = false
	s.state.fireLink = ""
	if was {
		s.journal(ctx, releaseEntry(now))
	}
	return result{view: s.publishView(ctx, now)}
}

func (s *DashboardService) applySOS(ctx context.Context, source string) result {
	now := s.now().UTC()
	loc := s.state.reading.Location
	msg := fmt.Sprintf("Emergency signal sent from %s!", source)

	n := models.Notification{
		ID:         s.newID(),
		Kind:       models.NotificationManual,
		Source:     source,
		Message:    msg,
		OccurredAt: now,
		Location:   loc,
	}
	s.record(ctx, n)
	s.raise(ctx, models.UserAlert{
		Title:    "SOS ALERT",
		Message:  fmt.Sprintf("SOS ALERT: %s\nLocation: %s", msg, formatLocation(loc)),
		Location: &loc,
		RaisedAt: now,
	})
	return result{note: n, view: s.publishView(ctx, now)}
}

func (s *DashboardService) applyFix(ctx context.Context, loc models.Location) result {
	if err := ValidateLocation(loc); err != nil {
		s.log.Warnw("location_fix_rejected", "err", err)
		return result{err: err}
	}
	now := s.now().UTC()
	s.state.reading.Location = loc
	view := s.publishView(ctx, now)
	s.publisher.Publish(ctx, models.Envelope{
		Type: models.EnvelopeMap,
		Data: models.MapDirective{Center: loc, Zoom: recenterZoom, Marker: "fire", Callout: fireCallout},
	})
	return result{view: view}
}

// evaluate runs classify -> latch -> log -> publish for one snapshot.
func (s *DashboardService) evaluate(ctx context.Context, r models.Reading, now time.Time) models.Dashboard {
	s.state.reading = r
	s.state.cls = alert.Classify(r, s.thresholds)

	for _, cat := range s.state.latch.Update(s.state.cls) {
		s.record(ctx, models.Notification{
			ID:         s.newID(),
			Kind:       models.NotificationAuto,
			Category:   cat,
			Source:     alert.SourceOf(cat),
			Message:    alert.RecordMessage(cat),
			OccurredAt: now,
			Location:   r.Location,
		})
	}

	s.state.tick++
	metrics.Ticks.Inc()
	for _, cat := range alert.Latching {
		g := 0.0
		if s.state.latch.IsOpen(cat) {
			g = 1
		}
		metrics.OpenIncidents.WithLabelValues(string(cat)).Set(g)
	}
	return s.publishView(ctx, now)
}

// record appends n to the history, journals it and relays it.
func (s *DashboardService) record(ctx context.Context, n models.Notification) {
	s.state.history.Append(n)
	metrics.HistoryDepth.Set(float64(s.state.history.Len()))
	metrics.Notifications.WithLabelValues(string(n.Kind), string(n.Category)).Inc()
	s.log.Infow("sos_recorded", "kind", n.Kind, "category", n.Category, "source", n.Source)

	s.journal(ctx, notificationEntry(n))
	s.publisher.Publish(ctx, models.Envelope{Type: models.EnvelopeNotification, Data: n})
}

func (s *DashboardService) raise(ctx context.Context, a models.UserAlert) {
	s.publisher.Publish(ctx, models.Envelope{Type: models.EnvelopeAlert, Data: a})
}

// journal failures never affect the dashboard.
func (s *DashboardService) journal(ctx context.Context, e models.AuditEvent) {
	if s.auditRepo == nil {
		return
	}
	jctx, cancel := context.WithTimeout(ctx, journalTimeout)
	defer cancel()
	if err := s.auditRepo.Append(jctx, e); err != nil {
		s.log.Errorw("audit_append_failed", "err", err, "kind", e.Kind)
	}
}

// requestLocation asks the Locator for a fix off the loop; the answer
// re-enters the queue as a location event. Failures keep the last location.
func (s *DashboardService) requestLocation(ctx context.Context) {
	if s.locator == nil {
		return
	}
	go func() {
		lctx, cancel := context.WithTimeout(ctx, s.locateTimeout)
		defer cancel()

		loc, err := s.locator.Locate(lctx)
		if err != nil {
			s.log.Warnw("locate_failed", "err", err)
			return
		}
		select {
		case s.events <- event{kind: evLocationFix, fix: loc}:
		case <-ctx.Done():
		case <-s.done:
		}
	}()
}

func (s *DashboardService) publishView(ctx context.Context, now time.Time) models.Dashboard {
	v := s.buildView(now)
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	s.publisher.Publish(ctx, models.Envelope{Type: models.EnvelopeState, Data: v})
	return v
}

func (s *DashboardService) buildView(now time.Time) models.Dashboard {
	cls := s.state.cls
	ignition := models.IgnitionActive
	if !cls.IgnitionGranted {
		ignition = models.IgnitionCut
	}
	loc := s.state.reading.Location
	return models.Dashboard{
		Reading:         s.state.reading,
		Verdicts:        cls.Verdicts,
		MiningAlert:     miningAlert(cls),
		Ignition:        ignition,
		IgnitionGranted: cls.IgnitionGranted,
		OpenIncidents:   s.state.latch.Open(),
		FireOverride:    s.state.fireOverride,
		FireLinkStatus:  s.state.fireLink,
		Markers:         models.Markers{Helmet: loc, Fire: loc},
		History:         s.state.history.Snapshot(),
		Tick:            s.state.tick,
		UpdatedAt:       now,
	}
}

// miningAlert returns the one mining category that is not Normal, if any.
func miningAlert(c models.Classification) models.AlertCategory {
	for _, cat := range []models.AlertCategory{
		models.CategoryMineGas,
		models.CategoryMineHeat,
		models.CategoryMineAirQuality,
	} {
		if c.Verdict(cat).Severity != models.SeverityNormal {
			return cat
		}
	}
	return ""
}

func formatLocation(l models.Location) string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + ", " + strconv.FormatFloat(l.Lon, 'f', -1, 64)
}
