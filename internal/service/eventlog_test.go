package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"safety_monitor/internal/alert"
	"safety_monitor/internal/models"
	"safety_monitor/internal/repository"
)

// fakeAuditRepo records appended entries and answers List from a canned
// slice.
type fakeAuditRepo struct {
	mu        sync.Mutex
	appended  []models.AuditEvent
	appendErr error

	events  []models.AuditEvent
	listErr error
	gotQ    repository.AuditQuery
	calls   int
}

func (f *fakeAuditRepo) Append(_ context.Context, e models.AuditEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, e)
	return f.appendErr
}

func (f *fakeAuditRepo) List(_ context.Context, q repository.AuditQuery) ([]models.AuditEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotQ = q
	return f.events, f.listErr
}

func (f *fakeAuditRepo) entries() []models.AuditEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.AuditEvent, len(f.appended))
	copy(out, f.appended)
	return out
}

func (f *fakeAuditRepo) types() []models.AuditKind {
	var out []models.AuditKind
	for _, e := range f.entries() {
		out = append(out, e.Kind)
	}
	return out
}

func TestJournal_ManualSOSCarriesSourceAndLocation(t *testing.T) {
	t.Parallel()
	f := startDashboard(t, nil)

	n, err := f.svc.SendSOS(context.Background(), alert.SourceMining)
	if err != nil {
		t.Fatalf("SendSOS: %v", err)
	}

	got := f.repo.entries()
	if len(got) != 1 {
		t.Fatalf("want one journal entry, got %d", len(got))
	}
	e := got[0]
	if e.Kind != models.AuditSOSManual || e.Source != alert.SourceMining || e.Category != "" {
		t.Fatalf("entry = %+v", e)
	}
	if e.EventID != n.ID || e.Message != n.Message {
		t.Fatalf("entry does not mirror the notification: %+v vs %+v", e, n)
	}
	if e.Location == nil || *e.Location != n.Location {
		t.Fatalf("location = %v; want %v", e.Location, n.Location)
	}
	if e.Fire != nil {
		t.Fatalf("SOS entries carry no fire sample")
	}
}

func TestJournal_AutoSOSCarriesCategory(t *testing.T) {
	t.Parallel()
	f := startDashboard(t, nil)

	hot := calmReading()
	hot.GasPPM = 150
	v := mustIngest(t, f.svc, hot)
	mustIngest(t, f.svc, hot) // same incident, no second entry

	got := f.repo.entries()
	if len(got) != 1 {
		t.Fatalf("want one entry per incident, got %d", len(got))
	}
	e := got[0]
	if e.Kind != models.AuditSOSAuto || e.Category != models.CategoryMineGas || e.Source != alert.SourceMining {
		t.Fatalf("entry = %+v", e)
	}
	if e.EventID != v.History[0].ID {
		t.Fatalf("entry id %q does not match history %q", e.EventID, v.History[0].ID)
	}
}

func TestJournal_HazardPushRecordsForcedValues(t *testing.T) {
	t.Parallel()
	f := startDashboard(t, nil)
	ctx := context.Background()

	if _, err := f.svc.PushHazard(ctx, true); err != nil {
		t.Fatalf("PushHazard(true): %v", err)
	}
	if _, err := f.svc.PushHazard(ctx, false); err != nil {
		t.Fatalf("PushHazard(false): %v", err)
	}

	got := f.repo.entries()
	want := []models.AuditKind{models.AuditHazardPush, models.AuditSOSAuto, models.AuditHazardClear}
	if kinds := f.repo.types(); fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("journal = %v; want %v", kinds, want)
	}

	push := got[0]
	if push.Source != alert.SourceFire || push.Fire == nil || push.Fire.Flame != HazardFlame || push.Fire.SmokeMgM3 != HazardSmoke {
		t.Fatalf("push entry = %+v fire=%v", push, push.Fire)
	}
	if push.Message != "Remote fire link reported "+FireLinkHazard {
		t.Fatalf("push message = %q", push.Message)
	}
	if got[1].Category != models.CategoryFireSmoke {
		t.Fatalf("pushed hazard must open the fire incident, got %+v", got[1])
	}
	cleared := got[2]
	if cleared.Fire == nil || cleared.Fire.Flame != ClearFlame || cleared.Fire.SmokeMgM3 != ClearSmoke {
		t.Fatalf("clear entry fire = %v", cleared.Fire)
	}
}

func TestJournal_ReleaseWithoutOverrideIsNotJournaled(t *testing.T) {
	t.Parallel()
	f := startDashboard(t, nil)

	if _, err := f.svc.ReleaseOverride(context.Background()); err != nil {
		t.Fatalf("ReleaseOverride: %v", err)
	}
	if got := f.repo.entries(); len(got) != 0 {
		t.Fatalf("nothing to release, got %+v", got)
	}
}

func TestLogFilter_query(t *testing.T) {
	t.Parallel()

	plus2 := time.FixedZone("UTC+2", 2*3600)

	tests := []struct {
		name    string
		in      LogFilter
		check   func(t *testing.T, q repository.AuditQuery)
		wantErr error
	}{
		{
			name: "empty filter takes the default limit",
			in:   LogFilter{},
			check: func(t *testing.T, q repository.AuditQuery) {
				if q.Limit != DefaultLogLimit || len(q.Kinds) != 0 || q.Source != "" || q.Category != "" {
					t.Fatalf("q = %+v", q)
				}
			},
		},
		{
			name: "sos alias expands once",
			in:   LogFilter{Kinds: []string{"sos", " SOS_AUTO "}},
			check: func(t *testing.T, q repository.AuditQuery) {
				want := []models.AuditKind{models.AuditSOSAuto, models.AuditSOSManual}
				if fmt.Sprint(q.Kinds) != fmt.Sprint(want) {
					t.Fatalf("kinds = %v; want %v", q.Kinds, want)
				}
			},
		},
		{
			name: "fire link kinds are case-insensitive",
			in:   LogFilter{Kinds: []string{"hazard_push", "hazard_clear"}},
			check: func(t *testing.T, q repository.AuditQuery) {
				if len(q.Kinds) != 2 || q.Kinds[0] != models.AuditHazardPush || q.Kinds[1] != models.AuditHazardClear {
					t.Fatalf("kinds = %v", q.Kinds)
				}
			},
		},
		{
			name:    "unknown kind",
			in:      LogFilter{Kinds: []string{"FURNACE_START"}},
			wantErr: ErrUnknownKind,
		},
		{
			name: "source canonicalized",
			in:   LogFilter{Source: "  mining safety "},
			check: func(t *testing.T, q repository.AuditQuery) {
				if q.Source != alert.SourceMining {
					t.Fatalf("source = %q", q.Source)
				}
			},
		},
		{
			name:    "unknown source",
			in:      LogFilter{Source: "Radio"},
			wantErr: ErrUnknownSource,
		},
		{
			name: "latching category accepted",
			in:   LogFilter{Category: "fire_smoke"},
			check: func(t *testing.T, q repository.AuditQuery) {
				if q.Category != models.CategoryFireSmoke {
					t.Fatalf("category = %q", q.Category)
				}
			},
		},
		{
			name:    "advisory category is never journaled",
			in:      LogFilter{Category: "MINE_AIR_QUALITY"},
			wantErr: ErrUnknownCategory,
		},
		{
			name:    "ignition status is never journaled",
			in:      LogFilter{Category: "IGNITION_LOCK"},
			wantErr: ErrUnknownCategory,
		},
		{
			name: "inverted range",
			in: LogFilter{
				From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "bounds converted to UTC",
			in:   LogFilter{From: time.Date(2025, 9, 10, 10, 0, 0, 0, plus2)},
			check: func(t *testing.T, q repository.AuditQuery) {
				want := time.Date(2025, 9, 10, 8, 0, 0, 0, time.UTC)
				if !q.From.Equal(want) || q.From.Location() != time.UTC {
					t.Fatalf("from = %v; want %v", q.From, want)
				}
			},
		},
		{
			name:    "negative limit",
			in:      LogFilter{Limit: -1},
			wantErr: ErrNegativeLimit,
		},
		{
			name: "limit capped",
			in:   LogFilter{Limit: 5000},
			check: func(t *testing.T, q repository.AuditQuery) {
				if q.Limit != MaxLogLimit {
					t.Fatalf("limit = %d", q.Limit)
				}
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			q, err := tc.in.query()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v; want %v", err, tc.wantErr)
			}
			if tc.check != nil {
				tc.check(t, q)
			}
		})
	}
}

func TestEventLogService_List(t *testing.T) {
	t.Parallel()

	repo := &fakeAuditRepo{events: []models.AuditEvent{{EventID: "1", Kind: models.AuditSOSManual}}}
	svc := NewEventLogService(repo)

	out, err := svc.List(context.Background(), LogFilter{Kinds: []string{"sos"}, Source: "smart helmet"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 || out[0].EventID != "1" {
		t.Fatalf("events = %+v", out)
	}
	if repo.gotQ.Source != alert.SourceHelmet || len(repo.gotQ.Kinds) != 2 {
		t.Fatalf("query = %+v", repo.gotQ)
	}
}

func TestEventLogService_List_InvalidFilterSkipsRepo(t *testing.T) {
	t.Parallel()

	repo := &fakeAuditRepo{}
	_, err := NewEventLogService(repo).List(context.Background(), LogFilter{Category: "IGNITION_LOCK"})
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("err = %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("repo called %d times", repo.calls)
	}
}

func TestEventLogService_List_RepoError(t *testing.T) {
	t.Parallel()

	repo := &fakeAuditRepo{listErr: errors.New("db down")}
	if _, err := NewEventLogService(repo).List(context.Background(), LogFilter{}); !errors.Is(err, repo.listErr) {
		t.Fatalf("err = %v", err)
	}
}

func TestEventLogService_Summary(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeAuditRepo{events: []models.AuditEvent{
		{EventID: "4", OccurredAt: now.Add(3 * time.Second), Kind: models.AuditSOSAuto, Source: alert.SourceFire, Category: models.CategoryFireSmoke},
		{EventID: "3", OccurredAt: now.Add(2 * time.Second), Kind: models.AuditHazardPush, Source: alert.SourceFire},
		{EventID: "2", OccurredAt: now.Add(time.Second), Kind: models.AuditSOSManual, Source: alert.SourceHelmet},
		{EventID: "1", OccurredAt: now, Kind: models.AuditSOSAuto, Source: alert.SourceMining, Category: models.CategoryMineGas},
	}}

	sum, err := NewEventLogService(repo).Summary(context.Background(), LogFilter{Limit: 3})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if repo.gotQ.Limit != MaxLogLimit {
		t.Fatalf("summary must scan up to MaxLogLimit, got %d", repo.gotQ.Limit)
	}
	if sum.Total != 4 || sum.ByKind[models.AuditSOSAuto] != 2 || sum.ByKind[models.AuditHazardPush] != 1 {
		t.Fatalf("by kind = %+v", sum)
	}
	if sum.ByCategory[models.CategoryFireSmoke] != 1 || sum.ByCategory[models.CategoryMineGas] != 1 || len(sum.ByCategory) != 2 {
		t.Fatalf("by category = %v", sum.ByCategory)
	}
	// the fire link push is not an SOS
	if sum.BySource[alert.SourceFire] != 1 || sum.BySource[alert.SourceHelmet] != 1 {
		t.Fatalf("by source = %v", sum.BySource)
	}
	if sum.LastSOS == nil || sum.LastSOS.EventID != "4" {
		t.Fatalf("last sos = %+v", sum.LastSOS)
	}
}

func TestEventLogService_SummaryEmptyJournal(t *testing.T) {
	t.Parallel()

	sum, err := NewEventLogService(&fakeAuditRepo{}).Summary(context.Background(), LogFilter{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Total != 0 || sum.LastSOS != nil || sum.ByKind == nil {
		t.Fatalf("empty summary = %+v", sum)
	}
}
