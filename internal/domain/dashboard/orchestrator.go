package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/example/startup-analytics/internal/domain/activity"
	"github.com/example/startup-analytics/internal/logger"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultFacetTimeout  = 2 * time.Second
	DefaultActivityLimit = 10
)

// Recorder receives per-facet and per-build outcomes.
type Recorder interface {
	ObserveFacet(facet string, ok bool, elapsed time.Duration)
	ObserveBuild(role string, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveFacet(string, bool, time.Duration) {}
func (nopRecorder) ObserveBuild(string, string)              {}

// Build outcomes reported to the Recorder.
const (
	OutcomeComplete    = "complete"
	OutcomeDegraded    = "degraded"
	OutcomeUnknownRole = "unknown_role"
	OutcomePersistence = "persistence_failure"
	OutcomeAbandoned   = "abandoned"
)

// Orchestrator fans out to the facet sources of a role, merges what comes
// back and persists the result.
type Orchestrator struct {
	sources       Sources
	store         SnapshotStore
	activities    ActivityLog
	log           *logger.Logger
	recorder      Recorder
	facetTimeout  time.Duration
	activityLimit int
}

type Option func(*Orchestrator)

func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) { o.log = l.With("component", "Orchestrator") }
}

func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithFacetTimeout bounds each facet fetch and the activity read.
func WithFacetTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.facetTimeout = d
		}
	}
}

func WithActivityLimit(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.activityLimit = n
		}
	}
}

func NewOrchestrator(sources Sources, store SnapshotStore, activities ActivityLog, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		sources:       sources,
		store:         store,
		activities:    activities,
		log:           logger.Nop(),
		recorder:      nopRecorder{},
		facetTimeout:  DefaultFacetTimeout,
		activityLimit: DefaultActivityLimit,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// BuildSnapshot aggregates, persists and returns the snapshot for an
// already-resolved user. Facet and activity failures degrade the result;
// only an unknown role, a failed upsert or the caller's own cancellation is
// returned as an error.
func (o *Orchestrator) BuildSnapshot(ctx context.Context, userID string, role Role) (*Snapshot, error) {
	profile, err := Resolve(role)
	if err != nil {
		o.recorder.ObserveBuild(string(role), OutcomeUnknownRole)
		return nil, err
	}

	results := make([]FacetResult, len(profile.Facets))
	var (
		recent      []activity.Activity
		activityErr error
	)

	var g errgroup.Group
	for i, f := range profile.Facets {
		g.Go(func() error {
			results[i] = o.fetchFacet(ctx, userID, f)
			return nil
		})
	}
	g.Go(func() error {
		recent, activityErr = o.recentActivity(ctx, userID)
		return nil
	})
	_ = g.Wait()

	merged := NewResults(results...)
	fields := profile.Merge(merged).Normalize()

	// An abandoned pass is not persisted.
	if err := ctx.Err(); err != nil {
		o.recorder.ObserveBuild(string(profile.Role), OutcomeAbandoned)
		o.log.Debug("snapshot build abandoned", "user_id", userID, "error", err)
		return nil, err
	}

	snap, err := o.store.Upsert(ctx, userID, fields)
	if err != nil {
		o.recorder.ObserveBuild(string(profile.Role), OutcomePersistence)
		o.log.Error("snapshot upsert failed", "user_id", userID, "error", err)
		return nil, &PersistenceError{UserID: userID, Err: err}
	}

	if activityErr != nil {
		o.log.Warn("recent activity unavailable", "user_id", userID, "error", activityErr)
		recent = []activity.Activity{}
	}
	snap.RecentActivity = recent

	outcome := OutcomeComplete
	if len(merged.Failed()) > 0 || activityErr != nil {
		outcome = OutcomeDegraded
	}
	o.recorder.ObserveBuild(string(profile.Role), outcome)
	return snap, nil
}

func (o *Orchestrator) fetchFacet(ctx context.Context, userID string, f Facet) FacetResult {
	start := time.Now()
	res := FacetResult{Facet: f}

	src, ok := o.sources[f]
	if !ok || src == nil {
		res.Err = ErrNoSource
	} else {
		res.Value, res.Err = callWithTimeout(ctx, o.facetTimeout, func(ctx context.Context) (int, error) {
			return src.Fetch(ctx, userID)
		})
	}

	o.recorder.ObserveFacet(string(f), res.Err == nil, time.Since(start))
	if res.Err != nil {
		res.Err = &FacetUnavailableError{Facet: f, Err: res.Err}
		res.Value = 0
		o.log.Warn("facet unavailable", "facet", f, "user_id", userID, "error", res.Err)
	}
	return res
}

func (o *Orchestrator) recentActivity(ctx context.Context, userID string) ([]activity.Activity, error) {
	if o.activities == nil {
		return []activity.Activity{}, nil
	}
	recent, err := callWithTimeout(ctx, o.facetTimeout, func(ctx context.Context) ([]activity.Activity, error) {
		return o.activities.Recent(ctx, userID, o.activityLimit)
	})
	if err != nil {
		return nil, &ActivityUnavailableError{UserID: userID, Err: err}
	}
	if recent == nil {
		recent = []activity.Activity{}
	}
	if len(recent) > o.activityLimit {
		recent = recent[:o.activityLimit]
	}
	return recent, nil
}

type callResult[T any] struct {
	value T
	err   error
}

// callWithTimeout runs fn under a deadline and returns as soon as either fn
// finishes or the deadline passes, so a source that ignores ctx cannot stall
// the pass. A panic in fn is reported as an error.
func callWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan callResult[T], 1)
	go func() {
		var out callResult[T]
		defer func() {
			if r := recover(); r != nil {
				out.err = fmt.Errorf("panic: %v", r)
			}
			ch <- out
		}()
		out.value, out.err = fn(cctx)
	}()

	select {
	case out := <-ch:
		return out.value, out.err
	case <-cctx.Done():
		var zero T
		return zero, cctx.Err()
	}
}
