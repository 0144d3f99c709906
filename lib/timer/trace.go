package timer

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/raulk/clock"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type traceKey struct{}

type mark struct {
	name string
	at   time.Duration
}

// trace collects named marks, each stamped with the time elapsed since
// tracing started.
type trace struct {
	mu    sync.Mutex
	clock clock.Clock
	start time.Time
	marks []mark
}

func (t *trace) add(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.marks = append(t.marks, mark{name: name, at: t.clock.Now().Sub(t.start)})
}

// snapshot returns the marks ordered by time. Marks taken at the same
// instant keep their recording order.
func (t *trace) snapshot() []mark {
	t.mu.Lock()
	defer t.mu.Unlock()
	ret := append([]mark(nil), t.marks...)
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].at < ret[j].at })
	return ret
}

func WithTracing(ctx context.Context) context.Context {
	return WithTracingClock(ctx, clock.New())
}

// WithTracingClock starts a trace in ctx that reads time from c.
func WithTracingClock(ctx context.Context, c clock.Clock) context.Context {
	return context.WithValue(ctx, traceKey{}, &trace{clock: c, start: c.Now()})
}

func fromContext(ctx context.Context) *trace {
	if ctx == nil {
		return nil
	}
	t, _ := ctx.Value(traceKey{}).(*trace)
	return t
}

// Mark records event in the trace carried by ctx, if any.
func Mark(ctx context.Context, event string) {
	if t := fromContext(ctx); t != nil {
		t.add(event)
	}
}

// Events returns the recorded event names ordered by time.
func Events(ctx context.Context) []string {
	t := fromContext(ctx)
	if t == nil {
		return nil
	}
	return lo.Map(t.snapshot(), func(m mark, _ int) string { return m.name })
}

// LogTracingInfo writes the trace carried by ctx as a single debug entry.
func LogTracingInfo(ctx context.Context, log *zap.Logger) {
	t := fromContext(ctx)
	if t == nil {
		return
	}
	marks := t.snapshot()
	log.Debug("script trace",
		zap.Strings("events", lo.Map(marks, func(m mark, _ int) string { return m.name })),
		zap.Int64s("elapsed_us", lo.Map(marks, func(m mark, _ int) int64 { return m.at.Microseconds() })),
	)
}
