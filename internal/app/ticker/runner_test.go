package ticker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idleodyssey/internal/domain/idle"
)

type tickSession struct {
	engine *idle.Engine
	err    error
	calls  int
}

func (s *tickSession) Do(_ context.Context, fn func(e *idle.Engine) error) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	return fn(s.engine)
}

type tickMetrics struct{ completions int64 }

func (m *tickMetrics) RecordAccepted(string)         {}
func (m *tickMetrics) RecordRejected(string, string) {}
func (m *tickMetrics) RecordFailure()                {}
func (m *tickMetrics) RecordTick(n int64)            { m.completions += n }

func TestClampFrame(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, ClampFrame(5*time.Second, 250*time.Millisecond))
	assert.Equal(t, 16*time.Millisecond, ClampFrame(16*time.Millisecond, 250*time.Millisecond))
	assert.Equal(t, time.Duration(0), ClampFrame(-time.Second, 250*time.Millisecond))
	assert.Equal(t, 5*time.Second, ClampFrame(5*time.Second, 0))
}

func TestStepTicksEngineAndRecords(t *testing.T) {
	clock := idle.NewManualClock(time.Unix(0, 0))
	e, err := idle.New(idle.DefaultCatalog(), idle.WithClock(clock))
	require.NoError(t, err)
	require.True(t, e.SetActiveNode("tree.oak"))

	s := &tickSession{engine: e}
	m := &tickMetrics{}
	r := Runner{Session: s, Metrics: m}

	clock.Advance(6 * time.Second)
	report, err := r.Step(context.Background(), 6*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.Completions)
	assert.Equal(t, int64(2), m.completions)
	assert.Equal(t, 2.0, e.Resource("oak"))
}

func TestStepPropagatesSessionError(t *testing.T) {
	wantErr := errors.New("locked out")
	r := Runner{Session: &tickSession{err: wantErr}}
	_, err := r.Step(context.Background(), time.Millisecond)
	assert.ErrorIs(t, err, wantErr)
}

func TestRunStopsOnCancel(t *testing.T) {
	e, err := idle.New(idle.DefaultCatalog())
	require.NoError(t, err)
	s := &tickSession{engine: e}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Runner{Session: s, Interval: time.Millisecond}.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
}
