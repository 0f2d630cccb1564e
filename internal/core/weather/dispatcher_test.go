package weather

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherview.app/pkg/errors"
)

// gatedLooker blocks each lookup until released or canceled
type gatedLooker struct {
	mu       sync.Mutex
	started  chan string
	release  map[string]chan struct{}
	canceled []string
}

func newGatedLooker() *gatedLooker {
	return &gatedLooker{
		started: make(chan string, 16),
		release: make(map[string]chan struct{}),
	}
}

func (g *gatedLooker) gate(city string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.release[city]
	if !ok {
		ch = make(chan struct{})
		g.release[city] = ch
	}
	return ch
}

func (g *gatedLooker) Lookup(ctx context.Context, query Query) DisplayModel {
	gate := g.gate(query.City)
	g.started <- query.City

	select {
	case <-gate:
		return DisplayModel{OK: true, Temperature: "20°C", Description: query.City}
	case <-ctx.Done():
		g.mu.Lock()
		g.canceled = append(g.canceled, query.City)
		g.mu.Unlock()
		return DisplayModel{Failure: "canceled"}
	}
}

func (g *gatedLooker) wasCanceled(city string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.canceled {
		if c == city {
			return true
		}
	}
	return false
}

func setupDispatcher(t *testing.T, looker Looker) *Dispatcher {
	d, err := NewDispatcher(DispatcherDependencies{
		Looker:     looker,
		Logger:     setupLoggerMock(t),
		SessionTTL: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d
}

func awaitStarted(t *testing.T, g *gatedLooker, city string) {
	t.Helper()
	select {
	case got := <-g.started:
		require.Equal(t, city, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("lookup for %s never started", city)
	}
}

func TestNewDispatcher_Validation(t *testing.T) {
	_, err := NewDispatcher(DispatcherDependencies{Logger: setupLoggerMock(t), SessionTTL: time.Minute})
	assert.True(t, errors.IsValidationError(err))

	_, err = NewDispatcher(DispatcherDependencies{Looker: newGatedLooker(), SessionTTL: time.Minute})
	assert.True(t, errors.IsValidationError(err))

	_, err = NewDispatcher(DispatcherDependencies{Looker: newGatedLooker(), Logger: setupLoggerMock(t)})
	assert.True(t, errors.IsValidationError(err))
}

func TestDispatcher_SubmitAndAwait(t *testing.T) {
	looker := newGatedLooker()
	d := setupDispatcher(t, looker)

	opened, err := d.Open()
	require.NoError(t, err)
	assert.Equal(t, ViewIdle, opened.State)
	assert.Nil(t, opened.Display)

	seq, err := d.Submit(opened.SessionID, Query{City: "London"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)
	awaitStarted(t, looker, "London")

	pending, err := d.View(opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, ViewPending, pending.State)
	assert.Equal(t, "London", pending.City)

	close(looker.gate("London"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	view, err := d.Await(ctx, opened.SessionID, seq)
	require.NoError(t, err)

	assert.Equal(t, ViewReady, view.State)
	assert.Equal(t, seq, view.Seq)
	require.NotNil(t, view.Display)
	assert.Equal(t, "London", view.Display.Description)
}

func TestDispatcher_NewQuerySupersedesInFlight(t *testing.T) {
	looker := newGatedLooker()
	d := setupDispatcher(t, looker)

	opened, err := d.Open()
	require.NoError(t, err)

	first, err := d.Submit(opened.SessionID, Query{City: "Paris"})
	require.NoError(t, err)
	awaitStarted(t, looker, "Paris")

	second, err := d.Submit(opened.SessionID, Query{City: "Rome"})
	require.NoError(t, err)
	assert.Equal(t, first+1, second)
	awaitStarted(t, looker, "Rome")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	superseded, err := d.Await(ctx, opened.SessionID, first)
	require.NoError(t, err)
	assert.Equal(t, second, superseded.Seq)

	close(looker.gate("Rome"))
	view, err := d.Await(ctx, opened.SessionID, second)
	require.NoError(t, err)

	assert.Equal(t, ViewReady, view.State)
	require.NotNil(t, view.Display)
	assert.Equal(t, "Rome", view.Display.Description)
	assert.Eventually(t, func() bool { return looker.wasCanceled("Paris") }, 2*time.Second, 10*time.Millisecond)
}

func TestDispatcher_UnknownSession(t *testing.T) {
	d := setupDispatcher(t, newGatedLooker())

	_, err := d.Submit("missing", Query{City: "London"})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = d.View("missing")
	assert.True(t, errors.IsNotFoundError(err))

	_, err = d.Await(context.Background(), "missing", 1)
	assert.True(t, errors.IsNotFoundError(err))

	assert.True(t, errors.IsNotFoundError(d.Forget("missing")))
}

func TestDispatcher_SubmitRejectsEmptyCity(t *testing.T) {
	d := setupDispatcher(t, newGatedLooker())
	opened, err := d.Open()
	require.NoError(t, err)

	_, err = d.Submit(opened.SessionID, Query{City: ""})
	assert.True(t, errors.IsValidationError(err))
}

func TestDispatcher_AwaitContextCanceled(t *testing.T) {
	looker := newGatedLooker()
	d := setupDispatcher(t, looker)
	opened, err := d.Open()
	require.NoError(t, err)

	seq, err := d.Submit(opened.SessionID, Query{City: "Lima"})
	require.NoError(t, err)
	awaitStarted(t, looker, "Lima")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = d.Await(ctx, opened.SessionID, seq)

	assert.True(t, errors.IsCanceledError(err))
}

func TestDispatcher_ForgetCancelsInFlight(t *testing.T) {
	looker := newGatedLooker()
	d := setupDispatcher(t, looker)
	opened, err := d.Open()
	require.NoError(t, err)

	_, err = d.Submit(opened.SessionID, Query{City: "Cairo"})
	require.NoError(t, err)
	awaitStarted(t, looker, "Cairo")

	require.NoError(t, d.Forget(opened.SessionID))

	assert.Equal(t, 0, d.Sessions())
	assert.Eventually(t, func() bool { return looker.wasCanceled("Cairo") }, 2*time.Second, 10*time.Millisecond)
}

func TestDispatcher_PrunesIdleSessions(t *testing.T) {
	d := setupDispatcher(t, newGatedLooker())
	clock := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return clock }

	stale, err := d.Open()
	require.NoError(t, err)

	clock = clock.Add(2 * time.Minute)
	fresh, err := d.Open()
	require.NoError(t, err)

	_, err = d.View(stale.SessionID)
	assert.True(t, errors.IsNotFoundError(err))
	_, err = d.View(fresh.SessionID)
	assert.NoError(t, err)
}

func TestDispatcher_Close(t *testing.T) {
	looker := newGatedLooker()
	d, err := NewDispatcher(DispatcherDependencies{Looker: looker, Logger: setupLoggerMock(t), SessionTTL: time.Minute})
	require.NoError(t, err)

	opened, err := d.Open()
	require.NoError(t, err)
	_, err = d.Submit(opened.SessionID, Query{City: "Tokyo"})
	require.NoError(t, err)
	awaitStarted(t, looker, "Tokyo")

	d.Close()

	assert.True(t, looker.wasCanceled("Tokyo"))
	_, err = d.Open()
	assert.True(t, errors.IsCanceledError(err))
	_, err = d.Submit(opened.SessionID, Query{City: "Tokyo"})
	assert.True(t, errors.IsCanceledError(err))
}
