package weather

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

// Looker performs one lookup and renders it
type Looker interface {
	Lookup(ctx context.Context, query Query) DisplayModel
}

// ViewState is the lifecycle state of a session view
type ViewState string

const (
	ViewIdle    ViewState = "idle"
	ViewPending ViewState = "pending"
	ViewReady   ViewState = "ready"
)

// View is the rendered state of one session. Display holds the latest
// completed result and stays in place while a newer query is pending.
type View struct {
	SessionID string        `json:"sessionId"`
	Seq       uint64        `json:"seq"`
	State     ViewState     `json:"state"`
	City      string        `json:"city,omitempty"`
	Display   *DisplayModel `json:"display,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type session struct {
	view     View
	cancel   context.CancelFunc
	changed  chan struct{}
	lastSeen time.Time
}

// Dispatcher runs lookups off the caller's goroutine, one in flight per
// session. Submitting a new query cancels the previous one and its result
// is discarded.
type Dispatcher struct {
	looker Looker
	logger ports.Logger
	ttl    time.Duration
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	sessions map[string]*session
	closed   bool
}

type DispatcherDependencies struct {
	Looker     Looker
	Logger     ports.Logger
	SessionTTL time.Duration
}

func NewDispatcher(deps DispatcherDependencies) (*Dispatcher, error) {
	if deps.Looker == nil {
		return nil, errors.NewValidationError("looker is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.SessionTTL <= 0 {
		return nil, errors.NewValidationError("session TTL must be positive")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		looker:   deps.Looker,
		logger:   deps.Logger,
		ttl:      deps.SessionTTL,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*session),
	}, nil
}

// Open creates an idle session and returns its id
func (d *Dispatcher) Open() (View, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return View{}, errors.NewCanceledError("dispatcher is closed", nil)
	}

	now := d.now()
	d.pruneLocked(now)

	id := uuid.NewString()
	s := &session{
		view: View{
			SessionID: id,
			State:     ViewIdle,
			UpdatedAt: now,
		},
		changed:  make(chan struct{}),
		lastSeen: now,
	}
	d.sessions[id] = s

	d.logger.Debug("Lookup session opened", ports.F("session_id", id))
	return s.view, nil
}

// Submit starts a lookup for the session and returns its sequence number.
// Any lookup still in flight for the session is canceled.
func (d *Dispatcher) Submit(sessionID string, query Query) (uint64, error) {
	if err := query.IsValid(); err != nil {
		return 0, errors.NewValidationError("invalid weather query: " + err.Error())
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, errors.NewCanceledError("dispatcher is closed", nil)
	}

	s, ok := d.sessions[sessionID]
	if !ok {
		return 0, errors.NewNotFoundError("session not found", nil)
	}

	now := d.now()
	s.lastSeen = now
	d.pruneLocked(now)

	if s.cancel != nil {
		d.logger.Debug("Superseding in-flight lookup",
			ports.F("session_id", sessionID),
			ports.F("seq", s.view.Seq))
		s.cancel()
	}

	s.view.Seq++
	s.view.State = ViewPending
	s.view.City = query.City
	s.view.UpdatedAt = now
	seq := s.view.Seq

	ctx, cancel := context.WithCancel(d.ctx)
	s.cancel = cancel
	d.notifyLocked(s)

	d.wg.Add(1)
	go d.run(ctx, cancel, sessionID, seq, query)

	return seq, nil
}

func (d *Dispatcher) run(ctx context.Context, cancel context.CancelFunc, sessionID string, seq uint64, query Query) {
	defer d.wg.Done()
	defer cancel()

	model := d.looker.Lookup(ctx, query)
	d.deliver(sessionID, seq, model)
}

// deliver publishes a finished lookup if it is still the session's latest
func (d *Dispatcher) deliver(sessionID string, seq uint64, model DisplayModel) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.sessions[sessionID]
	if !ok || s.view.Seq != seq {
		d.logger.Debug("Dropping superseded lookup result",
			ports.F("session_id", sessionID),
			ports.F("seq", seq))
		return
	}

	s.view.State = ViewReady
	s.view.Display = &model
	s.view.UpdatedAt = d.now()
	s.cancel = nil
	d.notifyLocked(s)
}

// View returns the current view of the session
func (d *Dispatcher) View(sessionID string) (View, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.sessions[sessionID]
	if !ok {
		return View{}, errors.NewNotFoundError("session not found", nil)
	}
	s.lastSeen = d.now()
	return s.view, nil
}

// Await blocks until lookup seq has been rendered or superseded, then returns the view
func (d *Dispatcher) Await(ctx context.Context, sessionID string, seq uint64) (View, error) {
	for {
		d.mu.Lock()
		s, ok := d.sessions[sessionID]
		if !ok {
			d.mu.Unlock()
			return View{}, errors.NewNotFoundError("session not found", nil)
		}
		s.lastSeen = d.now()
		if s.view.Seq != seq || s.view.State != ViewPending {
			view := s.view
			d.mu.Unlock()
			return view, nil
		}
		changed := s.changed
		d.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return View{}, errors.NewCanceledError("wait for lookup canceled", ctx.Err())
		}
	}
}

// Forget cancels any in-flight lookup of the session and removes it
func (d *Dispatcher) Forget(sessionID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.sessions[sessionID]
	if !ok {
		return errors.NewNotFoundError("session not found", nil)
	}
	d.removeLocked(sessionID, s)
	return nil
}

// Sessions returns the number of open sessions
func (d *Dispatcher) Sessions() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

// Close cancels all in-flight lookups and waits for them to return
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}

// pruneLocked removes idle sessions not seen within the TTL. Caller holds d.mu.
func (d *Dispatcher) pruneLocked(now time.Time) {
	for id, s := range d.sessions {
		if s.cancel == nil && now.Sub(s.lastSeen) > d.ttl {
			d.removeLocked(id, s)
			d.logger.Debug("Lookup session expired", ports.F("session_id", id))
		}
	}
}

func (d *Dispatcher) removeLocked(id string, s *session) {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	delete(d.sessions, id)
	d.notifyLocked(s)
}

// notifyLocked wakes every Await on the session. Caller holds d.mu.
func (d *Dispatcher) notifyLocked(s *session) {
	close(s.changed)
	s.changed = make(chan struct{})
}
