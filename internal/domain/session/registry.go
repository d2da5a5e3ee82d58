package session

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/candidateview/pkg/metrics"
)

// Eviction reasons reported to metrics.
const (
	evictCapacity = "capacity"
	evictExpired  = "expired"
	evictDeleted  = "deleted"
)

// Session is a snapshot of one viewer's state.
type Session struct {
	ID       string    `json:"id"`
	State    ViewState `json:"state"`
	Created  time.Time `json:"created"`
	LastSeen time.Time `json:"last_seen"`
}

// Registry tracks live sessions. Sessions are addressed by id and handed to
// callers by value; changes go through Update.
type Registry interface {
	// Create starts a session in the initial view state.
	Create(ctx context.Context) Session

	// Get returns the session and refreshes its last-seen time.
	// Returns ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (Session, error)

	// Update applies fn to the session state atomically. If fn fails the state is left unchanged.
	Update(ctx context.Context, id string, fn func(*ViewState) error) (Session, error)

	// Delete removes the session, reporting whether it existed.
	Delete(ctx context.Context, id string) bool

	// Sweep removes expired sessions and returns how many were removed.
	Sweep(ctx context.Context) int

	Len() int
}

// entry is stored in the creation-ordered list; the front is the newest session.
type entry struct {
	session Session
}

// inMemoryRegistry keeps sessions in a map plus a creation-ordered list so the
// oldest session can be evicted when the registry is full.
type inMemoryRegistry struct {
	mu      sync.Mutex
	byID    map[string]*list.Element
	order   *list.List
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	newID   func() string
}

// NewInMemoryRegistry creates a registry with configuration options.
func NewInMemoryRegistry(opts ...Option) Registry {
	r := &inMemoryRegistry{
		maxSize: 10_000,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(r)
	}
	r.byID = make(map[string]*list.Element)
	r.order = list.New()
	return r
}

func (r *inMemoryRegistry) Create(_ context.Context) Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxSize > 0 {
		for r.order.Len() >= r.maxSize {
			r.removeLocked(r.order.Back(), evictCapacity)
		}
	}

	now := r.now()
	s := Session{ID: r.newID(), Created: now, LastSeen: now}
	r.byID[s.ID] = r.order.PushFront(&entry{session: s})

	metrics.RecordSessionCreated()
	metrics.UpdateSessionsActive(r.order.Len())
	return s
}

func (r *inMemoryRegistry) Get(_ context.Context, id string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.liveLocked(id)
	if err != nil {
		return Session{}, err
	}
	e.session.LastSeen = r.now()
	return e.session, nil
}

func (r *inMemoryRegistry) Update(_ context.Context, id string, fn func(*ViewState) error) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.liveLocked(id)
	if err != nil {
		return Session{}, err
	}
	state := e.session.State
	if err := fn(&state); err != nil {
		return e.session, err
	}
	e.session.State = state
	e.session.LastSeen = r.now()
	return e.session, nil
}

func (r *inMemoryRegistry) Delete(_ context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	el, ok := r.byID[id]
	if !ok {
		return false
	}
	r.removeLocked(el, evictDeleted)
	return true
}

func (r *inMemoryRegistry) Sweep(_ context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ttl <= 0 {
		return 0
	}
	removed := 0
	for el := r.order.Back(); el != nil; {
		prev := el.Prev()
		if r.expiredLocked(el.Value.(*entry)) {
			r.removeLocked(el, evictExpired)
			removed++
		}
		el = prev
	}
	return removed
}

func (r *inMemoryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.Len()
}

// liveLocked returns the entry for id, dropping it first if it has expired.
// Must be called with r.mu held.
func (r *inMemoryRegistry) liveLocked(id string) (*entry, error) {
	el, ok := r.byID[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e := el.Value.(*entry)
	if r.expiredLocked(e) {
		r.removeLocked(el, evictExpired)
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func (r *inMemoryRegistry) expiredLocked(e *entry) bool {
	return r.ttl > 0 && r.now().Sub(e.session.LastSeen) > r.ttl
}

// removeLocked must be called with r.mu held.
func (r *inMemoryRegistry) removeLocked(el *list.Element, reason string) {
	if el == nil {
		return
	}
	e := r.order.Remove(el).(*entry)
	delete(r.byID, e.session.ID)
	metrics.RecordSessionEvicted(reason)
	metrics.UpdateSessionsActive(r.order.Len())
}
