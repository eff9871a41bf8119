package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/qent/car-rental-system/internal/api/metrics"
	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
)

// OnboardingStore persists the "has completed onboarding" flag per device,
// durable and independent of auth state.
type OnboardingStore interface {
	Completed(ctx context.Context, deviceID string) (bool, error)
	MarkCompleted(ctx context.Context, deviceID string) error
}

// Manager holds the process-wide session and keeps it in sync with the
// ordered stream of auth events. Role resolution fails soft: a missing or
// unreadable user document never blocks sign-in, it just yields the user role.
type Manager struct {
	users  ports.UserRepository
	logger zerolog.Logger

	nextGen    atomic.Uint64
	mu         sync.RWMutex
	appliedGen uint64
	current    Session
}

func NewManager(users ports.UserRepository, logger zerolog.Logger) *Manager {
	return &Manager{users: users, logger: logger}
}

// Run consumes auth events until ctx is cancelled or the channel closes.
// Intended to be launched once at startup.
func (m *Manager) Run(ctx context.Context, events <-chan AuthEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			m.Apply(ctx, ev)
		}
	}
}

// Apply resolves one auth event and commits the result last-write-wins: the
// generation is taken when the event is received, so a slow role fetch from a
// stale event can never overwrite the state of a newer one.
func (m *Manager) Apply(ctx context.Context, ev AuthEvent) Session {
	gen := m.nextGen.Add(1)
	sess := m.Resolve(ctx, ev.UserID)

	m.mu.Lock()
	if gen > m.appliedGen {
		m.appliedGen = gen
		m.current = sess
	}
	m.mu.Unlock()
	return sess
}

// Resolve derives a session for the given user id without touching the held
// state. Empty id means signed out.
func (m *Manager) Resolve(ctx context.Context, userID string) Session {
	if userID == "" {
		return Session{}
	}

	role := domain.RoleUser
	user, err := m.users.FindByID(ctx, userID)
	switch {
	case err != nil:
		m.logger.Warn().Err(err).Str("user_id", userID).Msg("role lookup failed, defaulting to user")
	case user.Role != "":
		role = user.Role
	}

	metrics.SessionsResolvedTotal.WithLabelValues(string(role)).Inc()
	return Session{IsAuthenticated: true, UserID: userID, Role: role}
}

// Current returns the session for the most recent committed auth event.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Notifier is the single ordered channel auth events are delivered through.
// Subscribers receive the current state immediately, then every change.
type Notifier struct {
	mu   sync.Mutex
	last AuthEvent
	ch   chan AuthEvent
}

const notifierBuffer = 16

func NewNotifier() *Notifier {
	n := &Notifier{ch: make(chan AuthEvent, notifierBuffer)}
	n.ch <- AuthEvent{} // initial signed-out state
	return n
}

// Publish records and delivers an auth-state change. Delivery drops the event
// when the buffer is full rather than blocking the caller; the next change
// re-synchronises the consumer.
func (n *Notifier) Publish(ev AuthEvent) {
	n.mu.Lock()
	n.last = ev
	n.mu.Unlock()

	select {
	case n.ch <- ev:
	default:
	}
}

// Events returns the delivery channel consumed by Manager.Run.
func (n *Notifier) Events() <-chan AuthEvent {
	return n.ch
}
