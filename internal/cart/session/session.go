package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"barorder/internal/domain"
	apperrors "barorder/internal/errors"
)

// Session is one customer's browser: the table they scanned and their cart.
type Session struct {
	ID string

	mu    sync.Mutex
	table int
	cart  Cart

	// lastSeen is unix nanoseconds. It is read without mu so that sweeping
	// never waits on a checkout in flight.
	lastSeen atomic.Int64
}

// View is a consistent copy of a session's state.
type View struct {
	ID    string
	Table int
	Items []domain.CartItem
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() View {
	return View{ID: s.ID, Table: s.table, Items: s.cart.Items()}
}

func (s *Session) SetTable(number int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = number
	return s.view()
}

// Update applies fn to the cart under the session lock.
func (s *Session) Update(fn func(c *Cart) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.cart); err != nil {
		return View{}, err
	}
	return s.view(), nil
}

// Checkout hands the table and cart to submit and empties the cart only when
// submit succeeds. The session stays locked for the whole call, so a session
// cannot submit the same cart twice.
func (s *Session) Checkout(submit func(table int, items []domain.CartItem) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := submit(s.table, s.cart.Items()); err != nil {
		return View{}, err
	}
	s.cart.Clear()
	return s.view(), nil
}

// Store keeps sessions in memory. Sessions idle for longer than the store's
// TTL are dropped by Sweep.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idleTTL  time.Duration
	now      func() time.Time
}

func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

func (s *Store) Create(table int) *Session {
	sess := &Session{
		ID:    uuid.New().String(),
		table: table,
	}
	sess.lastSeen.Store(s.now().UnixNano())

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get returns the session and marks it as seen.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("session %s not found", id))
	}

	sess.lastSeen.Store(s.now().UnixNano())

	return sess, nil
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops idle sessions and reports how many it removed.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.idleTTL).UnixNano()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Load() < cutoff {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Debug("expired idle sessions", zap.Int("count", n))
			}
		}
	}
}
