package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"barorder/internal/domain"
)

type OrderLister interface {
	ListActiveOrders(ctx context.Context) ([]domain.Order, error)
}

// Snapshot is one read of the active orders.
type Snapshot struct {
	Orders []domain.Order
	Err    error
}

// Subscription receives snapshots. Only the latest unread snapshot is kept.
type Subscription struct {
	C <-chan Snapshot
	c chan Snapshot
}

// Watcher re-reads the active orders on a fixed interval and on demand, and
// fans each read out to its subscribers. It only reads while someone is
// subscribed, and never has more than one read in flight.
type Watcher struct {
	lister   OrderLister
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	subs    map[*Subscription]struct{}
	refresh chan struct{}
}

func NewWatcher(lister OrderLister, interval time.Duration, logger *zap.Logger) *Watcher {
	return &Watcher{
		lister:   lister,
		interval: interval,
		logger:   logger,
		subs:     make(map[*Subscription]struct{}),
		refresh:  make(chan struct{}, 1),
	}
}

// Subscribe registers a new subscriber and asks for an immediate read so it
// does not wait a full interval for its first snapshot.
func (w *Watcher) Subscribe() *Subscription {
	c := make(chan Snapshot, 1)
	sub := &Subscription{C: c, c: c}

	w.mu.Lock()
	w.subs[sub] = struct{}{}
	w.mu.Unlock()

	w.Refresh()
	return sub
}

func (w *Watcher) Unsubscribe(sub *Subscription) {
	w.mu.Lock()
	delete(w.subs, sub)
	w.mu.Unlock()
}

func (w *Watcher) Subscribers() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}

// Refresh requests a read as soon as possible. Requests made while one is
// already pending are merged.
func (w *Watcher) Refresh() {
	select {
	case w.refresh <- struct{}{}:
	default:
	}
}

// Run drives the poll loop until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	var (
		ticker *time.Ticker
		tick   <-chan time.Time
	)
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.refresh:
		case <-tick:
		}

		if w.Subscribers() == 0 {
			if ticker != nil {
				ticker.Stop()
				ticker, tick = nil, nil
			}
			continue
		}

		if ticker == nil {
			ticker = time.NewTicker(w.interval)
			tick = ticker.C
		} else {
			ticker.Reset(w.interval)
		}

		w.poll(ctx)
	}
}

func (w *Watcher) poll(ctx context.Context) {
	orders, err := w.lister.ListActiveOrders(ctx)
	if err != nil {
		w.logger.Error("failed to refresh active orders", zap.Error(err))
	}
	w.publish(Snapshot{Orders: orders, Err: err})
}

func (w *Watcher) publish(snap Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for sub := range w.subs {
		select {
		case <-sub.c:
		default:
		}
		sub.c <- snap
	}
}
