// Package events is the in-process broadcast channel that keeps independently owned
// views consistent after a mutation made elsewhere.
package events

import (
	"context"
	"sync"
	"sync/atomic"

	"querry/models"
)

// DefaultCapacity is the per-subscriber buffer used when New is given a non-positive size.
const DefaultCapacity = 256

// Bus fans every published Event out to all current subscribers. Publish never blocks:
// a subscriber whose buffer is full loses its oldest queued event.
type Bus struct {
	mu       sync.Mutex
	capacity int
	subs     map[*Subscription]struct{}
	closed   bool
}

func New(capacity int) *Bus {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bus{
		capacity: capacity,
		subs:     make(map[*Subscription]struct{}),
	}
}

// Subscription receives the events published after it was created, in publish order.
type Subscription struct {
	bus     *Bus
	ch      chan Event
	dropped atomic.Uint64
	closed  bool // guarded by bus.mu
}

// Subscribe registers a new subscriber. Subscribing to a closed bus yields a subscription
// that is already closed.
func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscription{bus: b, ch: make(chan Event, b.capacity)}
	if b.closed {
		sub.closed = true
		close(sub.ch)
		return sub
	}
	b.subs[sub] = struct{}{}
	return sub
}

// Publish delivers ev to every subscriber without blocking. It returns
// models.ErrChannelClosed once the bus has been closed.
func (b *Bus) Publish(ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return models.ErrChannelClosed
	}
	for sub := range b.subs {
		sub.deliver(ev)
	}
	return nil
}

// deliver runs with bus.mu held, so this is the only sender and the loop ends once the
// receiver side has freed a slot or we freed one ourselves.
func (s *Subscription) deliver(ev Event) {
	for {
		select {
		case s.ch <- ev:
			return
		default:
		}
		select {
		case <-s.ch:
			s.dropped.Add(1)
		default:
		}
	}
}

// Subscribers returns the number of open subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close shuts the bus down and closes every subscriber channel. Calling it again is a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		sub.closed = true
		close(sub.ch)
	}
	b.subs = nil
}

// C exposes the receive side for use in select statements. It is closed when the
// subscription or the bus is closed.
func (s *Subscription) C() <-chan Event { return s.ch }

// Next waits for the next event. It returns models.ErrChannelClosed once the
// subscription is closed and drained, or ctx.Err() if ctx ends first.
func (s *Subscription) Next(ctx context.Context) (Event, error) {
	select {
	case ev, ok := <-s.ch:
		if !ok {
			return Event{}, models.ErrChannelClosed
		}
		return ev, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// Dropped reports how many events were discarded because this subscriber fell behind.
func (s *Subscription) Dropped() uint64 { return s.dropped.Load() }

// Close unsubscribes. It is safe to call more than once and after the bus is closed.
func (s *Subscription) Close() {
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	delete(b.subs, s)
	close(s.ch)
}
