package watch

import (
	"sync"

	"poolwatch/logger"
	"poolwatch/types"
)

// EventBus fans events out to every live subscription. Publishing never
// blocks: a subscription whose buffer is full loses its oldest
// undelivered events instead, so a slow consumer can never stall the
// block and transaction producers.
type EventBus struct {
	mu       sync.Mutex
	capacity int
	subs     map[*Subscription]struct{}
}

// Subscription is one independent receive handle onto the bus. Events
// arrive in publish order; a gap only appears when the subscription
// overflowed, and is counted rather than treated as fatal.
type Subscription struct {
	bus     *EventBus
	ch      chan types.Event
	dropped uint64
}

func NewEventBus(capacity int) *EventBus {
	return &EventBus{
		capacity: capacity,
		subs:     make(map[*Subscription]struct{}),
	}
}

func (b *EventBus) Subscribe() *Subscription {
	s := &Subscription{bus: b, ch: make(chan types.Event, b.capacity)}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Publish delivers ev to every subscription, evicting the oldest buffered
// event of any subscription whose buffer is full. Safe for concurrent
// publishers.
func (b *EventBus) Publish(ev types.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs {
	deliver:
		for {
			select {
			case s.ch <- ev:
				break deliver
			default:
				// Buffer full: drop the oldest event for this
				// subscriber only and retry.
				select {
				case <-s.ch:
					s.dropped++
					logger.WatchLogger.Warn("Subscriber overflow, dropped oldest event", "totalDropped", s.dropped)
				default:
				}
			}
		}
	}
}

func (s *Subscription) Events() <-chan types.Event {
	return s.ch
}

// Dropped reports how many events this subscription has lost to overflow.
func (s *Subscription) Dropped() uint64 {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	return s.dropped
}

// Close detaches the subscription from the bus and closes its channel.
func (s *Subscription) Close() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	if _, ok := s.bus.subs[s]; !ok {
		return
	}
	delete(s.bus.subs, s)
	close(s.ch)
}
