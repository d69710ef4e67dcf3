package relay

import (
	"context"
	"sync"

	"github.com/litewallet/wallet-bridge/errors"
)

// DefaultDepth is the per-subscriber buffer depth used when none is given.
const DefaultDepth = 16

// Channel is a broadcast channel with bounded per-subscriber history.
// Safe for concurrent publish and subscribe.
type Channel struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	depth  int
	closed bool
}

// NewChannel creates a channel whose subscribers buffer up to depth events.
func NewChannel(depth int) *Channel {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Channel{
		subs:  make(map[*Subscription]struct{}),
		depth: depth,
	}
}

// Subscribe registers a new subscriber. Returns nil if the channel is
// already closed.
func (c *Channel) Subscribe() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	s := &Subscription{
		ch:      make(chan Event, c.depth),
		channel: c,
	}
	c.subs[s] = struct{}{}
	return s
}

// Publish delivers ev to every subscriber and returns the number reached.
// Zero subscribers is a success. A full subscriber buffer drops its oldest
// event to make room; slow consumers lose history, never block the producer.
func (c *Channel) Publish(ev Event) int {
	ev = ev.clamped()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0
	}

	delivered := 0
	for s := range c.subs {
		select {
		case s.ch <- ev:
		default:
			select {
			case <-s.ch:
			default:
			}
			s.ch <- ev
		}
		delivered++
	}
	return delivered
}

// Close invalidates all subscriptions. Subscribers drain buffered events and
// then observe a channel-closed error. Safe to call more than once.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for s := range c.subs {
		close(s.ch)
	}
	c.subs = nil
}

// Subscription is one consumer's view of a Channel.
type Subscription struct {
	ch      chan Event
	channel *Channel
	once    sync.Once
}

// Next blocks until the next event, the subscription is invalidated, or ctx
// is done. A channel-closed error is retryable: resubscribe on a fresh
// channel.
func (s *Subscription) Next(ctx context.Context) (Event, error) {
	select {
	case ev, ok := <-s.ch:
		if !ok {
			return Event{}, errors.ChannelClosed("subscription invalidated")
		}
		return ev, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// Cancel removes the subscription from its channel. Idempotent.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		c := s.channel
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			return
		}
		delete(c.subs, s)
		close(s.ch)
	})
}
