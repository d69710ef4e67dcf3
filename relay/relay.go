package relay

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/litewallet/wallet-bridge/errors"
)

// Relay holds the current broadcast channel behind a swappable pointer.
// The lock guards only the pointer swap; delivery runs against a captured
// channel reference, so re-initialization never blocks on in-flight work.
type Relay struct {
	mu     sync.Mutex
	ch     *Channel
	poller *Subscription
	depth  int
	log    *zap.Logger
}

// NewRelay creates an uninitialized relay. The channel is created lazily by
// the first Publish, Subscribe, or PollNext, or explicitly by Initialize.
// A nil logger disables logging.
func NewRelay(depth int, log *zap.Logger) *Relay {
	if depth <= 0 {
		depth = DefaultDepth
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Relay{depth: depth, log: log}
}

// SetDepth changes the per-subscriber buffer depth used for channels created
// from now on. An existing channel keeps its depth until the next Initialize.
// Non-positive values fall back to DefaultDepth.
func (r *Relay) SetDepth(depth int) {
	if depth <= 0 {
		depth = DefaultDepth
	}
	r.mu.Lock()
	r.depth = depth
	r.mu.Unlock()
}

// Initialize replaces the channel with a fresh one, invalidating existing
// subscriptions. Legal at any time: pollers against the old channel drain
// what they have and then observe a retryable channel-closed error.
func (r *Relay) Initialize() {
	r.mu.Lock()
	old := r.ch
	r.ch = NewChannel(r.depth)
	r.poller = r.ch.Subscribe()
	r.mu.Unlock()

	if old != nil {
		r.log.Debug("progress channel replaced")
		old.Close()
	}
}

// current returns the live channel, creating one on first use so an
// out-of-order caller sequence never deadlocks the producer.
func (r *Relay) current() (*Channel, *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ch == nil {
		r.ch = NewChannel(r.depth)
		r.poller = r.ch.Subscribe()
	}
	return r.ch, r.poller
}

// Publish broadcasts ev and returns the number of subscribers reached.
// Broadcasting with zero subscribers is not an error.
func (r *Relay) Publish(ev Event) (int, error) {
	ch, _ := r.current()
	return ch.Publish(ev), nil
}

// Subscribe registers a consumer on the current channel. If a concurrent
// Initialize closes the captured channel before registration lands, the
// freshly installed one is tried again.
func (r *Relay) Subscribe() *Subscription {
	for {
		ch, _ := r.current()
		if s := ch.Subscribe(); s != nil {
			return s
		}
	}
}

// PollNext blocks until the next event reaches the relay's own long-lived
// subscription. The subscription survives between polls, so events published
// while no poll is outstanding are buffered up to the channel depth. Returns
// a retryable channel-closed error when the channel was replaced mid-wait.
func (r *Relay) PollNext(ctx context.Context) (Event, error) {
	_, poller := r.current()
	if poller == nil {
		return Event{}, errors.ChannelClosed("no poll subscription")
	}
	return poller.Next(ctx)
}

// ReportTxProgress is the bridge entry point for raw engine counters fired
// from the transaction builder's note-processing phase. The counters are
// remapped into the 50-90 band of the visible 0-100 scale so the bar
// reflects overall build progress rather than raw note counts, then
// published as a sending event. This is the only place the remap lives.
func (r *Relay) ReportTxProgress(processed, total uint64) error {
	_, err := r.Publish(Event{
		Status:   StatusSending,
		Progress: remapNoteProgress(processed, total),
		Total:    100,
	})
	return err
}

// remapNoteProgress maps (processed, total) linearly onto [50, 90].
// A zero total reports the band's floor.
func remapNoteProgress(processed, total uint64) uint64 {
	if total == 0 {
		return 50
	}
	if processed > total {
		processed = total
	}
	pct := 50 + (processed*40)/total
	if pct > 90 {
		pct = 90
	}
	return pct
}

// defaultRelay is the process-wide relay behind the package-level escape
// hatch used by the foreign runtime's progress hook.
var defaultRelay = NewRelay(DefaultDepth, nil)

// Default returns the process-wide relay.
func Default() *Relay {
	return defaultRelay
}

// Initialize replaces the default relay's channel.
func Initialize() {
	defaultRelay.Initialize()
}

// Publish broadcasts ev on the default relay.
func Publish(ev Event) (int, error) {
	return defaultRelay.Publish(ev)
}

// PollNext waits for the next event on the default relay.
func PollNext(ctx context.Context) (Event, error) {
	return defaultRelay.PollNext(ctx)
}

// ReportTxProgress remaps raw counters and publishes on the default relay.
func ReportTxProgress(processed, total uint64) error {
	return defaultRelay.ReportTxProgress(processed, total)
}
