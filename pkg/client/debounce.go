package client

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultDebounceDelay is how long input must be quiet before a search fires.
const DefaultDebounceDelay = 300 * time.Millisecond

// MinQueryLength is the shortest query worth sending to the server.
const MinQueryLength = 2

// SearchFunc performs the actual search once the debounce window closes.
type SearchFunc func(ctx context.Context, query string) (*PairingFeedResponse, error)

// SearchResult is delivered for every search that completes and was not
// superseded by a newer query.
type SearchResult struct {
	Query string
	Feed  *PairingFeedResponse
	Err   error
}

// Debouncer coalesces rapid query changes into one search request. Each new
// query cancels the in-flight request, and stale responses are dropped so the
// newest query always wins.
type Debouncer struct {
	delay  time.Duration
	search SearchFunc
	notify func(SearchResult)

	mu      sync.Mutex
	seq     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	stopped bool
}

// NewDebouncer creates a debouncer. notify is called on the searcher's
// goroutine for every non-superseded completion; it must not block.
func NewDebouncer(search SearchFunc, notify func(SearchResult)) *Debouncer {
	return &Debouncer{
		delay:  DefaultDebounceDelay,
		search: search,
		notify: notify,
	}
}

// SetDelay overrides the debounce window. Zero disables the wait entirely,
// which is mainly useful in tests.
func (d *Debouncer) SetDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delay = delay
}

// Update registers new input. Queries shorter than MinQueryLength cancel any
// pending search and clear the result without hitting the server.
func (d *Debouncer) Update(query string) {
	query = strings.TrimSpace(query)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	if len(query) < MinQueryLength {
		if d.notify != nil {
			d.notify(SearchResult{Query: query})
		}
		return
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(seq, query)
	})
}

// Stop cancels any pending or in-flight search. The debouncer must not be
// used afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Debouncer) fire(seq uint64, query string) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()

	feed, err := d.search(ctx, query)

	d.mu.Lock()
	superseded := d.stopped || seq != d.seq
	d.mu.Unlock()

	// Capture staleness before releasing the context, then release it so a
	// completed request does not pin its cancellable context until the next
	// Update.
	stale := superseded || ctx.Err() != nil
	cancel()
	if stale {
		// A newer query took over while this request was in flight.
		return
	}
	if d.notify != nil {
		d.notify(SearchResult{Query: query, Feed: feed, Err: err})
	}
}
