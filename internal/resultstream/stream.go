package resultstream

import (
	"sync"

	"github.com/gridsim/meritsim/core/metrics"
)

// Stream fans hourly clearing records out to subscribers as a run
// progresses. Unlike a fire-and-forget bus, delivery blocks: recording
// consumers must see every hour, so a slow subscriber backpressures the
// publisher instead of dropping records.
type Stream struct {
	mu     sync.Mutex
	subs   []chan metrics.HourRecord
	closed bool
}

// New creates an empty Stream.
func New() *Stream { return &Stream{} }

// Publish delivers the record to every subscriber, blocking until each one
// has accepted it. Publishing on a closed stream is a no-op.
func (s *Stream) Publish(rec metrics.HourRecord) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	subs := make([]chan metrics.HourRecord, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, ch := range subs {
		ch <- rec
	}
}

// Subscribe registers a subscriber and returns its channel. The channel is
// closed when the stream closes.
func (s *Stream) Subscribe() <-chan metrics.HourRecord {
	ch := make(chan metrics.HourRecord, 8)
	s.mu.Lock()
	if s.closed {
		close(ch)
	} else {
		s.subs = append(s.subs, ch)
	}
	s.mu.Unlock()
	return ch
}

// Close closes all subscriber channels. Publishers must not call Publish
// concurrently with Close.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}
