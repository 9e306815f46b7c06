package toast

import (
	"context"
	"sync"
)

// Mode is the way a Patch is applied to the browser document.
type Mode string

const (
	ModeAppend Mode = "append"
	ModeRemove Mode = "remove"
)

// Patch is a single DOM change to forward to the browser.
type Patch struct {
	Selector string
	Mode     Mode
	Elements string
}

// Subscription receives patches published to a Stream.
type Subscription struct {
	ch     chan Patch
	done   chan struct{}
	closed bool
	mu     sync.RWMutex
}

func newSubscription(bufferSize int) *Subscription {
	return &Subscription{
		ch:   make(chan Patch, bufferSize),
		done: make(chan struct{}),
	}
}

// Patches returns the receive channel. It is closed when the subscription ends.
func (s *Subscription) Patches() <-chan Patch {
	return s.ch
}

// Close ends the subscription. It is idempotent.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
		close(s.done)
	}
}

func (s *Subscription) send(p Patch) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- p:
		return true
	default:
		return false
	}
}

// Stream fans patches out to subscribers without blocking the publisher.
// A subscriber whose buffer is full is dropped.
type Stream struct {
	subscribers map[*Subscription]struct{}
	bufferSize  int
	closed      bool
	mu          sync.RWMutex
	wg          sync.WaitGroup
}

// NewStream creates a stream. The buffer size is at least 1.
func NewStream(bufferSize int) *Stream {
	return &Stream{
		subscribers: make(map[*Subscription]struct{}),
		bufferSize:  max(bufferSize, 1),
	}
}

// Subscribe registers a subscriber that lives until ctx is done or it is closed.
// Subscribing to a closed stream returns a closed subscription.
func (s *Stream) Subscribe(ctx context.Context) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := newSubscription(s.bufferSize)
	if s.closed {
		sub.Close()
		return sub
	}
	s.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			select {
			case <-ctx.Done():
				s.unsubscribe(sub)
			case <-sub.done:
			}
		}()
	}

	return sub
}

// Publish delivers p to every subscriber.
func (s *Stream) Publish(p Patch) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return
	}

	for sub := range s.subscribers {
		if !sub.send(p) {
			go s.unsubscribe(sub)
		}
	}
}

// Len returns the number of active subscribers.
func (s *Stream) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// Close closes every subscriber. It is safe to call more than once.
func (s *Stream) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for sub := range s.subscribers {
		sub.Close()
	}
	clear(s.subscribers)
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Stream) unsubscribe(sub *Subscription) {
	s.mu.Lock()
	delete(s.subscribers, sub)
	s.mu.Unlock()

	sub.Close()
}
