package portal

import (
	"log/slog"

	"github.com/dmitrymomot/cgmportal/pkg/cache"
	"github.com/dmitrymomot/cgmportal/pkg/logger"
)

// Registry holds the live session states. The least recently used state
// is closed when capacity is exceeded.
type Registry struct {
	states *cache.LRU[string, *State]
	create func(id string) *State
}

// NewRegistry creates a registry of at most capacity states built by create.
func NewRegistry(capacity int, create func(id string) *State, log *slog.Logger) *Registry {
	if log == nil {
		log = logger.Discard()
	}
	return &Registry{
		states: cache.NewLRU(capacity, cache.WithEvictCallback(func(id string, s *State) {
			log.Debug("session state released",
				logger.Component("registry"),
				logger.SessionID(id),
			)
			s.Close()
		})),
		create: create,
	}
}

// Get returns the state of session id, creating it on first use.
func (r *Registry) Get(id string) *State {
	s, _ := r.states.GetOrAdd(id, func() *State { return r.create(id) })
	return s
}

// Lookup returns the state of session id without creating it.
func (r *Registry) Lookup(id string) (*State, bool) {
	return r.states.Peek(id)
}

// Release closes and forgets the state of session id.
func (r *Registry) Release(id string) {
	r.states.Remove(id)
}

func (r *Registry) Len() int {
	return r.states.Len()
}

// Close releases every state.
func (r *Registry) Close() {
	r.states.Clear()
}
