// Package cache provides a generic, thread-safe LRU cache for values that
// own resources.
//
// The portal keeps one live state object per browser session. Those objects
// hold timers and open event streams, so the cache is bounded and runs an
// eviction callback that releases them:
//
//	states := cache.NewLRU[string, *State](1000,
//		cache.WithEvictCallback(func(_ string, s *State) { s.Close() }),
//	)
//
//	s, created := states.GetOrAdd(sessionID, func() *State { return NewState(sessionID) })
//
// Eviction callbacks run after the cache lock is released, so they may call
// back into the cache. They fire for capacity evictions, Remove and Clear,
// but not when Add replaces a value under the same key.
package cache
