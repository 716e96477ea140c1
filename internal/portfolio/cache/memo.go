// Package cache memoizes mapped sheet content for the life of the process.
package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoadFunc produces a value. keep reports whether the value may be
// memoized; a value returned with keep=false is served once and the next
// caller loads again.
type LoadFunc[T any] func(ctx context.Context) (v T, keep bool, err error)

// Memo holds at most one value. There is no TTL and no eviction; the only
// way to change a stored value is Replace. Concurrent first callers share a
// single load.
type Memo[T any] struct {
	mu  sync.RWMutex
	val T
	set bool

	group singleflight.Group
}

// Peek returns the memoized value, if any, without loading.
func (m *Memo[T]) Peek() (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.val, m.set
}

// Set stores v unless a value is already present. It reports whether v was
// stored.
func (m *Memo[T]) Set(v T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.set {
		return false
	}
	m.val, m.set = v, true
	return true
}

// Replace stores v whether or not a value is present.
func (m *Memo[T]) Replace(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.val, m.set = v, true
}

// Get returns the memoized value, or runs load. The load runs detached from
// ctx cancellation so a caller that gives up does not abort the fetch for
// everyone sharing it; the result still lands in the memo.
func (m *Memo[T]) Get(ctx context.Context, load LoadFunc[T]) (T, error) {
	if v, ok := m.Peek(); ok {
		return v, nil
	}

	ch := m.group.DoChan("load", func() (any, error) {
		if v, ok := m.Peek(); ok {
			return v, nil
		}
		v, keep, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return v, err
		}
		if keep {
			m.Set(v)
			// a concurrent Set may have won; serve what is stored
			v, _ = m.Peek()
		}
		return v, nil
	})

	select {
	case res := <-ch:
		v, _ := res.Val.(T)
		return v, res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
