package store

import (
	"sync/atomic"

	"busbooking/internal/domain"
)

// State is an immutable snapshot of one slice. Error "" means no error.
type State[T any] struct {
	Loading bool
	Error   string
	List    domain.Page[T]
	Detail  *T
}

// Slice is the state of one resource, e.g. "locations".
type Slice[T any] struct {
	name  string
	store *Store
	state atomic.Pointer[State[T]]
}

// NewSlice registers a slice reducer on s.
func NewSlice[T any](s *Store, name string) *Slice[T] {
	sl := &Slice[T]{name: name, store: s}
	sl.state.Store(&State[T]{List: domain.Page[T]{Items: []T{}}})
	s.register(sl.reduce)
	return sl
}

func (sl *Slice[T]) Name() string { return sl.name }

// Snapshot returns the current state. Callers must not mutate List.Items
// or *Detail.
func (sl *Slice[T]) Snapshot() State[T] {
	return *sl.state.Load()
}

// ClearError resets the error field.
func (sl *Slice[T]) ClearError() error {
	return sl.store.Dispatch(Action{Slice: sl.name, Op: OpClearError})
}

// reduce only runs on the store goroutine.
func (sl *Slice[T]) reduce(a Action) {
	if a.Slice != sl.name {
		return
	}
	next := *sl.state.Load()

	if a.Op == OpClearError {
		next.Error = ""
		sl.state.Store(&next)
		return
	}

	switch a.Phase {
	case Pending:
		next.Loading = true
		next.Error = ""
	case Fulfilled:
		next.Loading = false
		switch a.Op {
		case OpFetchList:
			if page, ok := a.Payload.(domain.Page[T]); ok {
				next.List = page
			}
		case OpFetchDetail:
			if v, ok := a.Payload.(*T); ok {
				next.Detail = v
			}
		}
	case Rejected:
		next.Loading = false
		next.Error = a.Err
	default:
		return
	}
	sl.state.Store(&next)
}
