// Package store holds client-side state. One goroutine applies actions to
// registered reducers, so reducers never race with each other.
package store

import (
	"errors"
	"sync"

	"busbooking/internal/utils"
)

// Phase is the lifecycle stage of an async operation.
type Phase string

const (
	Pending   Phase = "pending"
	Fulfilled Phase = "fulfilled"
	Rejected  Phase = "rejected"
)

// Standard operation names.
const (
	OpFetchList   = "fetchList"
	OpFetchDetail = "fetchDetail"
	OpCreate      = "create"
	OpUpdate      = "update"
	OpDelete      = "delete"
	OpClearError  = "clearError"
)

var ErrClosed = errors.New("store: closed")

// Action targets one slice. Payload is only read for fulfilled fetches.
type Action struct {
	Slice   string
	Op      string
	Phase   Phase
	Payload any
	Err     string
}

// Type renders the action as "slice/op/phase".
func (a Action) Type() string {
	if a.Phase == "" {
		return a.Slice + "/" + a.Op
	}
	return a.Slice + "/" + a.Op + "/" + string(a.Phase)
}

type reducer func(Action)

type dispatch struct {
	action Action
	done   chan struct{}
}

// Store serializes every state change through a single goroutine.
type Store struct {
	actions chan dispatch
	stopCh  chan struct{}
	wg      sync.WaitGroup

	mu          sync.RWMutex
	reducers    []reducer
	subscribers map[int]func(Action)
	nextSub     int
	closeOnce   sync.Once
}

func New() *Store {
	s := &Store{
		actions:     make(chan dispatch),
		stopCh:      make(chan struct{}),
		subscribers: map[int]func(Action){},
	}
	s.wg.Add(1)
	go s.loop()
	return s
}

func (s *Store) loop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.stopCh:
			return
		case d := <-s.actions:
			s.apply(d.action)
			close(d.done)
		}
	}
}

func (s *Store) apply(a Action) {
	s.mu.RLock()
	reducers := append([]reducer(nil), s.reducers...)
	subs := make([]func(Action), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, r := range reducers {
		r(a)
	}
	for _, fn := range subs {
		fn(a)
	}
}

func (s *Store) register(r reducer) {
	s.mu.Lock()
	s.reducers = append(s.reducers, r)
	s.mu.Unlock()
}

// Dispatch returns once every reducer and subscriber has seen the action.
// Subscribers must not call Dispatch themselves.
func (s *Store) Dispatch(a Action) error {
	d := dispatch{action: a, done: make(chan struct{})}
	select {
	case <-s.stopCh:
		return ErrClosed
	case s.actions <- d:
	}
	<-d.done
	return nil
}

// Subscribe registers fn to run after each reduction.
func (s *Store) Subscribe(fn func(Action)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Close stops the dispatch goroutine. Later dispatches return ErrClosed.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		utils.LogEvent("", "store", "close", "dispatch loop stopped")
	})
}
