package viewmodel

import (
	"context"
	"sync"
)

// Status is the phase of a piece of screen state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "idle"
}

// ItemState is the state of a detail screen. Success is set when the last
// mutation (create, update, register...) went through.
type ItemState[T any] struct {
	Status      Status
	Item        *T
	Error       string
	Success     bool
	FieldErrors map[string]string
}

func (s ItemState[T]) IsLoading() bool {
	return s.Status == StatusLoading
}

// ListState is the state of a list screen.
type ListState[T any] struct {
	Status  Status
	Items   []T
	Error   string
	HasMore bool
}

func (s ListState[T]) IsLoading() bool {
	return s.Status == StatusLoading
}

// Store holds one state value and hands every change to its subscribers.
// Subscribers only ever see the latest value: a slow reader skips
// intermediate states instead of blocking the writer.
type Store[S any] struct {
	mu          sync.Mutex
	state       S
	subscribers map[chan S]struct{}
}

func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{
		state:       initial,
		subscribers: make(map[chan S]struct{}),
	}
}

func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store[S]) Set(state S) {
	s.Update(func(S) S { return state })
}

// Update applies change to the current state and publishes the result.
func (s *Store[S]) Update(change func(S) S) S {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = change(s.state)
	for ch := range s.subscribers {
		offer(ch, s.state)
	}
	return s.state
}

// Subscribe returns a channel receiving the current state and every later one.
// The channel is closed once ctx is done.
func (s *Store[S]) Subscribe(ctx context.Context) <-chan S {
	ch := make(chan S, 1)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	offer(ch, s.state)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subscribers, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}

// offer replaces whatever value is still waiting in ch with v.
func offer[S any](ch chan S, v S) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
