package util

import (
	"sync"
)

// Event is a one-shot completion notification carrying an optional error.
// Notify may be called multiple times; only the first call wins.
type Event struct {
	once sync.Once
	err  error
	c    chan struct{}
}

func NewEvent() *Event {
	return &Event{
		c: make(chan struct{}),
	}
}

func (e *Event) Notify(err error) {
	e.once.Do(func() {
		e.err = err
		close(e.c)
	})
}

// Done returns a channel closed once the event fires, for use in select.
func (e *Event) Done() <-chan struct{} {
	return e.c
}

// Wait blocks until the event fires and returns the notified error.
func (e *Event) Wait() error {
	<-e.c
	return e.err
}

func (e *Event) HasFired() bool {
	select {
	case <-e.c:
		return true
	default:
		return false
	}
}
