package util

import (
	"errors"
	"testing"
)

func TestEventNotifyOnce(t *testing.T) {
	e := NewEvent()
	if e.HasFired() {
		t.Fatal("event fired before Notify")
	}

	want := errors.New("boom")
	e.Notify(want)
	e.Notify(nil) // later notifications are ignored

	if !e.HasFired() {
		t.Fatal("event not fired after Notify")
	}
	if got := e.Wait(); got != want {
		t.Fatalf("Wait() = %v, want %v", got, want)
	}
}

func TestEventDoneSelectable(t *testing.T) {
	e := NewEvent()
	select {
	case <-e.Done():
		t.Fatal("Done closed before Notify")
	default:
	}

	go e.Notify(nil)
	<-e.Done()
	if err := e.Wait(); err != nil {
		t.Fatalf("Wait() = %v, want nil", err)
	}
}
