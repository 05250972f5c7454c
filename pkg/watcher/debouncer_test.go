package watcher

import (
	"context"
	"testing"
	"time"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	input := make(chan ChangeEvent, 10)
	d := NewDebouncer(input, 20*time.Millisecond, 500*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// A burst of saves within the quiet period
	for i := 0; i < 5; i++ {
		input <- ChangeEvent{Path: "forms.json", Timestamp: time.Now()}
	}

	select {
	case <-d.Events():
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for debounced event")
	}

	// The burst must collapse into a single output event
	select {
	case <-d.Events():
		t.Error("Expected burst to coalesce into one event, got a second one")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_FlushesOnContextCancel(t *testing.T) {
	input := make(chan ChangeEvent, 1)
	d := NewDebouncer(input, time.Minute, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	input <- ChangeEvent{Path: "forms.json", Timestamp: time.Now()}
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case _, ok := <-d.Events():
		if !ok {
			t.Error("Expected pending event before channel close")
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for flush on cancel")
	}
}
