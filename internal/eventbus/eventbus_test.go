package eventbus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	bus := New()
	defer bus.Close()
	sub := bus.Subscribe()

	bus.Publish(PlanGenerated{Works: 3})
	select {
	case ev := <-sub:
		pg, ok := ev.(PlanGenerated)
		if !ok || pg.Works != 3 {
			t.Fatalf("got %#v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("event not delivered")
	}
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	bus := New()
	defer bus.Close()
	_ = bus.Subscribe() // never drained, buffer is 8

	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			bus.Publish(EditRejected{Rehearsal: i})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("publish blocked on a slow subscriber")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()
	bus.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatalf("channel still open after unsubscribe")
	}
	bus.Close()
}

func TestCloseIsIdempotent(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()
	bus.Close()
	bus.Close()
	if _, ok := <-sub; ok {
		t.Fatalf("channel still open after close")
	}
	// publishing after close must not panic
	bus.Publish(PlanGenerated{})
	if late := bus.Subscribe(); late == nil {
		t.Fatalf("subscribe after close returned nil channel")
	}
}
