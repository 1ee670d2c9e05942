package events

import (
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type testEvent string

const (
	evA testEvent = "a"
	evB testEvent = "b"
)

func TestEmitter_TriggerInOrder(t *testing.T) {
	var e Emitter[testEvent, int]
	var got []string

	e.On(evA, func(p int) { got = append(got, "first") })
	e.On(evA, func(p int) { got = append(got, "second") })
	e.On(evB, func(p int) { got = append(got, "other") })

	e.Trigger(evA, 1)

	want := []string{"first", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("handlers ran %v, want %v", got, want)
	}
}

func TestEmitter_PayloadForwarded(t *testing.T) {
	e := New[testEvent, string]()
	var got string
	e.On(evA, func(p string) { got = p })
	e.Trigger(evA, "hello")
	if got != "hello" {
		t.Fatalf("payload = %q, want hello", got)
	}
}

func TestEmitter_CancelStopsDelivery(t *testing.T) {
	var e Emitter[testEvent, int]
	calls := 0
	sub := e.On(evA, func(int) { calls++ })

	e.Trigger(evA, 0)
	sub.Cancel()
	sub.Cancel()
	e.Trigger(evA, 0)

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if n := e.Count(evA); n != 0 {
		t.Fatalf("Count = %d, want 0", n)
	}
}

func TestEmitter_UnsubscribeDuringTrigger(t *testing.T) {
	var e Emitter[testEvent, int]
	var second Subscription
	calls := 0

	e.On(evA, func(int) { second.Cancel() })
	second = e.On(evA, func(int) { calls++ })

	e.Trigger(evA, 0)
	if calls != 1 {
		t.Fatalf("in-progress dispatch skipped handler; calls = %d", calls)
	}
	e.Trigger(evA, 0)
	if calls != 1 {
		t.Fatalf("cancelled handler still called; calls = %d", calls)
	}
}

func TestEmitter_Once(t *testing.T) {
	var e Emitter[testEvent, int]
	calls := 0
	e.Once(evA, func(int) { calls++ })

	e.Trigger(evA, 0)
	e.Trigger(evA, 0)

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestEmitter_OnceWhileTriggering(t *testing.T) {
	var e Emitter[testEvent, int]
	var calls atomic.Int32

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				e.Trigger(evA, 0)
			}
		}
	}()

	sub := e.Once(evA, func(int) { calls.Add(1) })
	deadline := time.Now().Add(2 * time.Second)
	for e.Count(evA) != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	close(stop)
	wg.Wait()
	sub.Cancel()

	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}

func TestEmitter_OffAndReset(t *testing.T) {
	var e Emitter[testEvent, int]
	e.On(evA, func(int) {})
	e.On(evB, func(int) {})

	e.Off(evA)
	if e.Count(evA) != 0 || e.Count(evB) != 1 {
		t.Fatalf("Off removed wrong handlers: a=%d b=%d", e.Count(evA), e.Count(evB))
	}
	e.Reset()
	if e.Count(evB) != 0 {
		t.Fatalf("Reset left %d handlers", e.Count(evB))
	}
}

func TestSubscription_ZeroValueCancel(t *testing.T) {
	var sub Subscription
	sub.Cancel()
}
