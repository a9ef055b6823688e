package events

import "testing"

func TestBusFanOut(t *testing.T) {
	b := NewBus()
	ch1, unsub1 := b.Subscribe(EventSnapshot, 1)
	ch2, unsub2 := b.Subscribe(EventSnapshot, 1)
	defer unsub1()
	defer unsub2()

	b.Publish(EventSnapshot, "tick")

	for i, ch := range []<-chan any{ch1, ch2} {
		select {
		case got := <-ch:
			if got != "tick" {
				t.Fatalf("subscriber %d got %v", i, got)
			}
		default:
			t.Fatalf("subscriber %d received nothing", i)
		}
	}
}

func TestBusDropsWhenSubscriberFull(t *testing.T) {
	b := NewBus()
	ch, unsub := b.Subscribe(EventTradeClosed, 1)
	defer unsub()

	b.Publish(EventTradeClosed, 1)
	b.Publish(EventTradeClosed, 2) // buffer full, must not block

	if got := <-ch; got != 1 {
		t.Fatalf("got %v, want first payload", got)
	}
	select {
	case got := <-ch:
		t.Fatalf("unexpected second payload %v", got)
	default:
	}
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	b := NewBus()
	ch, unsub := b.Subscribe(EventRiskAlert, 1)
	unsub()

	if _, ok := <-ch; ok {
		t.Fatal("channel still open after unsubscribe")
	}

	// Publishing to a topic with no subscribers is a no-op.
	b.Publish(EventRiskAlert, "alert")
}
