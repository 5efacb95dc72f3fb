package pubsub

import "testing"

func TestBus_DeliversToMatchingSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	sim := bus.Subscribe(TopicSimulationCompleted)
	defer sim.Close()
	msgs := bus.Subscribe(TopicMessagesUpdated)
	defer msgs.Close()
	all := bus.Subscribe()
	defer all.Close()

	bus.Publish(TopicSimulationCompleted)

	select {
	case got := <-sim.C():
		if got != TopicSimulationCompleted {
			t.Fatalf("unexpected topic %s", got)
		}
	default:
		t.Fatal("simulation subscriber got nothing")
	}

	select {
	case got := <-msgs.C():
		t.Fatalf("messages subscriber got %s", got)
	default:
	}

	select {
	case <-all.C():
	default:
		t.Fatal("wildcard subscriber got nothing")
	}
}

func TestBus_PublishNeverBlocks(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	sub := bus.Subscribe(TopicSimulationCompleted)
	defer sub.Close()

	// Nobody drains; repeated publishes coalesce into one pending signal.
	for i := 0; i < 10; i++ {
		bus.Publish(TopicSimulationCompleted)
	}

	count := 0
	for {
		select {
		case <-sub.C():
			count++
			continue
		default:
		}
		break
	}
	if count != 1 {
		t.Fatalf("expected one coalesced signal, got %d", count)
	}
}

func TestBus_ClosedSubscriptionStopsDelivery(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	sub := bus.Subscribe(TopicMessagesUpdated)
	sub.Close()
	sub.Close() // double close is safe

	bus.Publish(TopicMessagesUpdated)

	if _, ok := <-sub.C(); ok {
		t.Fatal("closed subscription must not receive")
	}
}
