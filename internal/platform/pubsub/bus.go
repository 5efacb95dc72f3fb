package pubsub

import "sync"

// Topic names one broadcast channel. Signals carry no payload beyond
// "something changed".
type Topic string

const (
	// TopicSimulationCompleted fires after any successful mutating
	// server operation (match day, season, transition, lineup save).
	TopicSimulationCompleted Topic = "simulation.completed"
	// TopicMessagesUpdated fires after any message-list mutation.
	TopicMessagesUpdated Topic = "messages.updated"
)

// Bus is an in-process fire-and-forget broadcaster. Publish never
// blocks: a subscriber that has not drained its pending signal gets the
// signals coalesced, which preserves the at-most-once-per-mutation
// contract.
type Bus struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers interest in the given topics (all topics when
// none are named). The caller must Close the subscription when its
// component goes away.
func (b *Bus) Subscribe(topics ...Topic) *Subscription {
	sub := &Subscription{
		bus:    b,
		topics: make(map[Topic]struct{}, len(topics)),
		ch:     make(chan Topic, 1),
	}
	for _, t := range topics {
		sub.topics[t] = struct{}{}
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Publish delivers the topic to every matching subscriber without
// blocking.
func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs {
		if !sub.matches(topic) {
			continue
		}
		select {
		case sub.ch <- topic:
		default:
		}
	}
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
}

// Subscription is one component's handle on the bus. Its lifetime is
// the component's lifetime; Close detaches it and closes C.
type Subscription struct {
	bus    *Bus
	topics map[Topic]struct{}
	ch     chan Topic
	once   sync.Once
}

// C yields broadcast topics as they arrive.
func (s *Subscription) C() <-chan Topic {
	return s.ch
}

// Close detaches the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.remove(s)
		close(s.ch)
	})
}

func (s *Subscription) matches(topic Topic) bool {
	if len(s.topics) == 0 {
		return true
	}
	_, ok := s.topics[topic]
	return ok
}
