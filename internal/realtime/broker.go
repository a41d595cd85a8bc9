package realtime

import (
	"sync"
	"time"
)

// Event signals that something under a topic changed. Consumers treat it as
// "re-fetch", never as the change itself.
type Event struct {
	Topic string    `json:"topic"`
	ID    string    `json:"id,omitempty"`
	At    time.Time `json:"at"`
}

const subscriptionBuffer = 1

// Broker fans change events out to subscribers of a topic.
type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		topics: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscription receives events for one topic until Close is called.
type Subscription struct {
	C <-chan Event

	ch     chan Event
	topic  string
	broker *Broker
	once   sync.Once
}

func (b *Broker) Subscribe(topic string) *Subscription {
	ch := make(chan Event, subscriptionBuffer)
	sub := &Subscription{C: ch, ch: ch, topic: topic, broker: b}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[*Subscription]struct{})
	}
	b.topics[topic][sub] = struct{}{}
	return sub
}

// Publish delivers ev to every subscriber of topic without blocking. A
// subscriber that already has a pending event keeps that one: one pending
// notification already means the consumer will re-fetch.
func (b *Broker) Publish(topic string, ev Event) {
	if ev.Topic == "" {
		ev.Topic = topic
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.topics[topic] {
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// Close unsubscribes and closes C. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		b := s.broker
		b.mu.Lock()
		defer b.mu.Unlock()
		if subs, ok := b.topics[s.topic]; ok {
			delete(subs, s)
			if len(subs) == 0 {
				delete(b.topics, s.topic)
			}
		}
		close(s.ch)
	})
}
