package realtime

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// PGListener forwards Postgres NOTIFY messages on a channel into the broker,
// so rows written by other processes also reach subscribers.
type PGListener struct {
	dsn     string
	channel string
	broker  *Broker
}

func NewPGListener(dsn, channel string, broker *Broker) *PGListener {
	return &PGListener{dsn: dsn, channel: channel, broker: broker}
}

// Run listens until ctx is done.
func (l *PGListener) Run(ctx context.Context) error {
	listener := pq.NewListener(l.dsn, minReconnectInterval, maxReconnectInterval, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("[realtime] listener event %d: %v", ev, err)
		}
	})
	defer listener.Close()

	if err := listener.Listen(l.channel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", l.channel, err)
	}
	log.Printf("[realtime] listening on postgres channel %s", l.channel)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			l.forward(n)
		case <-ticker.C:
			go func() {
				if err := listener.Ping(); err != nil {
					log.Printf("[realtime] listener ping failed: %v", err)
				}
			}()
		}
	}
}

// forward publishes one event per notification. A nil notification follows a
// reconnect, when changes may have been missed, so it also triggers a re-fetch.
func (l *PGListener) forward(n *pq.Notification) {
	ev := Event{Topic: l.channel}
	if n != nil {
		ev.ID = n.Extra
	}
	l.broker.Publish(l.channel, ev)
}
