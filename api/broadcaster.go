package api

import "sync"

// TableChanged is the event pushed to subscribers after every successful
// or failed mutation: the session it happened on, which operation ran,
// its documented return code, and the resulting table snapshot.
type TableChanged struct {
	SessionID string       `json:"sessionId"`
	Op        string       `json:"op"`
	Code      int          `json:"code"`
	Error     string       `json:"error,omitempty"`
	Counts    CountsDTO    `json:"counts"`
	Addresses AddressesDTO `json:"addresses"`
	Mode      string       `json:"mode"`
}

// Subscription is a client's registration for TableChanged events,
// optionally filtered to one session ID (empty = all sessions).
type Subscription struct {
	SessionID string
	Channel   chan TableChanged
}

// Broadcaster fans out TableChanged events to every matching subscriber
// without letting a slow client block the caller that triggered the
// event.
type Broadcaster struct {
	mu            sync.RWMutex
	subscriptions map[*Subscription]bool
	broadcast     chan TableChanged
	register      chan *Subscription
	unregister    chan *Subscription
	done          chan struct{}
}

// NewBroadcaster creates and starts a broadcaster's fan-out goroutine.
func NewBroadcaster() *Broadcaster {
	b := &Broadcaster{
		subscriptions: make(map[*Subscription]bool),
		broadcast:     make(chan TableChanged, 256),
		register:      make(chan *Subscription),
		unregister:    make(chan *Subscription),
		done:          make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *Broadcaster) run() {
	for {
		select {
		case sub := <-b.register:
			b.mu.Lock()
			b.subscriptions[sub] = true
			b.mu.Unlock()

		case sub := <-b.unregister:
			b.mu.Lock()
			if b.subscriptions[sub] {
				delete(b.subscriptions, sub)
				close(sub.Channel)
			}
			b.mu.Unlock()

		case event := <-b.broadcast:
			b.mu.RLock()
			for sub := range b.subscriptions {
				if sub.SessionID != "" && sub.SessionID != event.SessionID {
					continue
				}
				select {
				case sub.Channel <- event:
				default:
				}
			}
			b.mu.RUnlock()

		case <-b.done:
			b.mu.Lock()
			for sub := range b.subscriptions {
				close(sub.Channel)
			}
			b.subscriptions = make(map[*Subscription]bool)
			b.mu.Unlock()
			return
		}
	}
}

// Subscribe registers a new subscription, optionally filtered by session.
func (b *Broadcaster) Subscribe(sessionID string) *Subscription {
	sub := &Subscription{
		SessionID: sessionID,
		Channel:   make(chan TableChanged, 64),
	}
	b.register <- sub
	return sub
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	b.unregister <- sub
}

// Broadcast publishes an event to every matching subscriber. Drops the
// event rather than blocking if the internal queue is full.
func (b *Broadcaster) Broadcast(event TableChanged) {
	select {
	case b.broadcast <- event:
	default:
	}
}

// Close shuts down the broadcaster and every open subscription.
func (b *Broadcaster) Close() {
	close(b.done)
}

// SubscriptionCount reports the number of active subscriptions.
func (b *Broadcaster) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptions)
}
