package hub

import (
	"path/filepath"
	"sync"

	"github.com/kbukum/eventsource/logger"
	"github.com/kbukum/eventsource/sse"
)

// Broadcaster publishes events to connected subscribers. Handlers
// should depend on this abstraction rather than the concrete Hub.
type Broadcaster interface {
	// Broadcast sends the event to every subscriber whose ID matches
	// the glob pattern (e.g. "ticker:*" or "ticker:abc123").
	Broadcast(pattern string, ev sse.Event)
}

// Subscriber is one connected event-stream consumer.
type Subscriber struct {
	id          string
	lastEventID string
	metadata    map[string]string
	events      chan sse.Event
}

// SubscriberOption configures a Subscriber.
type SubscriberOption func(*Subscriber)

// WithMetadata attaches a metadata key-value pair to the subscriber.
func WithMetadata(key, value string) SubscriberOption {
	return func(s *Subscriber) {
		s.metadata[key] = value
	}
}

// WithLastEventID records the ID the subscriber resumed from, taken
// from the Last-Event-ID request header.
func WithLastEventID(id string) SubscriberOption {
	return func(s *Subscriber) {
		s.lastEventID = id
	}
}

// NewSubscriber creates a subscriber with a buffered event queue.
func NewSubscriber(id string, opts ...SubscriberOption) *Subscriber {
	s := &Subscriber{
		id:       id,
		metadata: make(map[string]string),
		events:   make(chan sse.Event, 256),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the subscriber's unique identifier.
func (s *Subscriber) ID() string { return s.id }

// LastEventID returns the ID the subscriber resumed from, or "" for a
// fresh connection.
func (s *Subscriber) LastEventID() string { return s.lastEventID }

// Metadata returns all subscriber metadata.
func (s *Subscriber) Metadata() map[string]string { return s.metadata }

// Events returns the channel delivering events to this subscriber.
func (s *Subscriber) Events() <-chan sse.Event { return s.events }

// Send queues an event for the subscriber. Returns false if the queue
// is full and the event was dropped.
func (s *Subscriber) Send(ev sse.Event) bool {
	select {
	case s.events <- ev:
		return true
	default:
		logger.Warn("subscriber queue full, dropping event", logger.Fields(
			logger.FieldClientID, s.id,
			logger.FieldEventName, ev.Name,
		))
		return false
	}
}

// close shuts the event queue. Called from the hub goroutine, or from
// Register when the hub is already stopped; the two paths are mutually
// exclusive per subscriber.
func (s *Subscriber) close() {
	close(s.events)
}

// Hub routes events from publishers to connected subscribers.
type Hub struct {
	subscribers map[string]*Subscriber
	register    chan *Subscriber
	unregister  chan *Subscriber
	broadcast   chan broadcastMsg
	done        chan struct{}
	stopped     bool
	mu          sync.RWMutex
}

type broadcastMsg struct {
	pattern string
	event   sse.Event
}

// Ensure Hub implements Broadcaster.
var _ Broadcaster = (*Hub)(nil)

// New creates a hub. Call Run in a goroutine to start routing.
func New() *Hub {
	return &Hub{
		subscribers: make(map[string]*Subscriber),
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		broadcast:   make(chan broadcastMsg, 256),
		done:        make(chan struct{}),
	}
}

// Run is the hub's routing loop. It blocks until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub.id] = sub
			total := len(h.subscribers)
			h.mu.Unlock()
			logger.Debug("subscriber registered", logger.Fields(
				logger.FieldClientID, sub.id,
				"total_subscribers", total,
			))

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.subscribers[sub.id]; ok {
				delete(h.subscribers, sub.id)
				sub.close()
			}
			total := len(h.subscribers)
			h.mu.Unlock()
			logger.Debug("subscriber unregistered", logger.Fields(
				logger.FieldClientID, sub.id,
				"total_subscribers", total,
			))

		case msg := <-h.broadcast:
			h.fanOut(msg.pattern, msg.event)
		}
	}
}

// Stop shuts the hub down, closing every subscriber queue and causing
// Run to return. Safe to call multiple times.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, sub := range h.subscribers {
		sub.close()
		delete(h.subscribers, id)
	}
}

// Register adds a subscriber to the hub. On a stopped hub the
// subscriber's queue is closed instead, so a handler racing shutdown
// still unblocks.
func (h *Hub) Register(sub *Subscriber) {
	select {
	case h.register <- sub:
	case <-h.done:
		sub.close()
	}
}

// Unregister removes a subscriber and closes its queue. A no-op on a
// stopped hub, where closeAll has already torn every subscriber down.
func (h *Hub) Unregister(sub *Subscriber) {
	select {
	case h.unregister <- sub:
	case <-h.done:
	}
}

// Broadcast queues an event for every subscriber matching the pattern.
// Events broadcast after Stop are dropped.
func (h *Hub) Broadcast(pattern string, ev sse.Event) {
	select {
	case h.broadcast <- broadcastMsg{pattern: pattern, event: ev}:
	case <-h.done:
	}
}

// fanOut delivers one event to matching subscribers. Called from the
// hub goroutine.
func (h *Hub) fanOut(pattern string, ev sse.Event) {
	// Reject a malformed pattern up front so it delivers to no one.
	if _, err := filepath.Match(pattern, ""); err != nil {
		logger.Error("bad broadcast pattern", logger.Fields(
			"pattern", pattern,
			logger.FieldError, err.Error(),
		))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for id, sub := range h.subscribers {
		matched, _ := filepath.Match(pattern, id)
		if matched && sub.Send(ev) {
			delivered++
		}
	}

	logger.Debug("broadcast delivered", logger.Fields(
		"pattern", pattern,
		"delivered", delivered,
		logger.FieldEventName, ev.Name,
	))
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// SubscriberIDs returns the IDs of all connected subscribers.
func (h *Hub) SubscriberIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.subscribers))
	for id := range h.subscribers {
		ids = append(ids, id)
	}
	return ids
}

// Subscriber returns a subscriber by ID, or nil if not connected.
func (h *Hub) Subscriber(id string) *Subscriber {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.subscribers[id]
}
