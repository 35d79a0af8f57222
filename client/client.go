package client

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/eventsource/errors"
	"github.com/kbukum/eventsource/logger"
	"github.com/kbukum/eventsource/resilience"
	"github.com/kbukum/eventsource/sse"
)

// ReadyState is the connection state of a Client.
type ReadyState int32

const (
	// StateDisconnected means no transport request is in flight.
	StateDisconnected ReadyState = iota
	// StateConnecting means a transport request has been opened but the
	// stream is not established yet.
	StateConnecting
	// StateConnected means the stream is established and delivering bytes.
	StateConnected
)

// String returns the state name.
func (s ReadyState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// EventHandler receives decoded events for a subscribed event name.
type EventHandler func(sse.Event)

// Client is a reconnecting SSE subscription.
//
// A Client cycles Disconnected -> Connecting -> Connected ->
// Disconnected until closed. At most one transport request is in flight
// at any time; lifecycle callbacks and event handlers run on the single
// stream goroutine, so delivery order matches arrival order.
type Client struct {
	config    Config
	transport Transport
	log       *logger.Logger
	backoff   *resilience.Backoff
	metrics   *metrics

	mu          sync.Mutex
	state       ReadyState
	lastEventID string
	running     bool
	cancel      context.CancelFunc
	done        chan struct{}

	handlerMu sync.RWMutex
	handlers  map[string][]EventHandler
}

// Option customizes a Client beyond its Config.
type Option func(*Client)

// WithTransport replaces the default net/http transport.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithLogger replaces the default component logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a new SSE client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:   cfg,
		log:      logger.WithComponent(cfg.Name),
		backoff:  resilience.NewBackoff(cfg.backoffConfig()),
		metrics:  newMetrics(),
		handlers: make(map[string][]EventHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = newHTTPTransport(cfg)
	}
	return c, nil
}

// Subscribe registers a handler for an event name. Records that never
// set a name arrive as sse.DefaultEventName. Multiple handlers per name
// run in registration order.
func (c *Client) Subscribe(name string, fn EventHandler) {
	c.handlerMu.Lock()
	c.handlers[name] = append(c.handlers[name], fn)
	c.handlerMu.Unlock()
}

// State returns the current connection state.
func (c *Client) State() ReadyState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastEventID returns the most recent event ID received from the
// stream. It survives disconnects and is sent as the Last-Event-ID
// header on every reconnection attempt.
func (c *Client) LastEventID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastEventID
}

// Connect starts the subscription. It is idempotent: calling it while
// the client is already running is a no-op, so redundant reconnect
// triggers never open a second transport request. The subscription runs
// until Close is called or ctx is canceled.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.running = true
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go c.run(runCtx, done)
	return nil
}

// Close aborts any in-flight transport request, stops the reconnect
// loop, and waits for teardown. Safe to call multiple times. The
// last-seen event ID is retained, so a later Connect resumes where the
// stream left off.
func (c *Client) Close() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	cancel()
	<-done

	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
	return nil
}

// run is the reconnect loop: stream until teardown, back off, repeat.
func (c *Client) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		err := c.stream(ctx)

		c.setState(StateDisconnected)
		if err != nil && ctx.Err() == nil {
			c.log.WithError(err).Warn("stream failed")
			c.notifyError(err)
		}
		c.notifyDisconnected()

		if ctx.Err() != nil {
			return
		}

		delay := c.backoff.Next()
		c.metrics.recordReconnect(ctx)
		c.log.Debug("reconnect scheduled", logger.Fields(
			logger.FieldDelay, delay.String(),
			logger.FieldAttempt, c.backoff.Attempt(),
		))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// stream performs one connection attempt and pumps the stream until it
// ends. A nil return means the server closed the stream normally;
// either way the caller schedules a reconnect.
func (c *Client) stream(ctx context.Context) error {
	connID := uuid.NewString()
	log := c.log.WithFields(map[string]interface{}{logger.FieldConnID: connID})

	c.setState(StateConnecting)
	c.notifyConnecting()
	log.Debug("connecting", logger.Fields(logger.FieldURL, c.config.URL))

	attemptCtx, abort := context.WithCancel(ctx)
	defer abort()

	spanCtx, span := c.metrics.startAttempt(attemptCtx, c.config.URL, connID)
	defer span.End()

	st, err := c.transport.Open(spanCtx, c.config.URL, c.buildHeaders(), c.config.Auth)
	if err != nil {
		span.RecordError(err)
		return err
	}
	defer func() { _ = st.Body.Close() }()

	if st.StatusCode != http.StatusOK {
		err := errors.BadStatus(st.StatusCode)
		span.RecordError(err)
		return err
	}
	if !strings.Contains(st.ContentType, "text/event-stream") {
		err := errors.BadContentType(st.ContentType)
		span.RecordError(err)
		return err
	}

	c.backoff.Reset()
	c.setState(StateConnected)
	c.metrics.recordConnect(ctx)
	c.notifyConnected()
	log.Info("connected", logger.Fields(logger.FieldURL, c.config.URL))

	hb := newHeartbeat(c.config.HeartbeatTimeout, func() {
		log.Warn("no bytes within heartbeat window, aborting transport")
		c.metrics.recordHeartbeatTimeout(ctx)
		abort()
	})
	hb.Start()
	defer hb.Stop()

	asm := sse.NewAssembler(func(ev sse.Event) {
		c.dispatch(ctx, ev)
	})
	asm.OnID = func(id string) {
		c.setLastEventID(id)
	}
	defer asm.Reset()

	buf := make([]byte, c.config.ReadBufferSize)
	for {
		n, err := st.Body.Read(buf)
		if n > 0 {
			hb.MarkAlive()
			asm.Feed(buf[:n])
		}
		if err != nil {
			if hb.Expired() {
				hbErr := errors.HeartbeatTimeout(c.config.HeartbeatTimeout)
				span.RecordError(hbErr)
				return hbErr
			}
			if err == io.EOF {
				log.Debug("stream ended by server")
				return nil
			}
			span.RecordError(err)
			return errors.ConnectionFailed(c.config.URL, err)
		}
	}
}

// buildHeaders assembles the request headers for one attempt.
func (c *Client) buildHeaders() map[string]string {
	headers := map[string]string{
		"Accept":        "text/event-stream",
		"Cache-Control": "no-cache",
	}
	for k, v := range c.config.Headers {
		headers[k] = v
	}
	if id := c.LastEventID(); id != "" {
		headers["Last-Event-ID"] = id
	}
	return headers
}

// dispatch delivers one decoded event to its subscribers.
func (c *Client) dispatch(ctx context.Context, ev sse.Event) {
	c.metrics.recordEvent(ctx, ev.Name)

	c.handlerMu.RLock()
	handlers := make([]EventHandler, len(c.handlers[ev.Name]))
	copy(handlers, c.handlers[ev.Name])
	c.handlerMu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

func (c *Client) setState(s ReadyState) {
	c.mu.Lock()
	old := c.state
	c.state = s
	c.mu.Unlock()
	if old != s {
		c.log.Debug("state changed", logger.Fields(logger.FieldState, s.String()))
	}
}

func (c *Client) setLastEventID(id string) {
	c.mu.Lock()
	c.lastEventID = id
	c.mu.Unlock()
}

func (c *Client) notifyConnecting() {
	if c.config.OnConnecting != nil {
		c.config.OnConnecting()
	}
}

func (c *Client) notifyConnected() {
	if c.config.OnConnected != nil {
		c.config.OnConnected()
	}
}

func (c *Client) notifyDisconnected() {
	if c.config.OnDisconnected != nil {
		c.config.OnDisconnected()
	}
}

func (c *Client) notifyError(err error) {
	if c.config.OnError != nil {
		c.config.OnError(err)
	}
}
