package hub

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/eventsource/logger"
	"github.com/kbukum/eventsource/sse"
)

const defaultKeepAliveInterval = 30 * time.Second

// ServeOption configures ServeSSE.
type ServeOption func(*serveOptions)

type serveOptions struct {
	subscriberID string
	keepAlive    time.Duration
	subOpts      []SubscriberOption
}

// WithSubscriberID sets the subscriber's hub ID. Broadcast patterns
// match against it. Defaults to a random UUID.
func WithSubscriberID(id string) ServeOption {
	return func(o *serveOptions) { o.subscriberID = id }
}

// WithKeepAliveInterval sets the keep-alive comment interval.
// Keep it below intermediary idle timeouts (typically 60s).
func WithKeepAliveInterval(d time.Duration) ServeOption {
	return func(o *serveOptions) { o.keepAlive = d }
}

// WithSubscriberOptions forwards options to the created Subscriber.
func WithSubscriberOptions(opts ...SubscriberOption) ServeOption {
	return func(o *serveOptions) { o.subOpts = append(o.subOpts, opts...) }
}

// ServeSSE streams hub events to one HTTP client until it disconnects.
// It registers a subscriber, replays nothing on its own (inspect
// Subscriber.LastEventID via the hub to replay missed events), and
// sends periodic keep-alive comments so intermediaries keep the
// connection open.
func ServeSSE(h *Hub, w http.ResponseWriter, r *http.Request, opts ...ServeOption) {
	o := serveOptions{
		subscriberID: uuid.NewString(),
		keepAlive:    defaultKeepAliveInterval,
	}
	for _, opt := range opts {
		opt(&o)
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Error("streaming not supported", logger.Fields(
			logger.FieldClientID, o.subscriberID,
		))
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// SSE connections are long-lived and must outlive the server's
	// WriteTimeout setting.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		logger.Warn("could not disable write deadline", logger.Fields(
			logger.FieldClientID, o.subscriberID,
			logger.FieldError, err.Error(),
		))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	subOpts := o.subOpts
	if last := r.Header.Get("Last-Event-ID"); last != "" {
		subOpts = append(subOpts, WithLastEventID(last))
	}
	sub := NewSubscriber(o.subscriberID, subOpts...)
	h.Register(sub)
	defer h.Unregister(sub)

	writeComment(w, fmt.Sprintf("connected %s", sub.ID()))
	flusher.Flush()

	logger.Debug("stream opened", logger.Fields(
		logger.FieldClientID, sub.ID(),
		logger.FieldEventID, sub.LastEventID(),
		"remote_addr", r.RemoteAddr,
	))

	keepAlive := time.NewTicker(o.keepAlive)
	defer keepAlive.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			logger.Debug("stream closed by client", logger.Fields(
				logger.FieldClientID, sub.ID(),
			))
			return

		case ev, ok := <-sub.Events():
			if !ok {
				logger.Debug("stream closed by hub", logger.Fields(
					logger.FieldClientID, sub.ID(),
				))
				return
			}
			if err := sse.WriteEvent(w, ev); err != nil {
				logger.Warn("event write failed", logger.Fields(
					logger.FieldClientID, sub.ID(),
					logger.FieldError, err.Error(),
				))
				return
			}
			flusher.Flush()

		case <-keepAlive.C:
			writeComment(w, fmt.Sprintf("keepalive %d", time.Now().Unix()))
			flusher.Flush()
		}
	}
}

func writeComment(w io.Writer, text string) {
	_, _ = io.WriteString(w, sse.Comment(text))
}
