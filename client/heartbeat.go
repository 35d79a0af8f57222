package client

import (
	"sync"
	"time"
)

// heartbeat watches for a silently stalled connection. MarkAlive must
// be called for every received byte chunk; if a full timeout window
// passes without one, the expiry callback fires exactly once and the
// monitor stops itself.
//
// The monitor never touches decoder state. Its only effect is the
// expiry callback, which the client uses to abort the transport, so
// teardown always flows through the single stream-ended path.
type heartbeat struct {
	timeout  time.Duration
	onExpire func()

	mu      sync.Mutex
	last    time.Time
	expired bool
	done    chan struct{}
	stopped bool
}

func newHeartbeat(timeout time.Duration, onExpire func()) *heartbeat {
	return &heartbeat{
		timeout:  timeout,
		onExpire: onExpire,
		done:     make(chan struct{}),
	}
}

// Start arms the monitor. Call only once the connection is established.
func (h *heartbeat) Start() {
	h.mu.Lock()
	h.last = time.Now()
	h.mu.Unlock()
	go h.loop()
}

// MarkAlive records liveness. Called on every received chunk.
func (h *heartbeat) MarkAlive() {
	h.mu.Lock()
	h.last = time.Now()
	h.mu.Unlock()
}

// Stop disarms the monitor. Safe to call multiple times, including
// after expiry.
func (h *heartbeat) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
}

// Expired reports whether the monitor fired.
func (h *heartbeat) Expired() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.expired
}

// loop checks liveness once per timeout window. A tick that still saw
// traffic within the window lets the next tick evaluate; the first tick
// that did not fires expiry and stops the monitor.
func (h *heartbeat) loop() {
	ticker := time.NewTicker(h.timeout)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case now := <-ticker.C:
			h.mu.Lock()
			alive := now.Sub(h.last) < h.timeout
			if !alive {
				h.expired = true
			}
			h.mu.Unlock()

			if !alive {
				h.onExpire()
				h.Stop()
				return
			}
		}
	}
}
