package hub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kbukum/eventsource/client"
	"github.com/kbukum/eventsource/logger"
	"github.com/kbukum/eventsource/sse"
)

// Round trip: events broadcast through the hub arrive at a reconnecting
// client over a real HTTP connection.
func TestHubToClientRoundTrip(t *testing.T) {
	h := startHub(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSSE(h, w, r, WithSubscriberID("ticker:client"))
	}))
	defer srv.Close()

	received := make(chan sse.Event, 4)

	c, err := client.New(client.Config{
		URL:                   srv.URL,
		InitialReconnectDelay: 10 * time.Millisecond,
		MaxReconnectDelay:     50 * time.Millisecond,
	}, client.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}
	c.Subscribe("tick", func(ev sse.Event) { received <- ev })

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer c.Close()

	waitCount(t, h, 1)
	h.Broadcast("ticker:*", sse.Event{Name: "tick", ID: "5", Data: "line1\nline2"})

	select {
	case ev := <-received:
		if ev.Name != "tick" || ev.ID != "5" || ev.Data != "line1\nline2" {
			t.Errorf("got event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client did not receive broadcast")
	}

	if got := c.LastEventID(); got != "5" {
		t.Errorf("LastEventID() = %q, want 5", got)
	}
}
