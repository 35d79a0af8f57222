// Package hub provides the server side of an event stream: client
// connection management, pattern-based broadcasting, and an HTTP
// handler that speaks the wire format the client package consumes.
//
// # Architecture
//
//   - Hub: central router managing subscriber registration and fan-out
//   - Broadcaster: the abstraction handlers depend on
//   - ServeSSE: net/http handler streaming events to one subscriber
//
// # Usage
//
//	h := hub.New()
//	go h.Run()
//	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeSSE(h, w, r, hub.WithSubscriberID("ticker:"+userID))
//	})
//	h.Broadcast("ticker:*", sse.Event{Name: "tick", Data: "42"})
package hub
