// Package client implements a reconnecting Server-Sent-Events client.
//
// The Client owns the connection lifecycle: it opens a long-lived HTTP
// GET request, routes the response bytes through the sse package's
// incremental decoder, and keeps the logical subscription alive across
// transport failures with exponential backoff, Last-Event-ID resumption,
// and a heartbeat watchdog for silently stalled connections.
//
// # Usage
//
//	c, err := client.New(client.Config{
//	    URL: "https://api.example.com/events",
//	})
//	if err != nil {
//	    return err
//	}
//	c.Subscribe("ticket", func(ev sse.Event) {
//	    fmt.Println(ev.Data)
//	})
//	if err := c.Connect(ctx); err != nil {
//	    return err
//	}
//	defer c.Close()
//
// Every failure class (network error, bad response, heartbeat timeout)
// routes through the same disconnect-backoff-reconnect path; the
// subscription only ends when the owner calls Close or cancels the
// context passed to Connect.
package client
