// Package resilience provides the reconnection backoff policy used by
// the eventsource client.
//
// Backoff grows the retry delay exponentially on consecutive failures,
// caps it at a configured maximum, and resets to the initial delay on
// success:
//
//	b := resilience.NewBackoff(resilience.BackoffConfig{
//	    InitialDelay: 2 * time.Second,
//	    MaxDelay:     30 * time.Second,
//	})
//	delay := b.Next() // after a disconnect
//	b.Reset()         // after a successful connect
package resilience
