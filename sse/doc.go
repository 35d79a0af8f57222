// Package sse implements the Server-Sent Events wire format
// (text/event-stream).
//
// The package is built around an incremental, chunk-boundary-agnostic
// pipeline:
//
//   - Parser: splits raw byte deliveries into protocol lines, tolerating
//     LF, CR, and CRLF line endings even when a CRLF pair is split across
//     two deliveries.
//   - Assembler: accumulates the data/event/id fields of one record and
//     materializes an Event at each blank line.
//   - Reader: a pull-style convenience wrapper over an io.ReadCloser
//     (Next returns one Event at a time).
//
// Encoding helpers (WriteEvent, Comment) produce wire-format output for
// the server side; see the hub package for a broadcast hub built on them.
package sse
