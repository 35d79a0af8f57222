package sse

import (
	"io"
	"strings"
)

// Encode serializes the event to its wire form, including the blank
// line that terminates the record. Multi-line data becomes one "data:"
// line per payload line.
func (e Event) Encode() string {
	var b strings.Builder
	if e.Name != "" && e.Name != DefaultEventName {
		b.WriteString("event: ")
		b.WriteString(e.Name)
		b.WriteByte('\n')
	}
	if e.ID != "" {
		b.WriteString("id: ")
		b.WriteString(e.ID)
		b.WriteByte('\n')
	}
	for _, line := range strings.Split(e.Data, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// WriteEvent writes the event to w in wire form.
func WriteEvent(w io.Writer, e Event) error {
	_, err := io.WriteString(w, e.Encode())
	return err
}

// Comment returns a wire-format comment line. Clients discard comments,
// which makes them suitable as keep-alive traffic.
func Comment(text string) string {
	return ": " + text + "\n"
}
