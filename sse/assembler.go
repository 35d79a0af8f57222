package sse

import "strings"

// Assembler accumulates protocol lines into complete events.
//
// Field effects per record: "event" replaces the pending name (an
// explicit empty value sets the name to the empty string, which is
// distinct from never setting one), "data" appends a line to the pending
// payload, "id" sets the pending ID unless the value contains a NUL
// byte. A blank line flushes the record: OnID fires whenever a pending
// ID is set, OnEvent fires only when the record accumulated data.
type Assembler struct {
	// OnEvent receives each completed event. Nil drops events.
	OnEvent func(Event)
	// OnID receives the record ID at each flush that carries one, whether
	// or not an event was emitted. Nil drops IDs.
	OnID func(string)

	parser  Parser
	name    string
	hasName bool
	data    []byte
	id      string
	hasID   bool
}

// NewAssembler creates an Assembler delivering completed events to onEvent.
func NewAssembler(onEvent func(Event)) *Assembler {
	return &Assembler{OnEvent: onEvent}
}

// Feed consumes one delivery of raw stream bytes.
func (a *Assembler) Feed(chunk []byte) {
	a.parser.Feed(chunk, a.handleLine)
}

// Flush terminates the current record as if the stream had ended
// cleanly: a final line missing its terminator is processed first, then
// the pending record flushes as on a blank line. The wire format only
// completes records on blank lines, so this is meant for callers that
// want a trailing unterminated record at end of stream (see Reader).
func (a *Assembler) Flush() {
	a.parser.Flush(a.handleLine)
	a.flush()
}

// Reset discards all pending record and line state.
func (a *Assembler) Reset() {
	a.parser.Reset()
	a.name, a.hasName = "", false
	a.data = a.data[:0]
	a.id, a.hasID = "", false
}

func (a *Assembler) handleLine(ln Line) {
	if ln.Blank {
		a.flush()
		return
	}
	switch ln.Field {
	case FieldEvent:
		a.name = ln.Value
		a.hasName = true
	case FieldData:
		a.data = append(a.data, ln.Value...)
		a.data = append(a.data, '\n')
	case FieldID:
		if !strings.Contains(ln.Value, "\x00") {
			a.id = ln.Value
			a.hasID = true
		}
	default:
		// Unknown fields (including "retry") are ignored.
	}
}

func (a *Assembler) flush() {
	if a.hasID && a.OnID != nil {
		a.OnID(a.id)
	}
	if len(a.data) > 0 && a.OnEvent != nil {
		name := DefaultEventName
		if a.hasName {
			name = a.name
		}
		a.OnEvent(Event{
			ID:   a.id,
			Name: name,
			Data: string(a.data[:len(a.data)-1]),
		})
	}
	a.name, a.hasName = "", false
	a.data = a.data[:0]
	a.id, a.hasID = "", false
}
