package sse

// DefaultEventName is the event name delivered when a record never sets
// one with an "event:" line.
const DefaultEventName = "message"

// Recognized field names of the wire format. Any other field name is
// silently ignored for forward compatibility.
const (
	FieldEvent = "event"
	FieldData  = "data"
	FieldID    = "id"
)

// Event is a single decoded server-sent event.
type Event struct {
	// ID is the event ID (from "id:" line). Empty if the record carried none.
	ID string
	// Name is the event name (from "event:" line). Records that never set a
	// name are delivered as DefaultEventName.
	Name string
	// Data is the event payload. Multiple "data:" lines are joined with "\n".
	Data string
}
