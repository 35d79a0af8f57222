package sse

import (
	"reflect"
	"testing"
)

// collect feeds the input one byte at a time and returns emitted events
// and pushed record IDs.
func collect(t *testing.T, input string) ([]Event, []string) {
	t.Helper()
	var events []Event
	var ids []string
	asm := NewAssembler(func(ev Event) { events = append(events, ev) })
	asm.OnID = func(id string) { ids = append(ids, id) }
	for i := 0; i < len(input); i++ {
		asm.Feed([]byte{input[i]})
	}
	return events, ids
}

func TestAssembler_MultiLineData(t *testing.T) {
	events, _ := collect(t, "data:a\ndata:b\n\n")
	want := []Event{{Name: "message", Data: "a\nb"}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v, want %+v", events, want)
	}
}

func TestAssembler_DefaultName(t *testing.T) {
	events, _ := collect(t, "data: hello\n\n")
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Name != DefaultEventName {
		t.Errorf("name = %q, want %q", events[0].Name, DefaultEventName)
	}
}

func TestAssembler_ExplicitEmptyName(t *testing.T) {
	// An explicit empty "event:" line sets the name to the empty string;
	// the "message" default applies only when no "event:" line arrived.
	events, _ := collect(t, "event:\ndata: x\n\n")
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Name != "" {
		t.Errorf("name = %q, want empty", events[0].Name)
	}
}

func TestAssembler_CommentOnlyRecord(t *testing.T) {
	events, ids := collect(t, ":ping\n\n")
	if len(events) != 0 {
		t.Errorf("comment-only record produced events: %+v", events)
	}
	if len(ids) != 0 {
		t.Errorf("comment-only record produced ids: %v", ids)
	}
}

func TestAssembler_EmptyRecordNotEmitted(t *testing.T) {
	events, _ := collect(t, "event: named\n\n")
	if len(events) != 0 {
		t.Errorf("record without data produced events: %+v", events)
	}
}

func TestAssembler_IDWithNULIgnored(t *testing.T) {
	events, ids := collect(t, "id:123\x00\ndata: a\n\nid:456\ndata: b\n\n")
	wantIDs := []string{"456"}
	if !reflect.DeepEqual(ids, wantIDs) {
		t.Errorf("ids = %v, want %v", ids, wantIDs)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].ID != "" {
		t.Errorf("first event ID = %q, want empty", events[0].ID)
	}
	if events[1].ID != "456" {
		t.Errorf("second event ID = %q, want %q", events[1].ID, "456")
	}
}

func TestAssembler_IDPushedWithoutData(t *testing.T) {
	// A record that carries only an ID emits no event but still advances
	// the ID watermark.
	events, ids := collect(t, "id: 42\n\ndata: next\n\n")
	if !reflect.DeepEqual(ids, []string{"42"}) {
		t.Errorf("ids = %v, want [42]", ids)
	}
	if len(events) != 1 || events[0].Data != "next" {
		t.Fatalf("events = %+v, want one event with data %q", events, "next")
	}
	if events[0].ID != "" {
		t.Errorf("ID leaked across records: %q", events[0].ID)
	}
}

func TestAssembler_NameResetBetweenRecords(t *testing.T) {
	events, _ := collect(t, "event: update\ndata: a\n\ndata: b\n\n")
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Name != "update" {
		t.Errorf("first name = %q, want %q", events[0].Name, "update")
	}
	if events[1].Name != DefaultEventName {
		t.Errorf("second name = %q, want %q", events[1].Name, DefaultEventName)
	}
}

func TestAssembler_UnknownFieldsIgnored(t *testing.T) {
	events, _ := collect(t, "retry: 5000\nwhatever: x\ndata: a\n\n")
	want := []Event{{Name: "message", Data: "a"}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v, want %+v", events, want)
	}
}

func TestAssembler_DataWithEmptyValue(t *testing.T) {
	// "data:" with an empty value still accumulates a line break, so the
	// record is non-empty and dispatches with empty payload.
	events, _ := collect(t, "data:\n\n")
	want := []Event{{Name: "message", Data: ""}}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v, want %+v", events, want)
	}
}

func TestAssembler_ChunkBoundaryInvariance(t *testing.T) {
	input := "event: tick\r\nid: 9\r\ndata: one\r\ndata: two\r\n\r\ndata: three\n\n"

	var whole []Event
	wholeAsm := NewAssembler(func(ev Event) { whole = append(whole, ev) })
	wholeAsm.Feed([]byte(input))

	byByte, _ := collect(t, input)
	if !reflect.DeepEqual(byByte, whole) {
		t.Errorf("byte-at-a-time events = %+v, want %+v", byByte, whole)
	}
	if len(whole) != 2 {
		t.Fatalf("got %d events, want 2", len(whole))
	}
	if whole[0].Data != "one\ntwo" || whole[0].ID != "9" || whole[0].Name != "tick" {
		t.Errorf("first event = %+v", whole[0])
	}
}

func TestAssembler_FlushUnterminatedFinalLine(t *testing.T) {
	var events []Event
	asm := NewAssembler(func(ev Event) { events = append(events, ev) })
	asm.Feed([]byte("data: first\n\ndata: last"))
	asm.Flush()

	want := []Event{
		{Name: "message", Data: "first"},
		{Name: "message", Data: "last"},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v, want %+v", events, want)
	}
}
