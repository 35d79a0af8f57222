package sse

import (
	"reflect"
	"testing"
)

// feedAll feeds the input in chunks of the given size and collects
// every emitted line.
func feedAll(t *testing.T, input string, chunkSize int) []Line {
	t.Helper()
	var p Parser
	var lines []Line
	data := []byte(input)
	for start := 0; start < len(data); start += chunkSize {
		end := start + chunkSize
		if end > len(data) {
			end = len(data)
		}
		p.Feed(data[start:end], func(ln Line) {
			lines = append(lines, ln)
		})
	}
	return lines
}

func TestParser_LineEndings(t *testing.T) {
	want := []Line{
		{Field: "data", Value: "a"},
		{Field: "data", Value: "b"},
		{Blank: true},
	}

	tests := []struct {
		name  string
		input string
	}{
		{"lf", "data: a\ndata: b\n\n"},
		{"cr", "data: a\rdata: b\r\r"},
		{"crlf", "data: a\r\ndata: b\r\n\r\n"},
		{"mixed", "data: a\rdata: b\r\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feedAll(t, tt.input, len(tt.input))
			if !reflect.DeepEqual(got, want) {
				t.Errorf("lines = %+v, want %+v", got, want)
			}
		})
	}
}

func TestParser_ChunkBoundaryInvariance(t *testing.T) {
	input := "event: tick\r\ndata: one\ndata: two\r\r\n: comment\nid: 7\r\n\r\n"
	whole := feedAll(t, input, len(input))

	for size := 1; size <= 5; size++ {
		got := feedAll(t, input, size)
		if !reflect.DeepEqual(got, whole) {
			t.Errorf("chunk size %d: lines = %+v, want %+v", size, got, whole)
		}
	}
}

func TestParser_SplitCRLF(t *testing.T) {
	var p Parser
	var lines []Line
	emit := func(ln Line) { lines = append(lines, ln) }

	p.Feed([]byte("data: x\r"), emit)
	if len(lines) != 1 || lines[0].Value != "x" {
		t.Fatalf("CR alone should terminate the line, got %+v", lines)
	}

	// The LF of the split CRLF pair must not produce a blank line.
	p.Feed([]byte("\ndata: y\n"), emit)
	want := []Line{{Field: "data", Value: "x"}, {Field: "data", Value: "y"}}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %+v, want %+v", lines, want)
	}
}

func TestParser_LoneCRIsTerminator(t *testing.T) {
	var p Parser
	var lines []Line
	emit := func(ln Line) { lines = append(lines, ln) }

	p.Feed([]byte("data: x\r"), emit)
	// Next chunk does not start with LF: the CR was a bare terminator.
	p.Feed([]byte("data: y\n"), emit)

	want := []Line{{Field: "data", Value: "x"}, {Field: "data", Value: "y"}}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %+v, want %+v", lines, want)
	}
}

func TestParser_FieldClassification(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Line
	}{
		{"comment discarded", ": ping\n", nil},
		{"colon splits on first", "data: a:b\n", []Line{{Field: "data", Value: "a:b"}}},
		{"single leading space stripped", "data:  two spaces\n", []Line{{Field: "data", Value: " two spaces"}}},
		{"no space after colon", "data:tight\n", []Line{{Field: "data", Value: "tight"}}},
		{"no colon means empty value", "data\n", []Line{{Field: "data"}}},
		{"blank line", "\n", []Line{{Blank: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feedAll(t, tt.input, len(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("lines = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParser_EmptyChunkIsNoOp(t *testing.T) {
	var p Parser
	p.Feed([]byte("data: par"), func(Line) {
		t.Fatal("no line should be emitted for a partial delivery")
	})
	p.Feed(nil, func(Line) {
		t.Fatal("no line should be emitted for an empty delivery")
	})

	var got []Line
	p.Feed([]byte("tial\n"), func(ln Line) { got = append(got, ln) })
	want := []Line{{Field: "data", Value: "partial"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %+v, want %+v", got, want)
	}
}

func TestParser_Reset(t *testing.T) {
	var p Parser
	p.Feed([]byte("data: stale"), func(Line) {})
	p.Reset()

	var got []Line
	p.Feed([]byte("data: fresh\n"), func(ln Line) { got = append(got, ln) })
	want := []Line{{Field: "data", Value: "fresh"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines after reset = %+v, want %+v", got, want)
	}
}
