package sse

import "bytes"

// Line is one classified protocol line produced by the Parser.
//
// A blank line (Blank == true) terminates the current record. Comment
// lines never surface as a Line; the Parser discards them.
type Line struct {
	// Field is the field name (the whole line when it has no colon).
	Field string
	// Value is the field value with a single leading space stripped.
	Value string
	// Blank reports a zero-length line.
	Blank bool
}

// Parser incrementally splits a byte stream into SSE protocol lines.
//
// Feed may be called with arbitrarily fragmented chunks, including
// one-byte deliveries; bytes that do not yet form a complete line are
// retained until the next call. The zero value is ready to use.
type Parser struct {
	buf    []byte
	skipLF bool
}

// Feed consumes one delivery of bytes and invokes emit for every
// complete line it terminates. An empty chunk is a no-op.
//
// A delivery ending in a lone CR terminates its line immediately; if the
// next delivery starts with the matching LF of a split CRLF pair, that
// LF is silently discarded.
func (p *Parser) Feed(chunk []byte, emit func(Line)) {
	if len(chunk) == 0 {
		return
	}

	data := chunk
	if len(p.buf) > 0 {
		data = append(p.buf, chunk...)
	}

	pos := 0
	if p.skipLF {
		if data[pos] == '\n' {
			pos++
		}
		p.skipLF = false
	}

	for pos < len(data) {
		end := pos
		for end < len(data) && data[end] != '\n' && data[end] != '\r' {
			end++
		}
		if end == len(data) {
			// No terminator yet; keep the tail for the next delivery.
			break
		}

		line := data[pos:end]
		if data[end] == '\r' {
			if end+1 < len(data) {
				if data[end+1] == '\n' {
					end++
				}
			} else {
				// CR at the very end of the delivery. The line is complete,
				// but a following LF belongs to this terminator.
				p.skipLF = true
			}
		}
		pos = end + 1

		if ln, ok := classifyLine(line); ok {
			emit(ln)
		}
	}

	p.buf = append(p.buf[:0], data[pos:]...)
}

// Flush emits the buffered partial line as if the stream had terminated
// it, then resets the parser. Call it at end of stream; mid-stream the
// partial buffer must stay put for the next delivery.
func (p *Parser) Flush(emit func(Line)) {
	if len(p.buf) > 0 {
		if ln, ok := classifyLine(p.buf); ok {
			emit(ln)
		}
	}
	p.Reset()
}

// Reset discards any buffered partial line. Call it when the underlying
// connection is torn down.
func (p *Parser) Reset() {
	p.buf = p.buf[:0]
	p.skipLF = false
}

// classifyLine turns a terminated line into a Line. Comment lines
// (leading colon) return ok == false.
func classifyLine(line []byte) (Line, bool) {
	if len(line) == 0 {
		return Line{Blank: true}, true
	}
	if line[0] == ':' {
		return Line{}, false
	}
	idx := bytes.IndexByte(line, ':')
	if idx < 0 {
		return Line{Field: string(line)}, true
	}
	value := line[idx+1:]
	if len(value) > 0 && value[0] == ' ' {
		value = value[1:]
	}
	return Line{Field: string(line[:idx]), Value: string(value)}, true
}
