package sse

import "io"

const readerBufferSize = 4096

// Reader reads server-sent events from a stream.
type Reader interface {
	// Next returns the next SSE event. Returns io.EOF when the stream ends.
	Next() (*Event, error)
	// Close releases the underlying resources.
	Close() error
}

type reader struct {
	body    io.ReadCloser
	asm     *Assembler
	pending []Event
	buf     []byte
	err     error
}

// NewReader creates an SSE reader from a readable stream.
//
// Unlike the incremental Assembler, Next returns a trailing record that
// the stream ended without terminating, provided it accumulated data.
func NewReader(body io.ReadCloser) Reader {
	r := &reader{
		body: body,
		buf:  make([]byte, readerBufferSize),
	}
	r.asm = NewAssembler(func(ev Event) {
		r.pending = append(r.pending, ev)
	})
	return r
}

// Next returns the next SSE event. Returns io.EOF when the stream ends.
func (r *reader) Next() (*Event, error) {
	for {
		if len(r.pending) > 0 {
			ev := r.pending[0]
			r.pending = r.pending[1:]
			return &ev, nil
		}
		if r.err != nil {
			return nil, r.err
		}

		n, err := r.body.Read(r.buf)
		if n > 0 {
			r.asm.Feed(r.buf[:n])
		}
		if err != nil {
			if err == io.EOF {
				// Stream ended — surface a trailing unterminated record.
				r.asm.Flush()
			}
			r.err = err
		}
	}
}

// Close releases the underlying stream.
func (r *reader) Close() error {
	r.asm.Reset()
	return r.body.Close()
}
