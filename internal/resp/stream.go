package resp

import (
	"bufio"
	"errors"
	"io"
)

const initialReadSize = 4096

// Reader decodes frames from a byte stream.
//
// Bytes that follow a decoded frame stay buffered for the next call, so
// pipelined requests are returned one at a time in arrival order.
type Reader struct {
	rd  io.Reader
	dec *Decoder

	buf   []byte
	start int
	end   int
	err   error

	// next holds a frame decoded by HasFrame and not yet returned.
	next    Frame
	nextLen int
}

// NewReader returns a Reader over r. A nil dec uses the default limits.
func NewReader(r io.Reader, dec *Decoder) *Reader {
	if dec == nil {
		dec = defaultDecoder
	}
	return &Reader{
		rd:  r,
		dec: dec,
		buf: make([]byte, initialReadSize),
	}
}

// ReadFrame returns the next complete frame.
//
// It blocks on the underlying reader while the buffered bytes form an
// incomplete frame. If the stream ends cleanly between frames the error is
// io.EOF; if it ends inside a frame the error is io.ErrUnexpectedEOF.
func (r *Reader) ReadFrame() (Frame, error) {
	for {
		if r.nextLen > 0 {
			f := r.next
			r.consume(r.nextLen)
			return f, nil
		}
		if r.end > r.start {
			f, n, err := r.dec.Decode(r.buf[r.start:r.end])
			if err == nil {
				r.consume(n)
				return f, nil
			}
			if !errors.Is(err, ErrIncomplete) {
				return Frame{}, err
			}
		}

		if r.err != nil {
			err := r.err
			if errors.Is(err, io.EOF) && r.end > r.start {
				err = io.ErrUnexpectedEOF
			}
			return Frame{}, err
		}

		r.fill()
	}
}

// HasFrame reports whether a complete frame is already buffered, so the
// next ReadFrame returns it without touching the stream. It never blocks.
func (r *Reader) HasFrame() bool {
	if r.nextLen > 0 {
		return true
	}
	if r.end == r.start {
		return false
	}
	f, n, err := r.dec.Decode(r.buf[r.start:r.end])
	if err != nil {
		return false
	}
	r.next, r.nextLen = f, n
	return true
}

func (r *Reader) consume(n int) {
	r.next, r.nextLen = Frame{}, 0
	r.start += n
	if r.start == r.end {
		r.start, r.end = 0, 0
	}
}

// Buffered returns the number of bytes read from the stream but not yet
// consumed by a decoded frame.
func (r *Reader) Buffered() int {
	return r.end - r.start
}

func (r *Reader) fill() {
	if r.start > 0 {
		copy(r.buf, r.buf[r.start:r.end])
		r.end -= r.start
		r.start = 0
	}
	if r.end == len(r.buf) {
		grown := make([]byte, 2*len(r.buf))
		copy(grown, r.buf[:r.end])
		r.buf = grown
	}

	n, err := r.rd.Read(r.buf[r.end:])
	r.end += n
	if err != nil {
		r.err = err
	}
}

// Writer encodes frames onto a buffered byte stream.
type Writer struct {
	bw      *bufio.Writer
	scratch []byte
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteFrame encodes f into the write buffer. Call Flush to send it.
func (w *Writer) WriteFrame(f Frame) error {
	b, err := AppendFrame(w.scratch[:0], f)
	if err != nil {
		return err
	}
	w.scratch = b
	_, err = w.bw.Write(b)
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
