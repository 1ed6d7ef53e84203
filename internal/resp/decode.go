package resp

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrIncomplete means the buffer does not yet hold a whole frame.
	// Nothing was consumed; retry once more bytes are available.
	ErrIncomplete = errors.New("resp: incomplete frame")

	// ErrInvalidFrame means the bytes violate the protocol grammar.
	ErrInvalidFrame = errors.New("resp: invalid frame")

	// ErrLimitExceeded means a frame exceeds a configured limit.
	// Errors carrying it also match ErrInvalidFrame.
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// Default protocol limits.
const (
	// DefaultMaxBulkLen matches the Redis proto-max-bulk-len default (512MB).
	DefaultMaxBulkLen = 512 * 1024 * 1024

	// DefaultMaxAggregateLen limits array, set, and map element counts.
	DefaultMaxAggregateLen = 1024 * 1024

	// DefaultMaxDepth limits nesting of aggregate frames.
	DefaultMaxDepth = 32

	// DefaultMaxLineLen limits simple strings, errors, and numeric lines.
	DefaultMaxLineLen = 64 * 1024
)

// Limits bounds the size of decoded frames. Zero fields take the defaults.
type Limits struct {
	MaxBulkLen      int
	MaxAggregateLen int
	MaxDepth        int
	MaxLineLen      int
}

// DefaultLimits returns the default protocol limits.
func DefaultLimits() Limits {
	return Limits{
		MaxBulkLen:      DefaultMaxBulkLen,
		MaxAggregateLen: DefaultMaxAggregateLen,
		MaxDepth:        DefaultMaxDepth,
		MaxLineLen:      DefaultMaxLineLen,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxBulkLen <= 0 {
		l.MaxBulkLen = d.MaxBulkLen
	}
	if l.MaxAggregateLen <= 0 {
		l.MaxAggregateLen = d.MaxAggregateLen
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = d.MaxDepth
	}
	if l.MaxLineLen <= 0 {
		l.MaxLineLen = d.MaxLineLen
	}
	return l
}

// Decoder decodes frames under a set of limits. It holds no buffer state
// and is safe for concurrent use.
type Decoder struct {
	limits Limits
}

// NewDecoder returns a Decoder enforcing l.
func NewDecoder(l Limits) *Decoder {
	return &Decoder{limits: l.withDefaults()}
}

var defaultDecoder = NewDecoder(DefaultLimits())

// Decode decodes one frame from the start of buf using the default limits.
// See Decoder.Decode.
func Decode(buf []byte) (Frame, int, error) {
	return defaultDecoder.Decode(buf)
}

// Decode decodes one frame from the start of buf and returns it together
// with the number of bytes it occupied.
//
// If buf holds only a prefix of a frame the error is ErrIncomplete and the
// consumed count is zero. Grammar violations wrap ErrInvalidFrame.
// The returned frame does not alias buf.
func (d *Decoder) Decode(buf []byte) (Frame, int, error) {
	f, n, err := d.decode(buf, 0)
	if err != nil {
		return Frame{}, 0, err
	}
	return f, n, nil
}

func (d *Decoder) decode(buf []byte, depth int) (Frame, int, error) {
	if len(buf) == 0 {
		return Frame{}, 0, ErrIncomplete
	}

	switch Kind(buf[0]) {
	case KindSimpleString, KindError:
		line, n, err := d.readLine(buf)
		if err != nil {
			return Frame{}, 0, err
		}
		return Frame{Kind: Kind(buf[0]), Str: string(line)}, n, nil

	case KindInteger:
		line, n, err := d.readLine(buf)
		if err != nil {
			return Frame{}, 0, err
		}
		v, err := strconv.ParseInt(string(line), 10, 64)
		if err != nil {
			return Frame{}, 0, fmt.Errorf("%w: invalid integer %q", ErrInvalidFrame, line)
		}
		return Integer(v), n, nil

	case KindBulkString:
		return d.decodeBulk(buf)

	case KindNull:
		line, n, err := d.readLine(buf)
		if err != nil {
			return Frame{}, 0, err
		}
		if len(line) != 0 {
			return Frame{}, 0, fmt.Errorf("%w: unexpected null payload %q", ErrInvalidFrame, line)
		}
		return Null(), n, nil

	case KindBoolean:
		line, n, err := d.readLine(buf)
		if err != nil {
			return Frame{}, 0, err
		}
		switch string(line) {
		case "t":
			return Boolean(true), n, nil
		case "f":
			return Boolean(false), n, nil
		default:
			return Frame{}, 0, fmt.Errorf("%w: invalid boolean %q", ErrInvalidFrame, line)
		}

	case KindDouble:
		line, n, err := d.readLine(buf)
		if err != nil {
			return Frame{}, 0, err
		}
		v, err := strconv.ParseFloat(string(line), 64)
		if err != nil {
			return Frame{}, 0, fmt.Errorf("%w: invalid double %q", ErrInvalidFrame, line)
		}
		return Double(v), n, nil

	case KindArray, KindSet:
		return d.decodeSeq(buf, depth)

	case KindMap:
		return d.decodeMap(buf, depth)

	default:
		return Frame{}, 0, fmt.Errorf("%w: unknown type byte %q", ErrInvalidFrame, buf[0])
	}
}

// readLine returns the bytes between the tag and the first CRLF, plus the
// total length including the terminator.
func (d *Decoder) readLine(buf []byte) ([]byte, int, error) {
	idx := bytes.Index(buf[1:], []byte(crlf))
	if idx < 0 {
		if len(buf)-1 > d.limits.MaxLineLen {
			return nil, 0, limitErr("line length exceeds %d", d.limits.MaxLineLen)
		}
		return nil, 0, ErrIncomplete
	}
	if idx > d.limits.MaxLineLen {
		return nil, 0, limitErr("line length %d exceeds %d", idx, d.limits.MaxLineLen)
	}
	return buf[1 : 1+idx], idx + 3, nil
}

// readLength reads a "<tag><n>\r\n" header. n may be -1 (RESP2 null).
func (d *Decoder) readLength(buf []byte) (int, int, error) {
	line, n, err := d.readLine(buf)
	if err != nil {
		return 0, 0, err
	}
	v, err := strconv.Atoi(string(line))
	if err != nil || v < -1 {
		return 0, 0, fmt.Errorf("%w: invalid length %q", ErrInvalidFrame, line)
	}
	return v, n, nil
}

func (d *Decoder) decodeBulk(buf []byte) (Frame, int, error) {
	size, hdr, err := d.readLength(buf)
	if err != nil {
		return Frame{}, 0, err
	}
	if size == -1 {
		return Null(), hdr, nil
	}
	if size > d.limits.MaxBulkLen {
		return Frame{}, 0, limitErr("bulk length %d exceeds %d", size, d.limits.MaxBulkLen)
	}

	// Compare against the remaining bytes; hdr+size can overflow when
	// MaxBulkLen is near math.MaxInt.
	if size > len(buf)-hdr-len(crlf) {
		return Frame{}, 0, ErrIncomplete
	}
	end := hdr + size + len(crlf)
	if buf[end-2] != '\r' || buf[end-1] != '\n' {
		return Frame{}, 0, fmt.Errorf("%w: bulk string length mismatch", ErrInvalidFrame)
	}

	payload := make([]byte, size)
	copy(payload, buf[hdr:hdr+size])
	return Frame{Kind: KindBulkString, Bulk: payload}, end, nil
}

func (d *Decoder) aggregateLen(buf []byte, depth int) (int, int, error) {
	if depth >= d.limits.MaxDepth {
		return 0, 0, limitErr("nesting depth exceeds %d", d.limits.MaxDepth)
	}
	count, hdr, err := d.readLength(buf)
	if err != nil {
		return 0, 0, err
	}
	if count > d.limits.MaxAggregateLen {
		return 0, 0, limitErr("aggregate length %d exceeds %d", count, d.limits.MaxAggregateLen)
	}
	return count, hdr, nil
}

func (d *Decoder) decodeSeq(buf []byte, depth int) (Frame, int, error) {
	kind := Kind(buf[0])
	count, off, err := d.aggregateLen(buf, depth)
	if err != nil {
		return Frame{}, 0, err
	}
	if count == -1 {
		if kind == KindArray {
			return Null(), off, nil
		}
		return Frame{}, 0, fmt.Errorf("%w: negative set length", ErrInvalidFrame)
	}

	elems := make([]Frame, 0, min(count, 1024))
	for i := 0; i < count; i++ {
		e, n, err := d.decode(buf[off:], depth+1)
		if err != nil {
			return Frame{}, 0, err
		}
		elems = append(elems, e)
		off += n
	}
	return Frame{Kind: kind, Elems: elems}, off, nil
}

func (d *Decoder) decodeMap(buf []byte, depth int) (Frame, int, error) {
	count, off, err := d.aggregateLen(buf, depth)
	if err != nil {
		return Frame{}, 0, err
	}
	if count == -1 {
		return Frame{}, 0, fmt.Errorf("%w: negative map length", ErrInvalidFrame)
	}

	pairs := make(map[string]Frame, min(count, 1024))
	for i := 0; i < count; i++ {
		k, n, err := d.decode(buf[off:], depth+1)
		if err != nil {
			return Frame{}, 0, err
		}
		if k.Kind != KindSimpleString {
			return Frame{}, 0, fmt.Errorf("%w: map key must be a simple string, got %s", ErrInvalidFrame, k.Kind)
		}
		off += n

		v, n, err := d.decode(buf[off:], depth+1)
		if err != nil {
			return Frame{}, 0, err
		}
		off += n
		pairs[k.Str] = v
	}
	return Frame{Kind: KindMap, Pairs: pairs}, off, nil
}

func limitErr(format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrInvalidFrame, ErrLimitExceeded, fmt.Sprintf(format, args...))
}
