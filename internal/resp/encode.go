package resp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const crlf = "\r\n"

// Encode returns the wire encoding of f.
func Encode(f Frame) ([]byte, error) {
	return AppendFrame(nil, f)
}

// AppendFrame appends the wire encoding of f to dst.
//
// Simple strings, errors, and map keys must not contain CR or LF.
func AppendFrame(dst []byte, f Frame) ([]byte, error) {
	switch f.Kind {
	case KindSimpleString, KindError:
		if err := checkLine(f.Str); err != nil {
			return dst, err
		}
		dst = append(dst, byte(f.Kind))
		dst = append(dst, f.Str...)
		return append(dst, crlf...), nil

	case KindInteger:
		dst = append(dst, byte(KindInteger))
		if f.Int >= 0 {
			dst = append(dst, '+')
		}
		dst = strconv.AppendInt(dst, f.Int, 10)
		return append(dst, crlf...), nil

	case KindBulkString:
		dst = append(dst, byte(KindBulkString))
		dst = strconv.AppendInt(dst, int64(len(f.Bulk)), 10)
		dst = append(dst, crlf...)
		dst = append(dst, f.Bulk...)
		return append(dst, crlf...), nil

	case KindNull:
		return append(dst, "_\r\n"...), nil

	case KindBoolean:
		if f.Bool {
			return append(dst, "#t\r\n"...), nil
		}
		return append(dst, "#f\r\n"...), nil

	case KindDouble:
		dst = append(dst, byte(KindDouble))
		dst = append(dst, formatDouble(f.Float)...)
		return append(dst, crlf...), nil

	case KindArray, KindSet:
		dst = appendHeader(dst, f.Kind, len(f.Elems))
		var err error
		for _, e := range f.Elems {
			if dst, err = AppendFrame(dst, e); err != nil {
				return dst, err
			}
		}
		return dst, nil

	case KindMap:
		dst = appendHeader(dst, KindMap, len(f.Pairs))
		var err error
		for k, v := range f.Pairs {
			if dst, err = AppendFrame(dst, SimpleString(k)); err != nil {
				return dst, err
			}
			if dst, err = AppendFrame(dst, v); err != nil {
				return dst, err
			}
		}
		return dst, nil

	default:
		return dst, fmt.Errorf("%w: cannot encode kind %s", ErrInvalidFrame, f.Kind)
	}
}

func appendHeader(dst []byte, k Kind, n int) []byte {
	dst = append(dst, byte(k))
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, crlf...)
}

func checkLine(s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return fmt.Errorf("%w: line value contains CR or LF", ErrInvalidFrame)
	}
	return nil
}

// Thresholds outside of which doubles use scientific notation.
const (
	sciUpper = 1e12
	sciLower = 1e-12
)

// formatDouble renders v without tag or terminator.
//
//	NaN            nan
//	+Inf / -Inf    inf / -inf
//	0              +0.0
//	|v| >= 1e12    +1e+12   (also nonzero |v| < 1e-12)
//	integral       +5.0
//	otherwise      +123.456
func formatDouble(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs == 0 {
		return "+0.0"
	}

	var s string
	switch {
	case abs >= sciUpper || abs < sciLower:
		// FormatFloat always writes an explicit exponent sign.
		s = strconv.FormatFloat(v, 'e', -1, 64)
	case v == math.Trunc(v):
		s = strconv.FormatFloat(v, 'f', -1, 64) + ".0"
	default:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	}

	if v > 0 {
		return "+" + s
	}
	return s
}
