package resp

import (
	"bytes"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the type of a Frame. Its value is the wire tag byte.
type Kind byte

// Frame kinds.
const (
	KindSimpleString Kind = '+'
	KindError        Kind = '-'
	KindInteger      Kind = ':'
	KindBulkString   Kind = '$'
	KindArray        Kind = '*'
	KindNull         Kind = '_'
	KindBoolean      Kind = '#'
	KindDouble       Kind = ','
	KindMap          Kind = '%'
	KindSet          Kind = '~'
)

// String returns the human readable kind name.
func (k Kind) String() string {
	switch k {
	case KindSimpleString:
		return "simple-string"
	case KindError:
		return "error"
	case KindInteger:
		return "integer"
	case KindBulkString:
		return "bulk-string"
	case KindArray:
		return "array"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindDouble:
		return "double"
	case KindMap:
		return "map"
	case KindSet:
		return "set"
	default:
		return "unknown(" + strconv.Quote(string(rune(k))) + ")"
	}
}

// Frame is one protocol value.
//
// Kind selects which payload field is meaningful:
//
//	KindSimpleString, KindError  Str
//	KindInteger                  Int
//	KindBulkString               Bulk
//	KindArray, KindSet           Elems
//	KindBoolean                  Bool
//	KindDouble                   Float
//	KindMap                      Pairs (keys are simple strings)
//	KindNull                     none
type Frame struct {
	Kind  Kind
	Str   string
	Int   int64
	Bulk  []byte
	Bool  bool
	Float float64
	Elems []Frame
	Pairs map[string]Frame
}

// SimpleString returns a simple string frame.
func SimpleString(s string) Frame {
	return Frame{Kind: KindSimpleString, Str: s}
}

// Error returns an error frame.
func Error(msg string) Frame {
	return Frame{Kind: KindError, Str: msg}
}

// Integer returns an integer frame.
func Integer(n int64) Frame {
	return Frame{Kind: KindInteger, Int: n}
}

// Bulk returns a bulk string frame holding b.
func Bulk(b []byte) Frame {
	if b == nil {
		b = []byte{}
	}
	return Frame{Kind: KindBulkString, Bulk: b}
}

// BulkString returns a bulk string frame holding s.
func BulkString(s string) Frame {
	return Frame{Kind: KindBulkString, Bulk: []byte(s)}
}

// Array returns an array frame.
func Array(elems ...Frame) Frame {
	return Frame{Kind: KindArray, Elems: elems}
}

// Null returns the null frame.
func Null() Frame {
	return Frame{Kind: KindNull}
}

// Boolean returns a boolean frame.
func Boolean(b bool) Frame {
	return Frame{Kind: KindBoolean, Bool: b}
}

// Double returns a double frame.
func Double(f float64) Frame {
	return Frame{Kind: KindDouble, Float: f}
}

// Map returns a map frame. A nil map is treated as empty.
func Map(pairs map[string]Frame) Frame {
	if pairs == nil {
		pairs = make(map[string]Frame)
	}
	return Frame{Kind: KindMap, Pairs: pairs}
}

// Set returns a set frame. Duplicate elements are kept as given.
func Set(elems ...Frame) Frame {
	return Frame{Kind: KindSet, Elems: elems}
}

// IsNull reports whether f is the null frame.
func (f Frame) IsNull() bool {
	return f.Kind == KindNull
}

// Equal reports whether f and g hold the same value.
//
// Maps compare as unordered pair collections and sets as unordered
// multisets. Two NaN doubles are equal.
func (f Frame) Equal(g Frame) bool {
	if f.Kind != g.Kind {
		return false
	}

	switch f.Kind {
	case KindSimpleString, KindError:
		return f.Str == g.Str
	case KindInteger:
		return f.Int == g.Int
	case KindBulkString:
		return bytes.Equal(f.Bulk, g.Bulk)
	case KindNull:
		return true
	case KindBoolean:
		return f.Bool == g.Bool
	case KindDouble:
		if math.IsNaN(f.Float) {
			return math.IsNaN(g.Float)
		}
		return f.Float == g.Float
	case KindArray:
		if len(f.Elems) != len(g.Elems) {
			return false
		}
		for i := range f.Elems {
			if !f.Elems[i].Equal(g.Elems[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(f.Pairs) != len(g.Pairs) {
			return false
		}
		for k, v := range f.Pairs {
			w, ok := g.Pairs[k]
			if !ok || !v.Equal(w) {
				return false
			}
		}
		return true
	case KindSet:
		return multisetEqual(f.Elems, g.Elems)
	default:
		return false
	}
}

func multisetEqual(a, b []Frame) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if !used[j] && x.Equal(y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// String renders f for logs and debugging. It is not the wire format.
func (f Frame) String() string {
	var sb strings.Builder
	f.writeDebug(&sb)
	return sb.String()
}

func (f Frame) writeDebug(sb *strings.Builder) {
	switch f.Kind {
	case KindSimpleString:
		sb.WriteString(f.Str)
	case KindError:
		sb.WriteString("(error) ")
		sb.WriteString(f.Str)
	case KindInteger:
		sb.WriteString(strconv.FormatInt(f.Int, 10))
	case KindBulkString:
		sb.WriteString(strconv.Quote(string(f.Bulk)))
	case KindNull:
		sb.WriteString("(nil)")
	case KindBoolean:
		sb.WriteString(strconv.FormatBool(f.Bool))
	case KindDouble:
		sb.WriteString(formatDouble(f.Float))
	case KindArray, KindSet:
		open, closing := "[", "]"
		if f.Kind == KindSet {
			open, closing = "~{", "}"
		}
		sb.WriteString(open)
		for i, e := range f.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.writeDebug(sb)
		}
		sb.WriteString(closing)
	case KindMap:
		sb.WriteString("{")
		i := 0
		for k, v := range f.Pairs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			v.writeDebug(sb)
			i++
		}
		sb.WriteString("}")
	default:
		sb.WriteString(f.Kind.String())
	}
}

// LogValue renders the frame lazily, only when a log record is written.
func (f Frame) LogValue() slog.Value {
	return slog.StringValue(f.String())
}
