package output

import (
	"math"

	"github.com/yndnr/redikv/internal/resp"
)

// Value converts a frame to plain Go values for structured encoders.
//
// Strings become string, integers int64, doubles float64 (non-finite
// doubles become "nan", "inf" or "-inf"), arrays and sets []any, maps
// map[string]any, null nil. An error reply becomes {"error": message}.
func Value(f resp.Frame) any {
	if f.IsNull() {
		return nil
	}
	switch f.Kind {
	case resp.KindSimpleString:
		return f.Str
	case resp.KindError:
		return map[string]any{"error": f.Str}
	case resp.KindInteger:
		return f.Int
	case resp.KindBulkString:
		return string(f.Bulk)
	case resp.KindBoolean:
		return f.Bool
	case resp.KindDouble:
		if math.IsNaN(f.Float) || math.IsInf(f.Float, 0) {
			return nonFinite(f.Float)
		}
		return f.Float
	case resp.KindArray, resp.KindSet:
		out := make([]any, len(f.Elems))
		for i, e := range f.Elems {
			out[i] = Value(e)
		}
		return out
	case resp.KindMap:
		out := make(map[string]any, len(f.Pairs))
		for k, v := range f.Pairs {
			out[k] = Value(v)
		}
		return out
	default:
		return nil
	}
}

func nonFinite(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case v > 0:
		return "inf"
	default:
		return "-inf"
	}
}
