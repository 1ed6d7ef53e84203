package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/yndnr/redikv/internal/resp"
)

// TextFormatter renders frames the way redis-cli does on a terminal.
// Values other than frames are written with Render if they implement
// it, otherwise with fmt.
type TextFormatter struct{}

// Renderer is implemented by reports with their own text layout.
type Renderer interface {
	Render(w io.Writer) error
}

// Format writes data followed by a newline.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case resp.Frame:
		_, err := io.WriteString(w, Text(v)+"\n")
		return err
	case Renderer:
		return v.Render(w)
	default:
		_, err := fmt.Fprintln(w, v)
		return err
	}
}

// Text returns the redis-cli rendering of f without a trailing newline.
func Text(f resp.Frame) string {
	var sb strings.Builder
	writeText(&sb, f, "")
	return sb.String()
}

func writeText(sb *strings.Builder, f resp.Frame, indent string) {
	switch f.Kind {
	case resp.KindSimpleString:
		sb.WriteString(f.Str)
	case resp.KindError:
		sb.WriteString("(error) ")
		sb.WriteString(f.Str)
	case resp.KindInteger:
		sb.WriteString("(integer) ")
		sb.WriteString(strconv.FormatInt(f.Int, 10))
	case resp.KindBulkString:
		sb.WriteString(Quote(f.Bulk))
	case resp.KindNull:
		sb.WriteString("(nil)")
	case resp.KindBoolean:
		if f.Bool {
			sb.WriteString("(true)")
		} else {
			sb.WriteString("(false)")
		}
	case resp.KindDouble:
		sb.WriteString("(double) ")
		sb.WriteString(strconv.FormatFloat(f.Float, 'g', -1, 64))
	case resp.KindArray:
		writeSeq(sb, f.Elems, ')', "(empty array)", indent)
	case resp.KindSet:
		writeSeq(sb, f.Elems, '~', "(empty set)", indent)
	case resp.KindMap:
		writeMap(sb, f.Pairs, indent)
	default:
		fmt.Fprintf(sb, "(unknown %s)", f.Kind)
	}
}

func writeSeq(sb *strings.Builder, elems []resp.Frame, mark byte, empty, indent string) {
	if len(elems) == 0 {
		sb.WriteString(empty)
		return
	}
	width := len(strconv.Itoa(len(elems)))
	for i, e := range elems {
		if i > 0 {
			sb.WriteString("\n")
			sb.WriteString(indent)
		}
		prefix := fmt.Sprintf("%*d%c ", width, i+1, mark)
		sb.WriteString(prefix)
		writeText(sb, e, indent+strings.Repeat(" ", len(prefix)))
	}
}

// writeMap sorts fields so output is stable across runs.
func writeMap(sb *strings.Builder, pairs map[string]resp.Frame, indent string) {
	if len(pairs) == 0 {
		sb.WriteString("(empty hash)")
		return
	}
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	width := len(strconv.Itoa(len(keys)))
	for i, k := range keys {
		if i > 0 {
			sb.WriteString("\n")
			sb.WriteString(indent)
		}
		prefix := fmt.Sprintf("%*d# %s => ", width, i+1, Quote([]byte(k)))
		sb.WriteString(prefix)
		writeText(sb, pairs[k], indent+strings.Repeat(" ", len(prefix)))
	}
}

// Quote returns b in double quotes, escaping quotes, backslashes and
// non-printable bytes as redis-cli does.
func Quote(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) + 2)
	sb.WriteByte('"')
	for _, c := range b {
		switch c {
		case '\\', '"':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\a':
			sb.WriteString(`\a`)
		case '\b':
			sb.WriteString(`\b`)
		default:
			if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(&sb, `\x%02x`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
