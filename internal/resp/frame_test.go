package resp

import (
	"log/slog"
	"math"
	"testing"
)

func TestFrame_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Frame
		want bool
	}{
		{"same bulk", BulkString("v"), BulkString("v"), true},
		{"different bulk", BulkString("v"), BulkString("w"), false},
		{"bulk vs simple", BulkString("v"), SimpleString("v"), false},
		{"nil and empty bulk", Bulk(nil), BulkString(""), true},
		{"nan equals nan", Double(math.NaN()), Double(math.NaN()), true},
		{"nan vs number", Double(math.NaN()), Double(1), false},
		{"array order matters", Array(Integer(1), Integer(2)), Array(Integer(2), Integer(1)), false},
		{"empty arrays", Array(), Frame{Kind: KindArray, Elems: []Frame{}}, true},
		{"set order ignored", Set(Integer(1), Integer(2)), Set(Integer(2), Integer(1)), true},
		{"set multiplicity matters", Set(Integer(1), Integer(1), Integer(2)), Set(Integer(1), Integer(2), Integer(2)), false},
		{
			name: "map compares pairs",
			a:    Map(map[string]Frame{"a": Integer(1), "b": Null()}),
			b:    Map(map[string]Frame{"b": Null(), "a": Integer(1)}),
			want: true,
		},
		{
			name: "map value differs",
			a:    Map(map[string]Frame{"a": Integer(1)}),
			b:    Map(map[string]Frame{"a": Integer(2)}),
			want: false,
		},
		{"nulls", Null(), Null(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("reverse Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrame_String(t *testing.T) {
	tests := []struct {
		frame Frame
		want  string
	}{
		{SimpleString("OK"), "OK"},
		{Error("ERR x"), "(error) ERR x"},
		{Integer(-3), "-3"},
		{BulkString("v"), `"v"`},
		{Null(), "(nil)"},
		{Boolean(true), "true"},
		{Double(2), "+2.0"},
		{Array(Integer(1), BulkString("a")), `[1, "a"]`},
		{Set(Integer(1)), "~{1}"},
		{Map(map[string]Frame{"f": BulkString("v")}), `{f: "v"}`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.frame.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	if KindBulkString.String() != "bulk-string" {
		t.Errorf("KindBulkString.String() = %q", KindBulkString.String())
	}
	if Kind('?').String() != `unknown("?")` {
		t.Errorf("unknown kind String() = %q", Kind('?').String())
	}
}

func TestConstructors(t *testing.T) {
	if f := Map(nil); f.Pairs == nil || len(f.Pairs) != 0 {
		t.Error("Map(nil) should produce an empty, non-nil map")
	}
	if f := Bulk(nil); f.Bulk == nil {
		t.Error("Bulk(nil) should produce an empty, non-nil payload")
	}
	if !Null().IsNull() {
		t.Error("Null().IsNull() = false")
	}
	if BulkString("").IsNull() {
		t.Error("empty bulk string must not be null")
	}
}

func TestFrame_LogValue(t *testing.T) {
	f := Array(BulkString("get"), BulkString("k"))
	v := f.LogValue()
	if v.Kind() != slog.KindString || v.String() != f.String() {
		t.Errorf("LogValue() = %v (%v), want %q", v, v.Kind(), f.String())
	}
}
