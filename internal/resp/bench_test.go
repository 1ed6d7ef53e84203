package resp

import (
	"bytes"
	"fmt"
	"io"
	"testing"
)

// ValueSizes are the bulk payload sizes the codec benchmarks cover.
var ValueSizes = []int{16, 1024, 64 * 1024}

func BenchmarkDecode_Request(b *testing.B) {
	for _, size := range ValueSizes {
		b.Run(fmt.Sprintf("value_%d", size), func(b *testing.B) {
			req := Array(BulkString("set"), BulkString("key:1"), Bulk(bytes.Repeat([]byte("x"), size)))
			buf, err := Encode(req)
			if err != nil {
				b.Fatal(err)
			}

			b.SetBytes(int64(len(buf)))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, _, err := Decode(buf); err != nil {
					b.Fatalf("Decode failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkEncode_Map(b *testing.B) {
	for _, fields := range []int{1, 16, 256} {
		b.Run(fmt.Sprintf("fields_%d", fields), func(b *testing.B) {
			pairs := make(map[string]Frame, fields)
			for i := 0; i < fields; i++ {
				pairs[fmt.Sprintf("field:%d", i)] = BulkString("value")
			}
			f := Map(pairs)

			b.ReportAllocs()
			var dst []byte
			for i := 0; i < b.N; i++ {
				var err error
				dst, err = AppendFrame(dst[:0], f)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkReader_Pipelined(b *testing.B) {
	const batch = 100
	var stream bytes.Buffer
	for i := 0; i < batch; i++ {
		buf, _ := Encode(Array(BulkString("get"), BulkString(fmt.Sprintf("key:%d", i))))
		stream.Write(buf)
	}
	data := stream.Bytes()

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r := NewReader(bytes.NewReader(data), nil)
		for j := 0; j < batch; j++ {
			if _, err := r.ReadFrame(); err != nil {
				b.Fatal(err)
			}
		}
		if _, err := r.ReadFrame(); err != io.EOF {
			b.Fatalf("ReadFrame() at end = %v, want EOF", err)
		}
	}
}
