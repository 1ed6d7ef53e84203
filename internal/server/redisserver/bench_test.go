package redisserver

import (
	"context"
	"net"
	"testing"

	"github.com/yndnr/redikv/internal/resp"
	"github.com/yndnr/redikv/internal/storage/memory"
	"github.com/yndnr/redikv/internal/telemetry/logger"
)

func benchConn(b *testing.B) (*resp.Reader, *resp.Writer) {
	b.Helper()
	srv := New(DefaultConfig(), memory.New(), logger.Discard(), nil)
	client, server := net.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.ServeConn(ctx, server)
	}()
	b.Cleanup(func() {
		cancel()
		client.Close()
		<-done
	})
	return resp.NewReader(client, nil), resp.NewWriter(client)
}

func BenchmarkServeConn_SetGet(b *testing.B) {
	rd, wr := benchConn(b)
	set := resp.Array(resp.BulkString("set"), resp.BulkString("k"), resp.BulkString("value"))
	get := resp.Array(resp.BulkString("get"), resp.BulkString("k"))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := get
		if i%2 == 0 {
			req = set
		}
		if err := wr.WriteFrame(req); err != nil {
			b.Fatal(err)
		}
		if err := wr.Flush(); err != nil {
			b.Fatal(err)
		}
		if _, err := rd.ReadFrame(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkServeConn_Pipelined(b *testing.B) {
	const depth = 32
	rd, wr := benchConn(b)
	get := resp.Array(resp.BulkString("get"), resp.BulkString("k"))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// net.Pipe is unbuffered, so replies are drained concurrently.
		errc := make(chan error, 1)
		go func() {
			for j := 0; j < depth; j++ {
				if _, err := rd.ReadFrame(); err != nil {
					errc <- err
					return
				}
			}
			errc <- nil
		}()
		for j := 0; j < depth; j++ {
			if err := wr.WriteFrame(get); err != nil {
				b.Fatal(err)
			}
		}
		if err := wr.Flush(); err != nil {
			b.Fatal(err)
		}
		if err := <-errc; err != nil {
			b.Fatal(err)
		}
	}
}
