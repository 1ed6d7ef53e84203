package command

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/redikv/internal/server/redisserver"
	"github.com/yndnr/redikv/internal/storage/memory"
	"github.com/yndnr/redikv/internal/telemetry/logger"
)

// startServer runs a redikv server on a loopback port for one test.
func startServer(t *testing.T) string {
	t.Helper()
	srv := redisserver.New(redisserver.DefaultConfig(), memory.New(), logger.Discard(), nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(context.Background(), ln)
	}()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		<-done
	})
	return ln.Addr().String()
}

type result struct {
	stdout string
	stderr string
	err    error
}

// runApp runs the CLI with an isolated config file and the given stdin.
func runApp(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var stdout, stderr bytes.Buffer

	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	cfgPath := filepath.Join(t.TempDir(), "cli.yaml")
	full := append([]string{"redikv-cli", "--config", cfgPath}, args...)
	err := app.Run(full)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
