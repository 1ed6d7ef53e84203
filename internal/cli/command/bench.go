package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redikv/internal/cli/connection"
	"github.com/yndnr/redikv/internal/cli/output"
	"github.com/yndnr/redikv/internal/resp"
)

// BenchTests lists the operations bench can run.
var BenchTests = []string{"set", "get", "hset", "hget"}

// BenchOptions configures one benchmark run.
type BenchOptions struct {
	Clients  int
	Requests int
	DataSize int
	// Keyspace spreads keys over this many names. Zero uses one key.
	Keyspace int
	Tests    []string
}

// BenchResult summarizes one operation.
type BenchResult struct {
	Test      string  `json:"test" yaml:"test"`
	Requests  int     `json:"requests" yaml:"requests"`
	Errors    int64   `json:"errors" yaml:"errors"`
	Seconds   float64 `json:"seconds" yaml:"seconds"`
	OpsPerSec float64 `json:"ops_per_sec" yaml:"ops_per_sec"`
	P50Ms     float64 `json:"p50_ms" yaml:"p50_ms"`
	P99Ms     float64 `json:"p99_ms" yaml:"p99_ms"`
}

// BenchReport is the text rendering of a run.
type BenchReport []BenchResult

// Render implements output.Renderer.
func (r BenchReport) Render(w io.Writer) error {
	t := &output.Table{}
	t.SetHeaders("TEST", "REQUESTS", "ERRORS", "SECONDS", "OPS/SEC", "P50(ms)", "P99(ms)")
	for _, res := range r {
		t.AddRow(
			res.Test,
			strconv.Itoa(res.Requests),
			strconv.FormatInt(res.Errors, 10),
			fmt.Sprintf("%.3f", res.Seconds),
			fmt.Sprintf("%.2f", res.OpsPerSec),
			fmt.Sprintf("%.3f", res.P50Ms),
			fmt.Sprintf("%.3f", res.P99Ms),
		)
	}
	return t.Render(w)
}

// BenchCommand returns the bench command.
func BenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Measure throughput with concurrent pooled clients",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "clients", Aliases: []string{"c"}, Value: 50, Usage: "concurrent clients"},
			&cli.IntFlag{Name: "requests", Aliases: []string{"n"}, Value: 100000, Usage: "requests per test"},
			&cli.IntFlag{Name: "data-size", Aliases: []string{"d"}, Value: 3, Usage: "value size in bytes"},
			&cli.IntFlag{Name: "keyspace", Aliases: []string{"r"}, Usage: "number of distinct keys (0 = one key)"},
			&cli.StringFlag{Name: "tests", Aliases: []string{"t"}, Value: "set,get", Usage: "comma-separated: " + strings.Join(BenchTests, ",")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "hide the progress bar"},
		},
		Action: benchAction,
	}
}

func benchAction(c *cli.Context) error {
	opts := BenchOptions{
		Clients:  c.Int("clients"),
		Requests: c.Int("requests"),
		DataSize: c.Int("data-size"),
		Keyspace: c.Int("keyspace"),
		Tests:    strings.Split(c.String("tests"), ","),
	}
	if err := opts.validate(); err != nil {
		return err
	}

	s := GetSettings(c)
	ctx := c.Context
	pool := connection.NewPool(ctx, s.Server, connection.PoolConfig{
		MaxTotal: opts.Clients,
		Timeout:  s.Timeout,
	})
	defer pool.Close(ctx)

	var progress io.Writer
	if !c.Bool("quiet") {
		progress = c.App.ErrWriter
	}

	report, err := RunBench(ctx, pool, opts, progress)
	if err != nil {
		return err
	}
	if progress != nil {
		fmt.Fprintf(progress, "%d connections opened, %d in use\n", pool.Idle()+pool.Active(), pool.Active())
	}
	if s.Format == output.FormatText {
		return output.NewFormatter(s.Format).Format(c.App.Writer, report)
	}
	return output.NewFormatter(s.Format).Format(c.App.Writer, []BenchResult(report))
}

func (o *BenchOptions) validate() error {
	if o.Clients <= 0 {
		return errors.New("clients must be positive")
	}
	if o.Requests <= 0 {
		return errors.New("requests must be positive")
	}
	if o.DataSize < 0 || o.Keyspace < 0 {
		return errors.New("data-size and keyspace must not be negative")
	}
	for i, t := range o.Tests {
		t = strings.ToLower(strings.TrimSpace(t))
		if !isBenchTest(t) {
			return fmt.Errorf("unknown test %q (want %s)", t, strings.Join(BenchTests, ","))
		}
		o.Tests[i] = t
	}
	return nil
}

func isBenchTest(name string) bool {
	for _, t := range BenchTests {
		if t == name {
			return true
		}
	}
	return false
}

// Doer sends one request. *connection.Pool implements it.
type Doer interface {
	Do(ctx context.Context, args ...string) (resp.Frame, error)
}

// RunBench runs each test in order. Progress is drawn on progress when it
// is not nil. A transport failure aborts the run.
func RunBench(ctx context.Context, d Doer, opts BenchOptions, progress io.Writer) (BenchReport, error) {
	value := strings.Repeat("x", opts.DataSize)
	report := make(BenchReport, 0, len(opts.Tests))
	for _, test := range opts.Tests {
		res, err := runTest(ctx, d, test, value, opts, progress)
		if err != nil {
			return nil, fmt.Errorf("bench %s: %w", test, err)
		}
		report = append(report, res)
	}
	return report, nil
}

func runTest(ctx context.Context, d Doer, test, value string, opts BenchOptions, progress io.Writer) (BenchResult, error) {
	var bar *output.ProgressBar
	if progress != nil {
		bar = output.NewProgressBar(progress, test, int64(opts.Requests))
	}

	var (
		next     atomic.Int64
		errCount atomic.Int64
		wg       sync.WaitGroup
		mu       sync.Mutex
		all      = make([]time.Duration, 0, opts.Requests)
		firstErr error
		errOnce  sync.Once
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	for w := 0; w < opts.Clients; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local []time.Duration
			defer func() {
				mu.Lock()
				all = append(all, local...)
				mu.Unlock()
			}()

			for {
				i := next.Add(1) - 1
				if i >= int64(opts.Requests) || ctx.Err() != nil {
					return
				}

				t0 := time.Now()
				reply, err := d.Do(ctx, benchArgs(test, i, value, opts.Keyspace)...)
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
				local = append(local, time.Since(t0))
				if reply.Kind == resp.KindError {
					errCount.Add(1)
				}
				if bar != nil {
					bar.Increment(1)
				}
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	if bar != nil {
		bar.Finish()
	}
	if firstErr != nil {
		return BenchResult{}, firstErr
	}

	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return BenchResult{
		Test:      test,
		Requests:  len(all),
		Errors:    errCount.Load(),
		Seconds:   elapsed.Seconds(),
		OpsPerSec: float64(len(all)) / elapsed.Seconds(),
		P50Ms:     percentileMs(all, 0.50),
		P99Ms:     percentileMs(all, 0.99),
	}, nil
}

func benchArgs(test string, i int64, value string, keyspace int) []string {
	key := "bench:key"
	field := "field"
	if keyspace > 0 {
		n := strconv.FormatInt(i%int64(keyspace), 10)
		key += ":" + n
		field += ":" + n
	}
	switch test {
	case "set":
		return []string{"set", key, value}
	case "get":
		return []string{"get", key}
	case "hset":
		return []string{"hset", "bench:hash", field, value}
	default:
		return []string{"hget", "bench:hash", field}
	}
}

// percentileMs expects sorted input.
func percentileMs(sorted []time.Duration, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(q*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	return float64(sorted[idx]) / float64(time.Millisecond)
}
