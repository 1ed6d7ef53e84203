package output

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressBar(&buf, "set", 4)

	p.Increment(1)
	if !strings.Contains(buf.String(), " 25% (1/4)") {
		t.Errorf("output = %q, want 25%%", buf.String())
	}
	p.Increment(3)
	p.Finish()

	out := buf.String()
	if !strings.Contains(out, "100% (4/4)") {
		t.Errorf("output = %q, want 100%%", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Finish() did not end the line")
	}
}

func TestProgressBar_RedrawsOncePerPercent(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressBar(&buf, "x", 1000)
	for i := 0; i < 5; i++ {
		p.Increment(1)
	}
	if n := strings.Count(buf.String(), "\r"); n != 1 {
		t.Errorf("redraws = %d, want 1", n)
	}
}

func TestProgressBar_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressBar(&buf, "x", 100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				p.Increment(1)
			}
		}()
	}
	wg.Wait()
	if !strings.Contains(buf.String(), "(100/100)") {
		t.Errorf("output = %q, want final count 100/100", buf.String())
	}
}
