package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ProgressBar shows completed requests out of a known total. It is safe
// for concurrent use and redraws at most once per percent.
type ProgressBar struct {
	mu       sync.Mutex
	w        io.Writer
	title    string
	total    int64
	current  int64
	width    int
	rendered int
}

// NewProgressBar creates a progress bar for total units.
func NewProgressBar(w io.Writer, title string, total int64) *ProgressBar {
	return &ProgressBar{
		w:        w,
		title:    title,
		total:    total,
		width:    40,
		rendered: -1,
	}
}

// Increment adds n completed units.
func (p *ProgressBar) Increment(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current += n
	if pct := p.percent(); pct != p.rendered {
		p.render(pct)
	}
}

// Finish draws the final state and ends the line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.render(p.percent())
	fmt.Fprintln(p.w)
}

func (p *ProgressBar) percent() int {
	if p.total <= 0 {
		return 100
	}
	pct := int(p.current * 100 / p.total)
	if pct > 100 {
		pct = 100
	}
	return pct
}

func (p *ProgressBar) render(pct int) {
	p.rendered = pct
	filled := p.width * pct / 100
	bar := strings.Repeat("#", filled) + strings.Repeat("-", p.width-filled)
	fmt.Fprintf(p.w, "\r%s [%s] %3d%% (%d/%d)", p.title, bar, pct, p.current, p.total)
}
