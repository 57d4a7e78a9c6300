package worker

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const barWidth = 30

// Progress renders a one-line progress bar for a batch of questions.
// Batches can be large and fast, so the bar is redrawn at most every
// `every` completions (and always on the last one).
type Progress struct {
	startTime time.Time
	output    io.Writer
	total     int
	completed int
	failed    int
	every     int
	mu        sync.Mutex
}

// NewProgress creates a tracker writing to w; a nil w disables drawing.
func NewProgress(total int, w io.Writer) *Progress {
	return &Progress{
		startTime: time.Now(),
		output:    w,
		total:     total,
		every:     max(total/100, 1),
	}
}

// Callback returns a ProgressFunc suitable for use with Pool.Config.
func (p *Progress) Callback() ProgressFunc {
	return p.Update
}

// Update records the completion of a task.
func (p *Progress) Update(completed, total, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.completed, p.total, p.failed = completed, total, failed
	if p.output != nil && (completed%p.every == 0 || completed == total) {
		fmt.Fprint(p.output, "\r"+p.lineLocked())
	}
}

func (p *Progress) lineLocked() string {
	filled := 0
	if p.total > 0 {
		filled = p.completed * barWidth / p.total
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(strings.Repeat("#", filled))
	b.WriteString(strings.Repeat(".", barWidth-filled))
	fmt.Fprintf(&b, "] %d/%d questions", p.completed, p.total)
	if p.failed > 0 {
		fmt.Fprintf(&b, " (%d failed)", p.failed)
	}
	if p.completed == p.total {
		fmt.Fprintf(&b, " in %s", formatDuration(time.Since(p.startTime)))
	}
	return b.String()
}

// Done terminates the progress line.
func (p *Progress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.output != nil {
		fmt.Fprintln(p.output)
	}
}

// Summary describes the finished batch.
func (p *Progress) Summary() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return fmt.Sprintf("Generated %d/%d questions (%d failed) in %s",
		p.completed-p.failed, p.total, p.failed, formatDuration(time.Since(p.startTime)))
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}
