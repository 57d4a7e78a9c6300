package worker

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestProgress_DrawsBar(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(10, &buf)

	p.Update(5, 10, 1)

	out := buf.String()
	if !strings.Contains(out, "[###############...............]") {
		t.Errorf("Expected half-filled bar, got: %q", out)
	}
	if !strings.Contains(out, "5/10 questions (1 failed)") {
		t.Errorf("Expected counts in output, got: %q", out)
	}
	if strings.Contains(out, " in ") {
		t.Errorf("Did not expect elapsed time before completion, got: %q", out)
	}
}

func TestProgress_ThrottlesLargeBatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(1000, &buf)

	for i := 1; i <= 1000; i++ {
		p.Update(i, 1000, 0)
	}

	if n := strings.Count(buf.String(), "\r"); n != 100 {
		t.Errorf("Expected 100 redraws, got %d", n)
	}
	if !strings.Contains(buf.String(), "1000/1000 questions in ") {
		t.Errorf("Expected final line, got tail: %q", buf.String()[buf.Len()-60:])
	}
}

func TestProgress_NilWriter(t *testing.T) {
	p := NewProgress(3, nil)
	p.Update(3, 3, 0)
	p.Done()

	if !strings.HasPrefix(p.Summary(), "Generated 3/3 questions (0 failed)") {
		t.Errorf("Unexpected summary: %s", p.Summary())
	}
}

func TestProgress_DoneEndsLine(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(1, &buf)
	p.Callback()(1, 1, 1)
	p.Done()

	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("Expected output to end with newline")
	}
	if !strings.Contains(p.Summary(), "0/1 questions (1 failed)") {
		t.Errorf("Unexpected summary: %s", p.Summary())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		expected string
		duration time.Duration
	}{
		{duration: 250 * time.Millisecond, expected: "250ms"},
		{duration: 1500 * time.Millisecond, expected: "1.5s"},
		{duration: 90 * time.Second, expected: "1m30s"},
		{duration: 65 * time.Minute, expected: "65m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := formatDuration(tt.duration); got != tt.expected {
				t.Errorf("formatDuration(%v) = %s, want %s", tt.duration, got, tt.expected)
			}
		})
	}
}
