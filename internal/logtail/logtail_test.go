package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"
)

func TestTail(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "gametrackr.log")

	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		if i == 5 {
			content.WriteString("\n")
		}
		all = append(all, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		want     []string
	}{
		{name: "zero", maxLines: 0, want: nil},
		{name: "negative", maxLines: -1, want: nil},
		{name: "partial", maxLines: 3, want: all[7:]},
		{name: "exact", maxLines: 10, want: all},
		{name: "more than exists", maxLines: 20, want: all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Tail returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Tail(%d) mismatch (-want +got):\n%s", tt.maxLines, diff)
			}
		})
	}
}

func TestTail_MissingFile(t *testing.T) {
	lines, err := Tail(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("Tail(missing) = %v, %v; want nil, nil", lines, err)
	}
}

func TestParse_JSONLine(t *testing.T) {
	line := `{"level":"warn","time":"2026-03-01T12:30:45.123Z","caller":"ui/app.go:361","msg":"detail fetch failed","id":42,"error":"HTTP 404 Not Found"}`

	e := Parse(line)
	if !e.Parsed {
		t.Fatalf("line not parsed")
	}
	if e.Level != zapcore.WarnLevel || e.Message != "detail fetch failed" || e.Caller != "ui/app.go:361" {
		t.Fatalf("entry = %+v", e)
	}
	wantTime := time.Date(2026, 3, 1, 12, 30, 45, 123_000_000, time.UTC)
	if !e.Time.Equal(wantTime) {
		t.Fatalf("Time = %v, want %v", e.Time, wantTime)
	}
	if got := e.FieldString(); got != `error="HTTP 404 Not Found" id=42` {
		t.Fatalf("FieldString() = %q", got)
	}
	if s := e.String(); !strings.Contains(s, "WARN  detail fetch failed error=") {
		t.Fatalf("String() = %q", s)
	}
}

func TestParse_PlainLine(t *testing.T) {
	e := Parse("panic: runtime error")
	if e.Parsed {
		t.Fatalf("plain line reported as parsed")
	}
	if e.String() != "panic: runtime error" {
		t.Fatalf("String() = %q, want raw line", e.String())
	}
}

func TestFilter(t *testing.T) {
	entries := ParseAll([]string{
		`{"level":"debug","msg":"list fetch"}`,
		`{"level":"info","msg":"signed out"}`,
		`not json`,
		`{"level":"error","msg":"tui exited with error"}`,
	})

	got := Filter(entries, zapcore.InfoLevel)
	var msgs []string
	for _, e := range got {
		if e.Parsed {
			msgs = append(msgs, e.Message)
		} else {
			msgs = append(msgs, e.Raw)
		}
	}
	want := []string{"signed out", "not json", "tui exited with error"}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Fatalf("Filter mismatch (-want +got):\n%s", diff)
	}
	if len(entries) != 4 {
		t.Fatalf("Filter modified its input")
	}
}

func TestFormatValue(t *testing.T) {
	cases := map[string]struct {
		in   any
		want string
	}{
		"plain":  {in: "zelda", want: "zelda"},
		"spaces": {in: "mass effect", want: `"mass effect"`},
		"empty":  {in: "", want: `""`},
		"number": {in: float64(12), want: "12"},
		"bool":   {in: true, want: "true"},
		"nil":    {in: nil, want: "null"},
		"object": {in: map[string]any{"a": float64(1)}, want: `{"a":1}`},
	}
	for name, tc := range cases {
		if got := formatValue(tc.in); got != tc.want {
			t.Fatalf("%s: formatValue(%v) = %q, want %q", name, tc.in, got, tc.want)
		}
	}
}
