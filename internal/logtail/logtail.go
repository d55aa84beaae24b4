package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// timeLayout matches zapcore.ISO8601TimeEncoder.
const timeLayout = "2006-01-02T15:04:05.000Z0700"

// Keys written by the logger itself rather than by call sites.
var reservedKeys = map[string]bool{
	"time":       true,
	"level":      true,
	"msg":        true,
	"caller":     true,
	"stacktrace": true,
}

// Entry is one line of the log file.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Message string
	Caller  string
	Fields  map[string]any

	// Raw is the original line. Parsed is false when the line was not a
	// JSON object; only Raw is meaningful then.
	Raw    string
	Parsed bool
}

// Tail returns at most maxLines from the end of the file at path, oldest
// first. A missing file yields no lines.
func Tail(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	total := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		ring[total%maxLines] = line
		total++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if total <= maxLines {
		return ring[:total], nil
	}
	start := total % maxLines
	return append(ring[start:], ring[:start]...), nil
}

// Parse decodes a JSON log line.
func Parse(line string) Entry {
	entry := Entry{Raw: line}

	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return entry
	}
	entry.Parsed = true

	if s, ok := raw["level"].(string); ok {
		if err := entry.Level.UnmarshalText([]byte(s)); err != nil {
			entry.Level = zapcore.InfoLevel
		}
	}
	if s, ok := raw["time"].(string); ok {
		if t, err := time.Parse(timeLayout, s); err == nil {
			entry.Time = t
		} else if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			entry.Time = t
		}
	}
	entry.Message, _ = raw["msg"].(string)
	entry.Caller, _ = raw["caller"].(string)

	for k, v := range raw {
		if reservedKeys[k] {
			continue
		}
		if entry.Fields == nil {
			entry.Fields = make(map[string]any)
		}
		entry.Fields[k] = v
	}
	return entry
}

// ParseAll decodes every line.
func ParseAll(lines []string) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, Parse(line))
	}
	return entries
}

// Filter keeps entries at or above minLevel. Unparsed lines are always kept.
func Filter(entries []Entry, minLevel zapcore.Level) []Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if !e.Parsed || e.Level >= minLevel {
			out = append(out, e)
		}
	}
	return out
}

// FieldString renders the call-site fields as sorted key=value pairs.
func (e Entry) FieldString() string {
	if len(e.Fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e.Fields))
	for _, k := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, k+"="+formatValue(e.Fields[k]))
	}
	return strings.Join(parts, " ")
}

// String renders the entry on one line: time, level, message, fields.
func (e Entry) String() string {
	if !e.Parsed {
		return e.Raw
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("2006-01-02 15:04:05"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s %s", e.Level.CapitalString(), e.Message)
	if fields := e.FieldString(); fields != "" {
		b.WriteByte(' ')
		b.WriteString(fields)
	}
	return b.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " \t\"=") {
			return strconv.Quote(val)
		}
		return val
	case nil:
		return "null"
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}
