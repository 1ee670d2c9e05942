package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// blockSize is how much of the file Tail reads per step back from the end.
const blockSize = 32 * 1024

// Tail returns at most maxLines from the end of the file at path, reading
// backwards from the end so the cost follows maxLines, not the file size.
// A missing file yields no lines.
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

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}

	// One more newline than maxLines guarantees maxLines whole lines after
	// the trailing newline is dropped.
	var buf []byte
	newlines := 0
	for end := info.Size(); end > 0 && newlines <= maxLines; {
		start := max(end-blockSize, 0)
		chunk := make([]byte, end-start)
		if _, err := file.ReadAt(chunk, start); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read log: %w", err)
		}
		newlines += bytes.Count(chunk, []byte{'\n'})
		buf = append(chunk, buf...)
		end = start
	}
	if len(buf) == 0 {
		return nil, nil
	}

	lines := strings.Split(strings.TrimSuffix(string(buf), "\n"), "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// TailEntries is Tail followed by ParseLines.
func TailEntries(path string, maxLines int, prefix string) ([]Entry, error) {
	lines, err := Tail(path, maxLines)
	if err != nil {
		return nil, err
	}
	return ParseLines(lines, prefix), nil
}

// stdTimeLayout is the date and time written by the standard logger with
// its default flags.
const stdTimeLayout = "2006/01/02 15:04:05"

// Entry is one line written by the standard logger.
type Entry struct {
	Prefix  string
	Time    time.Time
	Message string
	// Failure marks messages reporting an error.
	Failure bool
	// Raw is set when the line did not carry a timestamp.
	Raw bool
}

var failureMarkers = []string{"error", "failed", "fail", "refused", "returned status", "timeout"}

// Parse splits a line written with prefix by the standard logger. Lines
// without a timestamp, such as wrapped continuations, come back as Raw.
func Parse(line, prefix string) Entry {
	rest := line
	if prefix != "" {
		rest = strings.TrimPrefix(rest, strings.TrimSpace(prefix))
		rest = strings.TrimPrefix(rest, " ")
	}
	if len(rest) < len(stdTimeLayout) {
		return Entry{Message: line, Raw: true}
	}
	ts, err := time.ParseInLocation(stdTimeLayout, rest[:len(stdTimeLayout)], time.Local)
	if err != nil {
		return Entry{Message: line, Raw: true}
	}
	msg := strings.TrimPrefix(rest[len(stdTimeLayout):], " ")
	return Entry{
		Prefix:  strings.TrimSpace(prefix),
		Time:    ts,
		Message: msg,
		Failure: isFailure(msg),
	}
}

// ParseLines parses every line with the same prefix.
func ParseLines(lines []string, prefix string) []Entry {
	out := make([]Entry, len(lines))
	for i, line := range lines {
		out[i] = Parse(line, prefix)
	}
	return out
}

func isFailure(msg string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range failureMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
