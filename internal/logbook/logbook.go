// Package logbook persists completed focus sessions to an append-only
// CSV store. The format is consumed by the external analysis tooling and
// must not change: a fixed header line, then one fully double-quoted,
// comma-separated record per session, with embedded quote characters
// doubled.
package logbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Header is the first line of the log store.
const Header = "Intent,Duration(min),Websites,Start,Done,Learned,Actions"

// TimeLayout is the timestamp format of the Start column.
const TimeLayout = "2006-01-02 15:04:05"

// ErrPersistence indicates the log store cannot be created or written.
var ErrPersistence = errors.New("cannot write session log")

// Record is one immutable row of the log store.
type Record struct {
	Intent   string
	Minutes  int
	Websites []string
	Start    time.Time
	Done     string
	Learned  string
	Actions  string
}

// Writer appends records to the log store at Path, creating it with the
// header when absent.
type Writer struct {
	Path string
}

// NewWriter creates a Writer for the given path.
func NewWriter(path string) *Writer {
	return &Writer{Path: path}
}

// Append writes one record, creating the store with its header first if
// needed. Failures wrap ErrPersistence; they are fatal to the caller.
func (w *Writer) Append(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(w.Path), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	_, statErr := os.Stat(w.Path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(w.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	defer f.Close()

	var b strings.Builder
	if fresh {
		b.WriteString(Header)
		b.WriteString("\n")
	}
	b.WriteString(formatRow(rec))
	b.WriteString("\n")

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// formatRow renders one record with every field quoted.
func formatRow(rec Record) string {
	fields := []string{
		rec.Intent,
		fmt.Sprintf("%d", rec.Minutes),
		strings.Join(rec.Websites, ","),
		rec.Start.Format(TimeLayout),
		rec.Done,
		rec.Learned,
		rec.Actions,
	}

	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quote(f)
	}
	return strings.Join(quoted, ",")
}

// quote wraps a field in double quotes, doubling embedded quote characters.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
