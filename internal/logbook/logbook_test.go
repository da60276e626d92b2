package logbook

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testRecord() Record {
	return Record{
		Intent:   "Write report",
		Minutes:  60,
		Websites: []string{"mail.google.com", "calendar.google.com"},
		Start:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local),
		Done:     "Finished the draft",
		Learned:  "Mornings work best",
		Actions:  "Send for review",
	}
}

func TestAppend_CreatesStoreWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.csv")
	w := NewWriter(path)

	if err := w.Append(testRecord()); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read store: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("store has %d lines, want 2 (header + record)", len(lines))
	}
	if lines[0] != Header {
		t.Errorf("first line = %q, want %q", lines[0], Header)
	}
	if !strings.HasPrefix(lines[1], `"Write report","60",`) {
		t.Errorf("record line = %q, want quoted fields", lines[1])
	}
}

func TestAppend_DoesNotRepeatHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.csv")
	w := NewWriter(path)

	if err := w.Append(testRecord()); err != nil {
		t.Fatalf("first Append() error = %v", err)
	}
	if err := w.Append(testRecord()); err != nil {
		t.Fatalf("second Append() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if got := strings.Count(string(data), Header); got != 1 {
		t.Errorf("header appears %d times, want 1", got)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("store has %d lines, want 3", len(lines))
	}
}

func TestAppend_UnwritableParentFails(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root, permission checks are meaningless")
	}

	dir := t.TempDir()
	if err := os.Chmod(dir, 0555); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(dir, 0755)

	w := NewWriter(filepath.Join(dir, "sub", "logs.csv"))
	err := w.Append(testRecord())
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("Append() error = %v, want ErrPersistence", err)
	}
}

func TestQuote_DoublesEmbeddedQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `"plain"`},
		{`say "hi"`, `"say ""hi"""`},
		{``, `""`},
		{`a,b`, `"a,b"`},
	}

	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip_QuotedFieldsSurvive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.csv")
	w := NewWriter(path)

	rec := testRecord()
	rec.Intent = `Review the "final" spec, carefully`
	rec.Learned = `Quoting is "tricky"`

	if err := w.Append(rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	records, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ReadAll() returned %d records, want 1", len(records))
	}

	got := records[0]
	if got.Intent != rec.Intent {
		t.Errorf("Intent = %q, want %q", got.Intent, rec.Intent)
	}
	if got.Learned != rec.Learned {
		t.Errorf("Learned = %q, want %q", got.Learned, rec.Learned)
	}
	if got.Minutes != rec.Minutes {
		t.Errorf("Minutes = %d, want %d", got.Minutes, rec.Minutes)
	}
	if len(got.Websites) != 2 || got.Websites[0] != "mail.google.com" {
		t.Errorf("Websites = %v, want %v", got.Websites, rec.Websites)
	}
	if !got.Start.Equal(rec.Start) {
		t.Errorf("Start = %v, want %v", got.Start, rec.Start)
	}
}

func TestReadAll_MissingStore(t *testing.T) {
	records, err := ReadAll(filepath.Join(t.TempDir(), "absent.csv"))
	if err != nil {
		t.Errorf("ReadAll() error = %v, want nil for missing store", err)
	}
	if records != nil {
		t.Errorf("ReadAll() = %v, want nil", records)
	}
}

func TestReadAll_EmptyWebsites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.csv")
	w := NewWriter(path)

	rec := testRecord()
	rec.Websites = nil
	if err := w.Append(rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	records, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records[0].Websites) != 0 {
		t.Errorf("Websites = %v, want empty", records[0].Websites)
	}
}
