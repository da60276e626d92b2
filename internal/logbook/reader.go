package logbook

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ReadAll parses the log store at path into records, oldest first.
// A missing store yields an empty slice, not an error.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open log store: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 7

	// Skip the header line.
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read log header: %w", err)
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse log row: %w", err)
		}

		rec := Record{
			Intent:  row[0],
			Done:    row[4],
			Learned: row[5],
			Actions: row[6],
		}
		if minutes, err := strconv.Atoi(strings.TrimSpace(row[1])); err == nil {
			rec.Minutes = minutes
		}
		if row[2] != "" {
			rec.Websites = strings.Split(row[2], ",")
		}
		if start, err := time.ParseInLocation(TimeLayout, row[3], time.Local); err == nil {
			rec.Start = start
		}

		records = append(records, rec)
	}
	return records, nil
}
