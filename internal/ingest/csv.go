// Package ingest reads PokerNow CSV session logs and yields their entries in
// chronological order. The export format stores newest entries first but
// carries an explicit order column; ascending order is the chronological
// contract the rest of the pipeline relies on.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Record is one log row: an opaque entry line, its timestamp string and its
// sequence position within the session.
type Record struct {
	Seq   int
	Entry string
	At    string
}

// ReadLog reads a PokerNow CSV log and returns its records sorted ascending
// by sequence position. Rows whose order column is not numeric sort to the
// front with position 0, matching the source format's own tooling.
func ReadLog(path string) ([]Record, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("ingest: open log: %w", err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("ingest: %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// ReadRecords parses CSV data with entry, at and order columns (any column
// order, extra columns ignored) and sorts the result chronologically.
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	entryIdx, atIdx, orderIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "entry":
			entryIdx = i
		case "at":
			atIdx = i
		case "order":
			orderIdx = i
		}
	}
	if entryIdx < 0 {
		return nil, fmt.Errorf("log has no entry column (header %v)", header)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rec := Record{Entry: field(row, entryIdx), At: field(row, atIdx)}
		if orderIdx >= 0 {
			if seq, err := strconv.Atoi(strings.TrimSpace(field(row, orderIdx))); err == nil {
				rec.Seq = seq
			}
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Seq < records[j].Seq })
	return records, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
