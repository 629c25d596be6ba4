// internal/report/report.go

// Package report writes the tab-delimited report files produced by each
// tool: UTF-8, header row, one row per flagged genome. A report is fully
// rewritten each run under its fixed name.
package report

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Writer emits a tab-delimited report with a fixed column set.
type Writer struct {
	f       *os.File
	w       *bufio.Writer
	columns int
}

// Create opens (truncating) the report file and writes the header row.
func Create(path string, columns ...string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintln(w, strings.Join(columns, "\t")); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write report header: %w", err)
	}
	return &Writer{f: f, w: w, columns: len(columns)}, nil
}

// Row writes one data row. The field count must match the header.
func (r *Writer) Row(fields ...string) error {
	if len(fields) != r.columns {
		return fmt.Errorf("report row has %d fields, header has %d", len(fields), r.columns)
	}
	if _, err := fmt.Fprintln(r.w, strings.Join(fields, "\t")); err != nil {
		return fmt.Errorf("write report row: %w", err)
	}
	return nil
}

// Close flushes and closes the report file.
func (r *Writer) Close() error {
	if err := r.w.Flush(); err != nil {
		_ = r.f.Close()
		return fmt.Errorf("flush report: %w", err)
	}
	if err := r.f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}
