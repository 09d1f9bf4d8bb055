package writer

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/relaxmesh/stencil/pkg/model"
)

// CSVWriter writes benchmark Results as CSV lines, one per run, matching
// the harness's field order exactly (see model.Result.CSVRow).
type CSVWriter struct{}

// NewCSVWriter creates a new CSV writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Write appends a single result row, newline-terminated, to out.
func (w *CSVWriter) Write(result model.Result, out io.Writer) error {
	_, err := fmt.Fprintln(out, result.CSVRow())
	return err
}

// WriteAll appends every result in results, in order, to out.
func (w *CSVWriter) WriteAll(results []model.Result, out io.Writer) error {
	buffered := bufio.NewWriter(out)
	for _, r := range results {
		if _, err := fmt.Fprintln(buffered, r.CSVRow()); err != nil {
			return err
		}
	}
	return buffered.Flush()
}

// AppendToFile opens path for appending (creating it if necessary) and
// writes result as one CSV line.
func (w *CSVWriter) AppendToFile(result model.Result, path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	return w.Write(result, file)
}
