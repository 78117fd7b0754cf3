// Package report writes annotated comment records as a CSV table.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spacesedan/decisions/internal/models"
)

var ErrNoRecords = errors.New("no records to write")

// FileWriter writes the report to Path.
type FileWriter struct {
	Path string
}

func (w FileWriter) Write(records []models.CommentRecord) error {
	return WriteFile(w.Path, records)
}

func (w FileWriter) String() string { return w.Path }

// WriteCSV uses the first record's columns as the header. CommentRecord has
// a fixed column set, so every row lines up with it.
func WriteCSV(w io.Writer, records []models.CommentRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	header := records[0].Columns()
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, record := range records {
		if err := writer.Write(record.Row()); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile only creates the file once there is something to write.
func WriteFile(path string, records []models.CommentRecord) (err error) {
	if len(records) == 0 {
		return ErrNoRecords
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	return WriteCSV(f, records)
}
