// Package posts reads the list of clips and their reddit threads from a CSV
// file or a Google Sheet export.
package posts

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spacesedan/decisions/internal/models"
)

var ErrMissingColumn = errors.New("missing column")

type Columns struct {
	ID  string
	URL string
}

// ReadPosts reads a CSV with a header row. Rows with an empty URL are dropped.
func ReadPosts(r io.Reader, cols Columns) ([]models.Post, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input, expected %q and %q", ErrMissingColumn, cols.ID, cols.URL)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idIdx, urlIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch name {
		case cols.ID:
			idIdx = i
		case cols.URL:
			urlIdx = i
		}
	}
	if idIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, cols.ID)
	}
	if urlIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, cols.URL)
	}

	var posts []models.Post
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		url := field(row, urlIdx)
		if url == "" {
			skipped++
			continue
		}
		posts = append(posts, models.Post{ID: field(row, idIdx), URL: url})
	}

	slog.Debug("[Posts] Read post list",
		slog.Int("posts", len(posts)),
		slog.Int("skipped_without_url", skipped))
	return posts, nil
}

func field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func FromFile(path string, cols Columns) ([]models.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ReadPosts(f, cols)
}

// SheetExporter is satisfied by clients.SheetsClient.
type SheetExporter interface {
	ExportCSV(ctx context.Context, sheetID string) (io.ReadCloser, error)
}

func FromSheet(ctx context.Context, sheets SheetExporter, sheetID string, cols Columns) ([]models.Post, error) {
	body, err := sheets.ExportCSV(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return ReadPosts(body, cols)
}
