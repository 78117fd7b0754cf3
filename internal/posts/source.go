package posts

import (
	"context"

	"github.com/spacesedan/decisions/internal/models"
)

type FileSource struct {
	Path    string
	Columns Columns
}

func (s FileSource) Posts(context.Context) ([]models.Post, error) {
	return FromFile(s.Path, s.Columns)
}

func (s FileSource) String() string { return s.Path }

type SheetSource struct {
	Sheets  SheetExporter
	SheetID string
	Columns Columns
}

func (s SheetSource) Posts(ctx context.Context) ([]models.Post, error) {
	return FromSheet(ctx, s.Sheets, s.SheetID, s.Columns)
}

func (s SheetSource) String() string { return "Google Sheets" }
