package clients

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const SHEETS_EXPORT_URL = "https://docs.google.com/spreadsheets/d"

// SheetsClient downloads the CSV export of a publicly shared Google Sheet.
type SheetsClient struct {
	Client  *http.Client
	BaseURL string
}

func NewSheetsClient(timeout time.Duration) *SheetsClient {
	return &SheetsClient{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: SHEETS_EXPORT_URL,
	}
}

// ExportCSV returns the sheet body. The caller closes it.
func (s *SheetsClient) ExportCSV(ctx context.Context, sheetID string) (io.ReadCloser, error) {
	if strings.TrimSpace(sheetID) == "" {
		return nil, fmt.Errorf("%w: empty sheet id", ErrSheetExportFailed)
	}

	endpoint := fmt.Sprintf("%s/%s/export?format=csv", strings.TrimRight(s.BaseURL, "/"), url.PathEscape(sheetID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSheetExportFailed, err)
	}
	req.Header.Set("User-Agent", USER_AGENT)

	start := time.Now()
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSheetExportFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status code %d", ErrSheetExportFailed, resp.StatusCode)
	}

	slog.Debug("[SheetsClient] Sheet export fetched",
		slog.String("sheet_id", sheetID),
		slog.Duration("elapsed", time.Since(start)))
	return resp.Body, nil
}
