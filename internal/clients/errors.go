package clients

import "errors"

var (
	// ErrAuthentication is fatal for a whole run.
	ErrAuthentication = errors.New("reddit authentication failed")

	ErrInvalidPostURL    = errors.New("not a reddit submission url")
	ErrThreadNotFound    = errors.New("reddit thread not found")
	ErrMalformedResponse = errors.New("malformed reddit response")
	ErrSheetExportFailed = errors.New("sheet export failed")
)
