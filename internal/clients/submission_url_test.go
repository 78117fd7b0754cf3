package clients_test

import (
	"testing"

	"github.com/spacesedan/decisions/internal/clients"
	"github.com/stretchr/testify/require"
)

func TestSubmissionIDFromURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "permalink", input: "https://www.reddit.com/r/golang/comments/abc123/some_title/", want: "abc123"},
		{name: "old reddit", input: "https://old.reddit.com/r/golang/comments/ABC123/", want: "abc123"},
		{name: "no scheme", input: "reddit.com/comments/xyz9", want: "xyz9"},
		{name: "comment permalink", input: "https://www.reddit.com/r/x/comments/abc123/title/def456/", want: "abc123"},
		{name: "short link", input: "https://redd.it/abc123", want: "abc123"},
		{name: "gallery", input: "https://www.reddit.com/gallery/q1w2e3", want: "q1w2e3"},
		{name: "query string", input: " https://www.reddit.com/r/x/comments/abc123/?utm_source=share ", want: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := clients.SubmissionIDFromURL(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSubmissionIDFromURLRejects(t *testing.T) {
	for _, input := range []string{
		"",
		"bad-url",
		"https://example.com/r/x/comments/abc123/",
		"https://www.reddit.com/r/golang/",
		"https://www.reddit.com/r/x/comments/",
		"https://redd.it/",
		"https://www.reddit.com/r/x/comments/not-an-id/",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := clients.SubmissionIDFromURL(input)
			require.ErrorIs(t, err, clients.ErrInvalidPostURL)
		})
	}
}
