package clients

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var submissionIDPattern = regexp.MustCompile(`^[a-z0-9]{1,13}$`)

// SubmissionIDFromURL extracts the base36 submission id from a reddit
// permalink, a /comments/<id> link or a redd.it short link.
func SubmissionIDFromURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty url", ErrInvalidPostURL)
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPostURL, err)
	}

	host := strings.ToLower(u.Hostname())
	parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })

	var candidate string
	switch {
	case host == "redd.it":
		if len(parts) > 0 {
			candidate = parts[0]
		}
	case host == "reddit.com" || strings.HasSuffix(host, ".reddit.com"):
		for i, part := range parts {
			if (part == "comments" || part == "gallery") && i+1 < len(parts) {
				candidate = parts[i+1]
				break
			}
		}
	}

	candidate = strings.TrimPrefix(strings.ToLower(candidate), "t3_")
	if !submissionIDPattern.MatchString(candidate) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPostURL, raw)
	}
	return candidate, nil
}
