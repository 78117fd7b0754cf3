package main

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const threadJSON = `[
	{"kind": "Listing", "data": {"children": [{"kind": "t3", "data": {"id": "abc"}}]}},
	{"kind": "Listing", "data": {"children": [
		{"kind": "t1", "data": {"id": "c1", "parent_id": "t3_abc", "author": "alice", "body": "I love this", "score": 10}},
		{"kind": "t1", "data": {"id": "c2", "parent_id": "t1_c1", "author": "bob", "body": "reply", "score": 1}}
	]}}
]`

const emptyThreadJSON = `[
	{"kind": "Listing", "data": {"children": []}},
	{"kind": "Listing", "data": {"children": []}}
]`

func fakeReddit(t *testing.T, tokenStatus int, thread string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		if tokenStatus != http.StatusOK {
			w.WriteHeader(tokenStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "tok", "token_type": "bearer", "expires_in": 3600}`)
	})
	mux.HandleFunc("/comments/abc", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, thread)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupEnv(t *testing.T, srv *httptest.Server) (input, output string) {
	dir := t.TempDir()
	input = filepath.Join(dir, "posts.csv")
	output = filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(input, []byte("clip,url\n1,https://www.reddit.com/r/test/comments/abc/title/\n2,\n"), 0o644))

	t.Setenv("APP_ENV", "test")
	t.Setenv("REDDIT_CLIENT_ID", "id")
	t.Setenv("REDDIT_CLIENT_SECRET", "secret")
	t.Setenv("REDDIT_MAX_RETRIES", "1")
	t.Setenv("ID_COLUMN", "clip")
	t.Setenv("URL_COLUMN", "url")
	for _, key := range []string{"INPUT_FILE", "OUTPUT_FILE", "HTTP_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	if srv != nil {
		t.Setenv("REDDIT_AUTH_URL", srv.URL+"/api/v1/access_token")
		t.Setenv("REDDIT_API_URL", srv.URL)
	}
	return input, output
}

func TestRunWritesReport(t *testing.T) {
	input, output := setupEnv(t, fakeReddit(t, http.StatusOK, threadJSON))

	require.Equal(t, exitOK, run([]string{"-input", input, "-output", output}))

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "clip_id", rows[0][0])
	require.Equal(t, []string{"1", "https://www.reddit.com/r/test/comments/abc/title/", "c1", "alice", "I love this", "10"}, rows[1][:6])
	require.Equal(t, "pos", rows[1][6])
}

func TestRunNoComments(t *testing.T) {
	input, output := setupEnv(t, fakeReddit(t, http.StatusOK, emptyThreadJSON))

	require.Equal(t, exitNoComments, run([]string{"-input", input, "-output", output}))
	require.NoFileExists(t, output)
}

func TestRunAuthenticationFailure(t *testing.T) {
	input, output := setupEnv(t, fakeReddit(t, http.StatusUnauthorized, threadJSON))

	require.Equal(t, exitFatal, run([]string{"-input", input, "-output", output}))
	require.NoFileExists(t, output)
}

func TestRunUsageErrors(t *testing.T) {
	input, _ := setupEnv(t, nil)

	require.Equal(t, exitUsage, run([]string{"-no-such-flag"}))
	require.Equal(t, exitOK, run([]string{"-h"}))

	t.Setenv("REDDIT_MAX_RETRIES", "ten")
	require.Equal(t, exitUsage, run([]string{"-input", input}))
	t.Setenv("REDDIT_MAX_RETRIES", "1")
	t.Setenv("HTTP_TIMEOUT", "30")
	require.Equal(t, exitUsage, run([]string{"-input", input}))
	t.Setenv("HTTP_TIMEOUT", "30s")

	t.Setenv("REDDIT_CLIENT_SECRET", "")
	require.Equal(t, exitUsage, run([]string{"-input", input}))
	require.Equal(t, exitUsage, run([]string{"-input", input, "-client-id", "id"}))
}
