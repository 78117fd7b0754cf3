package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/spacesedan/decisions/internal/models"
	"github.com/spacesedan/decisions/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	REDDIT_AUTH_URL = "https://www.reddit.com/api/v1/access_token"
	REDDIT_API_URL  = "https://oauth.reddit.com"

	// Reddit rejects /api/morechildren calls with more than 100 ids.
	MORE_CHILDREN_BATCH = 100
)

type RedditConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string

	AuthURL string
	APIURL  string

	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Timeout        time.Duration

	// Transport is the base round tripper for both token and API calls.
	Transport http.RoundTripper
}

type RedditClient struct {
	config     *clientcredentials.Config
	authCtx    context.Context
	apiURL     string
	userAgent  string
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	maxBackoff time.Duration

	mu     sync.Mutex
	client *http.Client
}

func NewRedditClient(cfg RedditConfig) *RedditClient {
	if cfg.AuthURL == "" {
		cfg.AuthURL = REDDIT_AUTH_URL
	}
	if cfg.APIURL == "" {
		cfg.APIURL = REDDIT_API_URL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = USER_AGENT
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = MAX_RETRIES
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = INITIAL_BACKOFF
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = MAX_BACKOFF
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}

	oauthConf := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.AuthURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	// Token requests go through the same transport so they carry the
	// User-Agent reddit insists on.
	base := &http.Client{
		Transport: &userAgentTransport{base: cfg.Transport, userAgent: cfg.UserAgent},
		Timeout:   cfg.Timeout,
	}

	return &RedditClient{
		config:     oauthConf,
		authCtx:    context.WithValue(context.Background(), oauth2.HTTPClient, base),
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		userAgent:  cfg.UserAgent,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.InitialBackoff,
		maxBackoff: cfg.MaxBackoff,
	}
}

// Authenticate fetches a fresh token. Every failure is reported as
// ErrAuthentication.
func (rc *RedditClient) Authenticate(ctx context.Context) error {
	if rc.config.ClientID == "" || rc.config.ClientSecret == "" {
		return fmt.Errorf("%w: missing client id or secret", ErrAuthentication)
	}

	tokenCtx, cancel := context.WithCancel(rc.authCtx)
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	defer cancel()

	token, err := rc.config.Token(tokenCtx)
	if err != nil {
		slog.Error("[RedditClient] Failed to obtain access token",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.client = rc.newHTTPClient(oauth2.ReuseTokenSource(token, rc.config.TokenSource(rc.authCtx)))

	slog.Info("[RedditClient] Authenticated",
		slog.Time("token_expiry", token.Expiry))
	return nil
}

func (rc *RedditClient) RefreshClient() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.client = rc.newHTTPClient(rc.config.TokenSource(rc.authCtx))
}

func (rc *RedditClient) newHTTPClient(ts oauth2.TokenSource) *http.Client {
	client := oauth2.NewClient(rc.authCtx, ts)
	client.Timeout = rc.timeout
	return client
}

func (rc *RedditClient) httpClient() *http.Client {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.client == nil {
		rc.client = rc.newHTTPClient(rc.config.TokenSource(rc.authCtx))
	}
	return rc.client
}

// FetchThread returns the top of the comment tree of a submission. Replies
// below the first level come back collapsed and are ignored by callers.
func (rc *RedditClient) FetchThread(ctx context.Context, submissionID string) ([]models.RedditThing, error) {
	query := url.Values{}
	query.Set("raw_json", "1")
	query.Set("limit", "500")
	query.Set("depth", "1")

	var listings []models.RedditListing
	if err := rc.get(ctx, "/comments/"+submissionID, query, &listings); err != nil {
		return nil, err
	}

	// [0] is the submission itself, [1] the comment tree.
	if len(listings) < 2 {
		return nil, fmt.Errorf("%w: expected 2 listings, got %d", ErrMalformedResponse, len(listings))
	}

	return listings[1].Data.Children, nil
}

// MoreChildren resolves placeholder child ids, batching to reddit's limit.
// The returned things are flattened and may include replies and further
// placeholders.
func (rc *RedditClient) MoreChildren(ctx context.Context, submissionID string, children []string) ([]models.RedditThing, error) {
	var things []models.RedditThing

	batches := utils.Batches(children, MORE_CHILDREN_BATCH)
	for i, batch := range batches {
		utils.LogBatchProcessing("morechildren", i, len(batches), len(batch))

		query := url.Values{}
		query.Set("api_type", "json")
		query.Set("link_id", models.RedditLinkPrefix+submissionID)
		query.Set("children", strings.Join(batch, ","))
		query.Set("limit_children", "false")
		query.Set("raw_json", "1")

		var resp models.RedditMoreChildrenResponse
		if err := rc.get(ctx, "/api/morechildren", query, &resp); err != nil {
			return nil, err
		}
		if len(resp.JSON.Errors) > 0 {
			return nil, fmt.Errorf("%w: morechildren errors %v", ErrMalformedResponse, resp.JSON.Errors)
		}

		things = append(things, resp.JSON.Data.Things...)
	}

	return things, nil
}

func (rc *RedditClient) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := rc.apiURL + path + "?" + query.Encode()
	backoff := rc.backoff
	refreshed := false

	for attempt := 1; ; attempt++ {
		status, body, err := rc.doOnce(ctx, endpoint)
		if err != nil {
			var retrieveErr *oauth2.RetrieveError
			if errors.As(err, &retrieveErr) {
				return fmt.Errorf("%w: %v", ErrAuthentication, err)
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if attempt >= rc.maxRetries {
				return fmt.Errorf("[RedditClient] request failed after %d attempts: %w", attempt, err)
			}
			slog.Warn("[RedditClient] Request failed, will retry",
				slog.String("path", path),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
		} else {
			switch {
			case status == http.StatusOK:
				if err := json.Unmarshal(body, out); err != nil {
					slog.Error("[RedditClient] Failed to unmarshal response",
						slog.String("path", path),
						slog.String("error", err.Error()),
						getPreview(body))
					return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
				}
				return nil
			case status == http.StatusUnauthorized:
				if refreshed {
					return fmt.Errorf("%w: status code %d after token refresh", ErrAuthentication, status)
				}
				slog.Warn("[RedditClient] Token expired - Refreshing and Retrying...")
				rc.RefreshClient()
				refreshed = true
				continue
			case status == http.StatusNotFound || status == http.StatusForbidden:
				return fmt.Errorf("%w: %s returned status code %d", ErrThreadNotFound, path, status)
			case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
				if attempt >= rc.maxRetries {
					return fmt.Errorf("[RedditClient] max retries reached, last status code %d", status)
				}
				slog.Warn("[RedditClient] Retrying request",
					slog.String("path", path),
					slog.Int("status", status),
					slog.Int("attempt", attempt),
					slog.Duration("backoff", backoff))
			default:
				return fmt.Errorf("[RedditClient] unexpected status code %d for %s", status, path)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, rc.maxBackoff)
	}
}

func (rc *RedditClient) doOnce(ctx context.Context, endpoint string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("User-Agent", rc.userAgent)

	resp, err := rc.httpClient().Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
