package processing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/decisions/internal/clients"
	"github.com/spacesedan/decisions/internal/models"
)

// ThreadSource is the part of the reddit client the fetcher needs.
type ThreadSource interface {
	FetchThread(ctx context.Context, submissionID string) ([]models.RedditThing, error)
	MoreChildren(ctx context.Context, submissionID string, children []string) ([]models.RedditThing, error)
}

// FetchObserver receives per-post progress.
type FetchObserver interface {
	PostStarted(post models.Post)
	PostFetched(post models.Post, comments int)
	PostFailed(post models.Post, err error)
}

type FetchResult struct {
	Records  []models.CommentRecord
	Failures []models.PostFailure
}

type CommentFetcher struct {
	source   ThreadSource
	observer FetchObserver
}

func NewCommentFetcher(source ThreadSource, observer FetchObserver) *CommentFetcher {
	if observer == nil {
		observer = nopFetchObserver{}
	}
	return &CommentFetcher{source: source, observer: observer}
}

// Fetch retrieves every top-level comment of each post, one post at a time
// and in input order. A post that cannot be fetched becomes a PostFailure and
// contributes no records. Authentication failures and context cancellation
// stop the run and are returned with the records gathered so far.
func (f *CommentFetcher) Fetch(ctx context.Context, posts []models.Post) (FetchResult, error) {
	var result FetchResult
	start := time.Now()

	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		f.observer.PostStarted(post)

		records, err := f.fetchPost(ctx, post)
		if err != nil {
			if errors.Is(err, clients.ErrAuthentication) || ctx.Err() != nil {
				return result, err
			}

			slog.Warn("[CommentFetcher] Skipping post",
				slog.String("clip_id", post.ID),
				slog.String("url", post.URL),
				slog.String("error", err.Error()))
			f.observer.PostFailed(post, err)
			result.Failures = append(result.Failures, models.PostFailure{Post: post, Err: err})
			continue
		}

		f.observer.PostFetched(post, len(records))
		result.Records = append(result.Records, records...)
	}

	slog.Info("[CommentFetcher] Finished fetching comments",
		slog.Int("posts", len(posts)),
		slog.Int("comments", len(result.Records)),
		slog.Int("failed_posts", len(result.Failures)),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

func (f *CommentFetcher) fetchPost(ctx context.Context, post models.Post) ([]models.CommentRecord, error) {
	submissionID, err := clients.SubmissionIDFromURL(post.URL)
	if err != nil {
		return nil, err
	}

	things, err := f.source.FetchThread(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("fetch thread %s: %w", submissionID, err)
	}

	tree := newTopLevelTree(post, models.RedditLinkPrefix+submissionID)
	if err := tree.add(things); err != nil {
		return nil, err
	}

	// Placeholders can resolve into further placeholders; keep going until
	// none are left.
	for rounds := 1; len(tree.pending) > 0; rounds++ {
		children := tree.pending
		tree.pending = nil

		slog.Debug("[CommentFetcher] Expanding placeholders",
			slog.String("clip_id", post.ID),
			slog.Int("round", rounds),
			slog.Int("children", len(children)))

		things, err := f.source.MoreChildren(ctx, submissionID, children)
		if err != nil {
			return nil, fmt.Errorf("expand placeholders for %s: %w", submissionID, err)
		}
		if err := tree.add(things); err != nil {
			return nil, err
		}
	}

	return tree.records, nil
}

// topLevelTree accumulates the direct children of one submission.
type topLevelTree struct {
	post      models.Post
	linkName  string
	records   []models.CommentRecord
	pending   []string
	seen      map[string]struct{}
	requested map[string]struct{}
}

func newTopLevelTree(post models.Post, linkName string) *topLevelTree {
	return &topLevelTree{
		post:      post,
		linkName:  linkName,
		seen:      make(map[string]struct{}),
		requested: make(map[string]struct{}),
	}
}

func (t *topLevelTree) add(things []models.RedditThing) error {
	for _, thing := range things {
		switch thing.Kind {
		case models.RedditKindComment:
			var comment models.RedditComment
			if err := json.Unmarshal(thing.Data, &comment); err != nil {
				return fmt.Errorf("%w: comment: %v", clients.ErrMalformedResponse, err)
			}
			if comment.ParentID != t.linkName {
				continue
			}
			if _, ok := t.seen[comment.ID]; ok {
				continue
			}
			t.seen[comment.ID] = struct{}{}
			t.records = append(t.records, t.record(comment))

		case models.RedditKindMore:
			var more models.RedditMore
			if err := json.Unmarshal(thing.Data, &more); err != nil {
				return fmt.Errorf("%w: placeholder: %v", clients.ErrMalformedResponse, err)
			}
			if more.ParentID != t.linkName {
				continue
			}
			for _, child := range more.Children {
				if _, ok := t.requested[child]; ok {
					continue
				}
				t.requested[child] = struct{}{}
				t.pending = append(t.pending, child)
			}
		}
	}
	return nil
}

func (t *topLevelTree) record(c models.RedditComment) models.CommentRecord {
	return models.CommentRecord{
		ClipID:       t.post.ID,
		PostURL:      t.post.URL,
		CommentID:    c.ID,
		Commentor:    commentor(c.Author),
		Comment:      c.Body,
		CommentScore: c.Score,
	}
}

func commentor(author string) *string {
	if author == "" || author == "[deleted]" {
		return nil
	}
	return &author
}

type nopFetchObserver struct{}

func (nopFetchObserver) PostStarted(models.Post)       {}
func (nopFetchObserver) PostFetched(models.Post, int)  {}
func (nopFetchObserver) PostFailed(models.Post, error) {}
