// Package pipeline runs the report end to end: load posts, authenticate,
// fetch comments, score them and write the table. Each stage finishes
// before the next one starts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spacesedan/decisions/internal/models"
	"github.com/spacesedan/decisions/internal/processing"
	"github.com/spacesedan/decisions/internal/progress"
	"github.com/spacesedan/decisions/internal/sentiment"
)

// ErrNoComments means nothing was fetched, so there is no table to write.
var ErrNoComments = errors.New("no comments retrieved for any post")

type PostSource interface {
	Posts(ctx context.Context) ([]models.Post, error)
	String() string
}

type Authenticator interface {
	Authenticate(ctx context.Context) error
}

type Fetcher interface {
	Fetch(ctx context.Context, posts []models.Post) (processing.FetchResult, error)
}

type Annotator interface {
	Annotate(records []models.CommentRecord) sentiment.AnnotateResult
}

type Writer interface {
	Write(records []models.CommentRecord) error
	String() string
}

type Progress interface {
	LoadingPosts(source string)
	PostsLoaded(count int)
	Writing(destination string)
	Written(records int)
}

type Pipeline struct {
	Source        PostSource
	Authenticator Authenticator
	Fetcher       Fetcher
	Annotator     Annotator
	Writer        Writer
	Progress      Progress
}

type Summary struct {
	Posts          int
	Records        int
	PostFailures   []models.PostFailure
	RecordFailures []models.RecordFailure
	Output         string
}

func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	prog := p.Progress
	if prog == nil {
		prog = progress.Nop{}
	}

	prog.LoadingPosts(p.Source.String())
	posts, err := p.Source.Posts(ctx)
	if err != nil {
		return summary, fmt.Errorf("load posts from %s: %w", p.Source, err)
	}
	prog.PostsLoaded(len(posts))
	summary.Posts = len(posts)

	if err := p.Authenticator.Authenticate(ctx); err != nil {
		return summary, err
	}

	fetched, err := p.Fetcher.Fetch(ctx, posts)
	summary.PostFailures = fetched.Failures
	if err != nil {
		return summary, fmt.Errorf("fetch comments: %w", err)
	}
	if len(fetched.Records) == 0 {
		slog.Warn("[Pipeline] No comments retrieved",
			slog.Int("posts", len(posts)),
			slog.Int("failed_posts", len(fetched.Failures)))
		return summary, ErrNoComments
	}

	annotated := p.Annotator.Annotate(fetched.Records)
	summary.Records = len(annotated.Records)
	summary.RecordFailures = annotated.Failures

	prog.Writing(p.Writer.String())
	if err := p.Writer.Write(annotated.Records); err != nil {
		return summary, fmt.Errorf("write report to %s: %w", p.Writer, err)
	}
	prog.Written(len(annotated.Records))
	summary.Output = p.Writer.String()

	slog.Info("[Pipeline] Report written",
		slog.String("output", summary.Output),
		slog.Int("posts", summary.Posts),
		slog.Int("comments", summary.Records),
		slog.Int("failed_posts", len(summary.PostFailures)),
		slog.Int("unscored_comments", len(summary.RecordFailures)))

	return summary, nil
}
