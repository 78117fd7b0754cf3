package sentiment

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/decisions/internal/models"
)

// AnnotateObserver receives a tick after every record.
type AnnotateObserver interface {
	RecordAnnotated(done, total int)
}

type AnnotateResult struct {
	Records  []models.CommentRecord
	Failures []models.RecordFailure
}

// Annotator runs both models over each comment. The models are built once by
// the caller and shared for the whole run.
type Annotator struct {
	polarity   *PolarityModel
	naiveBayes *NaiveBayesModel
	observer   AnnotateObserver
}

func NewAnnotator(polarity *PolarityModel, naiveBayes *NaiveBayesModel, observer AnnotateObserver) *Annotator {
	if observer == nil {
		observer = nopAnnotateObserver{}
	}
	return &Annotator{polarity: polarity, naiveBayes: naiveBayes, observer: observer}
}

// Score computes all four sentiment fields or none of them.
func (a *Annotator) Score(text string) (models.SentimentFields, error) {
	polarity, err := a.polarity.Score(text)
	if err != nil {
		return models.SentimentFields{}, fmt.Errorf("polarity: %w", err)
	}

	nb, err := a.naiveBayes.Classify(text)
	if err != nil {
		return models.SentimentFields{}, fmt.Errorf("naive bayes: %w", err)
	}

	return models.SentimentFields{
		Pattern:         PolarityLabel(polarity),
		PatternScore:    polarity,
		NaiveBayes:      nb.Label,
		NaiveBayesScore: nb.Score(),
	}, nil
}

// Annotate returns a copy of records, in the same order, with sentiment set
// on every record that could be scored. Records that could not be scored
// keep no sentiment at all and are listed in Failures.
func (a *Annotator) Annotate(records []models.CommentRecord) AnnotateResult {
	start := time.Now()
	result := AnnotateResult{Records: make([]models.CommentRecord, len(records))}
	copy(result.Records, records)

	for i := range result.Records {
		record := &result.Records[i]

		fields, err := a.Score(record.Comment)
		if err != nil {
			record.Sentiment = nil
			result.Failures = append(result.Failures, models.RecordFailure{
				Index:     i,
				CommentID: record.CommentID,
				Err:       err,
			})
			slog.Debug("[SentimentAnnotator] Left comment unscored",
				slog.String("comment_id", record.CommentID),
				slog.String("error", err.Error()))
		} else {
			record.Sentiment = &fields
		}

		a.observer.RecordAnnotated(i+1, len(result.Records))
	}

	slog.Info("[SentimentAnnotator] Finished scoring comments",
		slog.Int("comments", len(records)),
		slog.Int("unscored", len(result.Failures)),
		slog.Duration("elapsed", time.Since(start)))

	return result
}

type nopAnnotateObserver struct{}

func (nopAnnotateObserver) RecordAnnotated(int, int) {}
