package models

import (
	"slices"
	"strconv"
)

type Post struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "pos"
	SentimentNegative SentimentLabel = "neg"
)

type SentimentFields struct {
	Pattern         SentimentLabel `json:"sentiment_pattern"`
	PatternScore    float64        `json:"sentiment_pattern_score"`
	NaiveBayes      SentimentLabel `json:"sentiment_naivebayes"`
	NaiveBayesScore float64        `json:"sentiment_naivebayes_score"`
}

// CommentRecord is one top-level comment on its way to the report. Commentor
// is nil for deleted or unknown authors; Sentiment is nil until annotated.
type CommentRecord struct {
	ClipID       string           `json:"clip_id"`
	PostURL      string           `json:"post_url"`
	CommentID    string           `json:"comment_id"`
	Commentor    *string          `json:"commentor"`
	Comment      string           `json:"comment"`
	CommentScore int              `json:"comment_score"`
	Sentiment    *SentimentFields `json:"sentiment,omitempty"`
}

var commentColumns = []string{
	"clip_id",
	"post_url",
	"comment_id",
	"commentor",
	"comment",
	"comment_score",
	"sentiment_pattern",
	"sentiment_pattern_score",
	"sentiment_naivebayes",
	"sentiment_naivebayes_score",
}

func (r CommentRecord) Columns() []string {
	return slices.Clone(commentColumns)
}

// Row returns the cell values in Columns order. Unset values are empty cells.
func (r CommentRecord) Row() []string {
	row := make([]string, 0, len(commentColumns))

	commentor := ""
	if r.Commentor != nil {
		commentor = *r.Commentor
	}
	row = append(row,
		r.ClipID,
		r.PostURL,
		r.CommentID,
		commentor,
		r.Comment,
		strconv.Itoa(r.CommentScore),
	)

	if r.Sentiment == nil {
		return append(row, "", "", "", "")
	}
	return append(row,
		string(r.Sentiment.Pattern),
		formatScore(r.Sentiment.PatternScore),
		string(r.Sentiment.NaiveBayes),
		formatScore(r.Sentiment.NaiveBayesScore),
	)
}

func (r CommentRecord) Annotated() bool {
	return r.Sentiment != nil
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
