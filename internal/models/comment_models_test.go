package models_test

import (
	"testing"

	"github.com/spacesedan/decisions/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCommentRecordColumns(t *testing.T) {
	record := models.CommentRecord{}
	require.Equal(t, []string{
		"clip_id", "post_url", "comment_id", "commentor", "comment", "comment_score",
		"sentiment_pattern", "sentiment_pattern_score",
		"sentiment_naivebayes", "sentiment_naivebayes_score",
	}, record.Columns())

	cols := record.Columns()
	cols[0] = "mutated"
	require.Equal(t, "clip_id", record.Columns()[0])
}

func TestCommentRecordRow(t *testing.T) {
	author := "alice"
	record := models.CommentRecord{
		ClipID:       "1",
		PostURL:      "https://redd.it/abc",
		CommentID:    "c1",
		Commentor:    &author,
		Comment:      "I love this",
		CommentScore: 10,
	}

	row := record.Row()
	require.Len(t, row, len(record.Columns()))
	require.Equal(t, []string{"1", "https://redd.it/abc", "c1", "alice", "I love this", "10", "", "", "", ""}, row)
	require.False(t, record.Annotated())

	record.Commentor = nil
	record.Sentiment = &models.SentimentFields{
		Pattern:         models.SentimentPositive,
		PatternScore:    0.5,
		NaiveBayes:      models.SentimentNegative,
		NaiveBayesScore: -0.75,
	}

	row = record.Row()
	require.Equal(t, []string{"1", "https://redd.it/abc", "c1", "", "I love this", "10", "pos", "0.5", "neg", "-0.75"}, row)
	require.True(t, record.Annotated())
}
