package models

import "fmt"

// PostFailure records a post that contributed no comments.
type PostFailure struct {
	Post Post
	Err  error
}

func (f PostFailure) Error() string {
	return fmt.Sprintf("clip %s (%s): %v", f.Post.ID, f.Post.URL, f.Err)
}

func (f PostFailure) Unwrap() error { return f.Err }

// RecordFailure records a comment left without sentiment fields. Index is
// the record's position in the annotated slice.
type RecordFailure struct {
	Index     int
	CommentID string
	Err       error
}

func (f RecordFailure) Error() string {
	return fmt.Sprintf("comment %s: %v", f.CommentID, f.Err)
}

func (f RecordFailure) Unwrap() error { return f.Err }
