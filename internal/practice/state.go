// Package practice holds the per-learner practice page state machine.
package practice

import (
	"context"
	"errors"

	"worddee/internal/models"
)

// State is a step of the practice flow
type State int

const (
	StateLoading State = iota
	StateReady
	StateSubmitting
	StateFeedback
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateFeedback:
		return "feedback"
	case StateError:
		return "error"
	}
	return "unknown"
}

var (
	// ErrBusy is returned when a word fetch or submission is already in flight
	ErrBusy = errors.New("a request is already in flight")
	// ErrEmptySentence is returned for a blank or whitespace-only sentence
	ErrEmptySentence = errors.New("sentence is empty")
	// ErrNotReady is returned when an action is not allowed in the current state
	ErrNotReady = errors.New("action not allowed in current state")
	// ErrStale is returned when a response arrived after the session moved on
	ErrStale = errors.New("result discarded: session moved on")
)

// User-facing messages
const (
	MsgFetchWord        = "Failed to fetch word"
	MsgValidationFailed = "Validation failed."
	MsgUnexpected       = "Something went wrong. Please try again."
)

// WordSource fetches the current word
type WordSource interface {
	GetWord(ctx context.Context) (*models.Word, error)
}

// SentenceChecker scores a sentence written for a word
type SentenceChecker interface {
	ValidateSentence(ctx context.Context, wordID int64, sentence string) (*models.AIFeedback, error)
}

// Snapshot is an immutable view of a session for rendering
type Snapshot struct {
	State     State
	Word      *models.Word
	Sentence  string
	Feedback  *models.AIFeedback
	Error     string
	InFlight  bool
	CanSubmit bool
}
