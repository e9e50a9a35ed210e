package practice

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"worddee/internal/models"
)

// Session is one learner's practice page. All methods are safe for
// concurrent use.
type Session struct {
	ID string

	// inFlight gates word fetches and submissions; at most one is
	// outstanding at a time
	inFlight atomic.Bool

	mu         sync.Mutex
	state      State
	word       *models.Word
	sentence   string
	feedback   *models.AIFeedback
	errMsg     string
	generation uint64
	closed     bool
	lastSeen   time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession creates a session in the initial Loading state
func NewSession(id string) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ID:       id,
		state:    StateLoading,
		lastSeen: time.Now(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// EnsureLoaded performs the initial word fetch the first time it is called.
// Later calls are no-ops, as is a call while the fetch is still in flight.
func (s *Session) EnsureLoaded(ctx context.Context, src WordSource) error {
	err := s.load(ctx, src, true)
	if err == ErrBusy || err == errLoaded {
		return nil
	}
	return err
}

// Load fetches a new word. Word, sentence, feedback and error are cleared
// before the request is issued.
func (s *Session) Load(ctx context.Context, src WordSource) error {
	return s.load(ctx, src, false)
}

// errLoaded reports that an initial load found a word already fetched
var errLoaded = errors.New("already loaded")

// load checks for a previous fetch under the in-flight gate, so two initial
// loads never both fetch
func (s *Session) load(ctx context.Context, src WordSource, initial bool) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStale
	}
	if initial && s.generation > 0 {
		s.mu.Unlock()
		return errLoaded
	}
	s.generation++
	gen := s.generation
	s.state = StateLoading
	s.word = nil
	s.sentence = ""
	s.feedback = nil
	s.errMsg = ""
	s.mu.Unlock()

	reqCtx, stop := s.requestContext(ctx)
	defer stop()

	word, err := src.GetWord(reqCtx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.generation != gen {
		return ErrStale
	}
	if err != nil {
		s.state = StateError
		s.errMsg = MsgFetchWord
		return err
	}
	s.word = word
	s.state = StateReady
	return nil
}

// Submit sends the trimmed sentence for the current word. A whitespace-only
// sentence never reaches the checker.
func (s *Session) Submit(ctx context.Context, checker SentenceChecker, sentence string) error {
	trimmed := strings.TrimSpace(sentence)
	if trimmed == "" {
		return ErrEmptySentence
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStale
	}
	if s.state != StateReady || s.word == nil {
		s.mu.Unlock()
		return ErrNotReady
	}
	wordID := s.word.ID
	gen := s.generation
	s.sentence = sentence
	s.errMsg = ""
	s.state = StateSubmitting
	s.mu.Unlock()

	reqCtx, stop := s.requestContext(ctx)
	defer stop()

	feedback, err := checker.ValidateSentence(reqCtx, wordID, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.generation != gen {
		return ErrStale
	}
	if err != nil {
		s.state = StateReady
		s.errMsg = submissionMessage(err)
		return err
	}
	s.feedback = feedback
	s.state = StateFeedback
	return nil
}

// Reject keeps a draft sentence that failed local validation, together with
// the message to show. It only applies in the Ready state.
func (s *Session) Reject(sentence, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state != StateReady {
		return ErrNotReady
	}
	s.sentence = sentence
	s.errMsg = message
	return nil
}

// Next advances to a new word from the Feedback or Error state
func (s *Session) Next(ctx context.Context, src WordSource) error {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	if state != StateFeedback && state != StateError {
		return ErrNotReady
	}
	return s.Load(ctx, src)
}

// Snapshot returns a copy of the session state
func (s *Session) Snapshot() Snapshot {
	inFlight := s.inFlight.Load()

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:    s.state,
		Sentence: s.sentence,
		Error:    s.errMsg,
		InFlight: inFlight,
	}
	if s.word != nil {
		w := *s.word
		snap.Word = &w
	}
	if s.feedback != nil {
		f := *s.feedback
		snap.Feedback = &f
	}
	snap.CanSubmit = s.state == StateReady && !inFlight
	return snap
}

// Close invalidates the session. In-flight requests are cancelled and their
// results discarded.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

// Closed reports whether Close has been called
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// requestContext derives a context that ends when either the caller's
// context or the session lifetime ends
func (s *Session) requestContext(ctx context.Context) (context.Context, func()) {
	reqCtx, cancel := context.WithCancel(ctx)
	stopAfter := context.AfterFunc(s.ctx, cancel)
	return reqCtx, func() {
		stopAfter()
		cancel()
	}
}
