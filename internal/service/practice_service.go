package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"worddee/internal/practice"
	"worddee/internal/validation"
)

// PracticeBackend is what the practice flow needs from the API
type PracticeBackend interface {
	practice.WordSource
	practice.SentenceChecker
}

// PracticeService drives practice sessions against the backend
type PracticeService struct {
	store   *practice.Store
	backend PracticeBackend
	logger  *zap.Logger
}

// NewPracticeService creates a new practice service
func NewPracticeService(store *practice.Store, backend PracticeBackend, logger *zap.Logger) *PracticeService {
	return &PracticeService{
		store:   store,
		backend: backend,
		logger:  logger,
	}
}

// Show returns the session state for rendering, fetching the first word if
// the session is new
func (s *PracticeService) Show(ctx context.Context, sessionID string) practice.Snapshot {
	sess := s.store.Get(sessionID)
	if err := sess.EnsureLoaded(detach(ctx), s.backend); err != nil {
		s.logFailure("initial word fetch failed", sessionID, err)
	}
	return sess.Snapshot()
}

// Submit validates the sentence locally, then sends it for feedback
func (s *PracticeService) Submit(ctx context.Context, sessionID, sentence string) error {
	sess := s.store.Get(sessionID)
	sentence = validation.NormalizeSentence(sentence)

	if err := validation.ValidateSentence(sentence); err != nil {
		if sentence == "" {
			return practice.ErrEmptySentence
		}
		var verr validation.ValidationError
		if errors.As(err, &verr) {
			_ = sess.Reject(sentence, verr.Message)
		}
		return err
	}

	err := sess.Submit(detach(ctx), s.backend, sentence)
	if err != nil {
		s.logFailure("sentence submission failed", sessionID, err)
	}
	return err
}

// Next moves the session on to a fresh word
func (s *PracticeService) Next(ctx context.Context, sessionID string) error {
	sess := s.store.Get(sessionID)
	err := sess.Next(detach(ctx), s.backend)
	if err != nil {
		s.logFailure("next word fetch failed", sessionID, err)
	}
	return err
}

func (s *PracticeService) logFailure(msg, sessionID string, err error) {
	switch {
	case errors.Is(err, practice.ErrBusy), errors.Is(err, practice.ErrNotReady):
		s.logger.Debug(msg, zap.String("session", sessionID), zap.Error(err))
	case errors.Is(err, practice.ErrStale):
		s.logger.Info(msg, zap.String("session", sessionID), zap.Error(err))
	default:
		s.logger.Warn(msg, zap.String("session", sessionID), zap.Error(err))
	}
}

// detach keeps a backend call alive when the browser goes away mid-request.
// The session lifetime and the HTTP client timeout still bound it.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
