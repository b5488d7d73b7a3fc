package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"chaining-quiz-service/internal/domain"
	"chaining-quiz-service/internal/placement"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PoolRepository loads the quiz item pool for a language (from cache/backing store).
type PoolRepository interface {
	GetPool(ctx context.Context, language string) ([]domain.QuizItem, error)
}

// SessionRepository abstracts where live play sessions are kept (in-memory, Redis, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// ScoreStore persists finished placements keyed by language and user.
type ScoreStore interface {
	SaveScore(ctx context.Context, placement domain.Placement) error
	GetScore(ctx context.Context, language, userID string) (domain.Placement, error)
}

// PlacementService runs placement quizzes: selection on start, answer
// collection while playing, scoring and persistence on completion.
type PlacementService struct {
	pools    PoolRepository
	sessions SessionRepository
	scores   ScoreStore
	log      logrus.FieldLogger
	newRand  func() *rand.Rand
	now      func() time.Time
}

// Option customizes a PlacementService.
type Option func(*PlacementService)

// WithSeed makes selection and shuffling reproducible. Every session gets a
// source seeded with the same value.
func WithSeed(seed int64) Option {
	return func(s *PlacementService) {
		if seed != 0 {
			s.newRand = func() *rand.Rand { return placement.NewRand(seed) }
		}
	}
}

// WithClock overrides the time source used for completion timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *PlacementService) { s.now = now }
}

func NewPlacementService(pools PoolRepository, sessions SessionRepository, scores ScoreStore, log logrus.FieldLogger, opts ...Option) *PlacementService {
	s := &PlacementService{
		pools:    pools,
		sessions: sessions,
		scores:   scores,
		log:      log,
		newRand:  func() *rand.Rand { return placement.NewRand(0) },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start selects a quiz set from the language's pool and opens a session.
func (s *PlacementService) Start(ctx context.Context, language, userID string) (domain.SessionView, error) {
	pool, err := s.pools.GetPool(ctx, language)
	if err != nil {
		return domain.SessionView{}, fmt.Errorf("load pool %s: %w", language, err)
	}

	rnd := s.newRand()
	set := placement.SelectQuizSet(pool, rnd)
	session := NewSessionWithClock(uuid.NewString(), language, userID, placement.NewPlay(set, rnd), s.now)
	s.sessions.Put(session)

	s.log.WithFields(logrus.Fields{
		"session_id": session.id,
		"language":   language,
		"user_id":    userID,
		"pool_size":  len(pool),
		"items":      len(set),
	}).Info("placement quiz started")

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.play.Finished() {
		// Nothing to answer; score the empty set right away.
		if err := s.finishLocked(ctx, session); err != nil {
			return session.viewLocked(), err
		}
	}
	return session.viewLocked(), nil
}

// View returns the current state of a session.
func (s *PlacementService) View(_ context.Context, sessionID string) (domain.SessionView, error) {
	return s.mutate(sessionID, func(*placement.Play) error { return nil })
}

// Pick moves a word from the sentence bank into the answer.
func (s *PlacementService) Pick(_ context.Context, sessionID string, index int) (domain.SessionView, error) {
	return s.mutate(sessionID, func(p *placement.Play) error { return p.Pick(index) })
}

// Unpick returns a selected word to the sentence bank.
func (s *PlacementService) Unpick(_ context.Context, sessionID string, index int) (domain.SessionView, error) {
	return s.mutate(sessionID, func(p *placement.Play) error { return p.Unpick(index) })
}

// Select chooses the option of a multiple-choice or fill-in-the-blank item.
func (s *PlacementService) Select(_ context.Context, sessionID, option string) (domain.SessionView, error) {
	return s.mutate(sessionID, func(p *placement.Play) error { return p.Select(option) })
}

// Reset clears the answer being built for the current item.
func (s *PlacementService) Reset(_ context.Context, sessionID string) (domain.SessionView, error) {
	return s.mutate(sessionID, func(p *placement.Play) error { return p.Reset() })
}

// Submit records the current answer and advances. After the last item the
// play-through is scored, persisted and the session is closed.
func (s *PlacementService) Submit(ctx context.Context, sessionID string) (domain.SessionView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	// A finished but unpersisted session retries the save.
	if !session.play.Finished() {
		if err := session.play.Submit(); err != nil {
			return session.viewLocked(), err
		}
	}
	if session.play.Finished() {
		if err := s.finishLocked(ctx, session); err != nil {
			return session.viewLocked(), err
		}
	}
	return session.viewLocked(), nil
}

// Abandon drops an unfinished session without scoring it.
func (s *PlacementService) Abandon(_ context.Context, sessionID string) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	session.mu.Lock()
	finished := session.persisted
	session.mu.Unlock()
	if !finished {
		s.log.WithField("session_id", sessionID).Info("placement quiz abandoned")
	}
	s.sessions.Delete(sessionID)
}

// Placement returns the stored result for a user in a language.
func (s *PlacementService) Placement(ctx context.Context, language, userID string) (domain.Placement, error) {
	return s.scores.GetScore(ctx, language, userID)
}

func (s *PlacementService) mutate(sessionID string, fn func(*placement.Play) error) (domain.SessionView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	err := fn(session.play)
	return session.viewLocked(), err
}

// finishLocked must be called with session.mu held.
func (s *PlacementService) finishLocked(ctx context.Context, session *Session) error {
	if session.persisted {
		return nil
	}
	if session.result == nil {
		result, err := session.play.Result()
		if err != nil {
			return err
		}
		session.result = &result
	}

	entry := s.log.WithFields(logrus.Fields{
		"session_id":  session.id,
		"language":    session.language,
		"user_id":     session.userID,
		"total_score": session.result.TotalScore,
		"level":       session.result.Level,
	})
	err := s.scores.SaveScore(ctx, domain.Placement{
		Language:    session.language,
		UserID:      session.userID,
		Result:      *session.result,
		CompletedAt: s.now(),
	})
	if err != nil {
		entry.WithError(err).Error("failed to persist placement")
		return fmt.Errorf("save placement: %w", err)
	}
	session.persisted = true
	s.sessions.Delete(session.id)
	entry.Info("placement quiz completed")
	return nil
}

// IsClientError reports whether err was caused by the player's input rather
// than by the service or its backing stores.
func IsClientError(err error) bool {
	for _, target := range []error{
		domain.ErrSentenceIncomplete,
		domain.ErrNoSelection,
		domain.ErrWordNotInBank,
		domain.ErrOptionNotFound,
		domain.ErrWrongItemType,
		domain.ErrQuizFinished,
		domain.ErrSessionNotFound,
		domain.ErrPoolNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
