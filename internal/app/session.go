package app

import (
	"sync"
	"time"

	"chaining-quiz-service/internal/domain"
	"chaining-quiz-service/internal/placement"
)

// Session is one user's placement play-through for a language.
type Session struct {
	id        string
	language  string
	userID    string
	createdAt time.Time

	mu        sync.Mutex
	play      *placement.Play
	result    *domain.ScoreResult
	persisted bool
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id, language, userID string, play *placement.Play) *Session {
	return NewSessionWithClock(id, language, userID, play, time.Now)
}

// NewSessionWithClock allows deterministic timestamps in tests.
func NewSessionWithClock(id, language, userID string, play *placement.Play, now func() time.Time) *Session {
	return &Session{
		id:        id,
		language:  language,
		userID:    userID,
		createdAt: now(),
		play:      play,
	}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Language() string     { return s.language }
func (s *Session) UserID() string       { return s.userID }
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// viewLocked must be called with s.mu held. The result is only exposed once
// it has been stored.
func (s *Session) viewLocked() domain.SessionView {
	view := domain.SessionView{
		SessionID: s.id,
		Language:  s.language,
		Index:     s.play.Index(),
		Total:     s.play.Len(),
		CanSubmit: s.play.CanSubmit(),
	}
	if s.persisted {
		view.Result = s.result
	}
	item, ok := s.play.Current()
	if !ok {
		return view
	}
	iv := &domain.ItemView{
		ID:      item.ID,
		Level:   item.Level,
		Type:    item.Type,
		Problem: item.Problem,
	}
	switch d := s.play.Draft().(type) {
	case *placement.SentenceDraft:
		iv.Bank = d.Bank()
		iv.Selected = d.Selected()
	case *placement.ChoiceDraft:
		iv.Options = d.Options()
		iv.Choice, _ = d.Selection()
	}
	view.Item = iv
	return view
}
