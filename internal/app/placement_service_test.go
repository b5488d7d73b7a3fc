package app_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"chaining-quiz-service/internal/app"
	"chaining-quiz-service/internal/domain"
	"chaining-quiz-service/internal/infra/memory"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)

func TestStartSelectsOneItemPerSlot(t *testing.T) {
	ctx := context.Background()
	service, _, sessions := newTestService(t, memory.NewScoreStore())

	view, err := service.Start(ctx, "en", "u1")
	require.NoError(t, err)

	assert.NotEmpty(t, view.SessionID)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, 6, view.Total)
	require.NotNil(t, view.Item)
	assert.Equal(t, domain.SentenceOrder, view.Item.Type)
	assert.Equal(t, 1, view.Item.Level)
	assert.ElementsMatch(t, []string{"I", "like", "tea"}, view.Item.Bank)
	assert.False(t, view.CanSubmit)
	assert.Equal(t, 1, sessions.Len())
}

func TestStartUnknownLanguage(t *testing.T) {
	service, _, _ := newTestService(t, memory.NewScoreStore())

	_, err := service.Start(context.Background(), "xx", "u1")

	assert.ErrorIs(t, err, domain.ErrPoolNotFound)
	assert.True(t, app.IsClientError(err))
}

func TestSentenceIncompleteBlocksSubmit(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t, memory.NewScoreStore())
	view, err := service.Start(ctx, "en", "u1")
	require.NoError(t, err)

	view, err = service.Pick(ctx, view.SessionID, 0)
	require.NoError(t, err)
	assert.Len(t, view.Item.Selected, 1)

	view, err = service.Submit(ctx, view.SessionID)
	assert.ErrorIs(t, err, domain.ErrSentenceIncomplete)
	assert.Equal(t, 0, view.Index)
	assert.False(t, view.CanSubmit)

	view, err = service.Unpick(ctx, view.SessionID, 0)
	require.NoError(t, err)
	assert.Len(t, view.Item.Bank, 3)
}

func TestViewKeepsSentenceBankOrder(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t, memory.NewScoreStore())
	start, err := service.Start(ctx, "en", "u1")
	require.NoError(t, err)
	require.Equal(t, domain.SentenceOrder, start.Item.Type)
	bank := start.Item.Bank

	for i := 0; i < 3; i++ {
		view, err := service.View(ctx, start.SessionID)
		require.NoError(t, err)
		assert.Equal(t, bank, view.Item.Bank, "view %d", i)
	}

	last := len(bank) - 1
	view, err := service.Pick(ctx, start.SessionID, last)
	require.NoError(t, err)
	assert.Equal(t, []string{bank[last]}, view.Item.Selected)
	view, err = service.Unpick(ctx, start.SessionID, 0)
	require.NoError(t, err)
	assert.Equal(t, bank, view.Item.Bank)

	view, err = service.View(ctx, start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, bank, view.Item.Bank)
}

func TestFullPlayThroughPersistsScore(t *testing.T) {
	ctx := context.Background()
	scores := memory.NewScoreStore()
	service, _, sessions := newTestService(t, scores)

	view, err := service.Start(ctx, "en", "u1")
	require.NoError(t, err)
	sessionID := view.SessionID

	for view.Result == nil {
		view = answerCorrectly(t, service, view)
		view, err = service.Submit(ctx, sessionID)
		require.NoError(t, err)
	}

	// 3 items at level 1 and 3 at level 2, all correct.
	assert.Equal(t, domain.ScoreResult{TotalScore: 9, Level: 2}, *view.Result)
	assert.Nil(t, view.Item)
	assert.Equal(t, 0, sessions.Len())

	stored, err := service.Placement(ctx, "en", "u1")
	require.NoError(t, err)
	assert.Equal(t, *view.Result, stored.Result)
	assert.Equal(t, fixedNow, stored.CompletedAt)

	_, err = service.Submit(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSubmitRetriesFailedSave(t *testing.T) {
	ctx := context.Background()
	store := &flakyScoreStore{ScoreStore: memory.NewScoreStore(), failures: 1}
	service, _, _ := newTestService(t, store)

	view, err := service.Start(ctx, "en", "u1")
	require.NoError(t, err)
	for view.Index < view.Total-1 {
		view = answerCorrectly(t, service, view)
		view, err = service.Submit(ctx, view.SessionID)
		require.NoError(t, err)
	}
	view = answerCorrectly(t, service, view)

	failed, err := service.Submit(ctx, view.SessionID)
	require.Error(t, err)
	assert.False(t, app.IsClientError(err))
	assert.Nil(t, failed.Result)

	view, err = service.Submit(ctx, view.SessionID)
	require.NoError(t, err)
	require.NotNil(t, view.Result)
	assert.Equal(t, 9, view.Result.TotalScore)
}

func TestEmptyPoolScoresImmediately(t *testing.T) {
	ctx := context.Background()
	scores := memory.NewScoreStore()
	service, _, _ := newTestService(t, scores)

	view, err := service.Start(ctx, "empty", "u1")
	require.NoError(t, err)

	require.NotNil(t, view.Result)
	assert.Equal(t, domain.ScoreResult{}, *view.Result)
	assert.Equal(t, 0, view.Total)
}

func TestAbandonDiscardsSession(t *testing.T) {
	ctx := context.Background()
	service, _, sessions := newTestService(t, memory.NewScoreStore())
	view, err := service.Start(ctx, "en", "u1")
	require.NoError(t, err)

	service.Abandon(ctx, view.SessionID)

	assert.Equal(t, 0, sessions.Len())
	_, err = service.View(ctx, view.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = service.Placement(ctx, "en", "u1")
	assert.ErrorIs(t, err, domain.ErrPlacementNotFound)
}

func TestSeededServiceIsReproducible(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestService(t, memory.NewScoreStore())
	b, _, _ := newTestService(t, memory.NewScoreStore())

	va, err := a.Start(ctx, "en", "u1")
	require.NoError(t, err)
	vb, err := b.Start(ctx, "en", "u1")
	require.NoError(t, err)

	assert.Equal(t, va.Item, vb.Item)
}

// answerCorrectly fills the current draft with the canonical answer.
func answerCorrectly(t *testing.T, service *app.PlacementService, view domain.SessionView) domain.SessionView {
	t.Helper()
	ctx := context.Background()
	require.NotNil(t, view.Item)
	item := poolByID()[view.Item.ID]

	var err error
	if item.Type != domain.SentenceOrder {
		view, err = service.Select(ctx, view.SessionID, item.Answer)
		require.NoError(t, err)
		return view
	}
	for _, word := range item.Words() {
		idx := -1
		for i, w := range view.Item.Bank {
			if w == word {
				idx = i
				break
			}
		}
		require.GreaterOrEqual(t, idx, 0, "word %q missing from bank", word)
		view, err = service.Pick(ctx, view.SessionID, idx)
		require.NoError(t, err)
	}
	require.True(t, view.CanSubmit)
	return view
}

type flakyScoreStore struct {
	app.ScoreStore
	failures int
}

func (s *flakyScoreStore) SaveScore(ctx context.Context, placement domain.Placement) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("store unavailable")
	}
	return s.ScoreStore.SaveScore(ctx, placement)
}

func newTestService(t *testing.T, scores app.ScoreStore) (*app.PlacementService, *memory.PoolRepository, *memory.SessionStore) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	pools := memory.NewPoolRepository(memory.NewStaticPoolLoader(map[string][]domain.QuizItem{
		"en":    testPool(),
		"empty": {},
	}), 5*time.Minute)
	sessions := memory.NewSessionStore()
	service := app.NewPlacementService(pools, sessions, scores, log,
		app.WithSeed(42),
		app.WithClock(func() time.Time { return fixedNow }),
	)
	return service, pools, sessions
}

func testPool() []domain.QuizItem {
	return []domain.QuizItem{
		{ID: "s1", Level: 1, Type: domain.SentenceOrder, Problem: "Order the words", Answer: "I like tea"},
		{ID: "m1", Level: 1, Type: domain.MultipleChoice, Problem: "Pick the greeting", Options: []string{"Hello", "Chair"}, Answer: "Hello"},
		{ID: "f1", Level: 1, Type: domain.FillInTheBlank, Problem: "She ___ tea.", Options: []string{"drink", "drinks"}, Answer: "drinks"},
		{ID: "s2", Level: 2, Type: domain.SentenceOrder, Problem: "Order the words", Answer: "where is the station"},
		{ID: "m2", Level: 2, Type: domain.MultipleChoice, Problem: "Past of go", Options: []string{"goed", "went"}, Answer: "went"},
		{ID: "m2b", Level: 2, Type: domain.MultipleChoice, Problem: "Plural of child", Options: []string{"children", "childs"}, Answer: "children"},
		{ID: "f2", Level: 2, Type: domain.FillInTheBlank, Problem: "They ___ here yesterday.", Options: []string{"were", "was"}, Answer: "were"},
	}
}

func poolByID() map[string]domain.QuizItem {
	out := make(map[string]domain.QuizItem)
	for _, item := range testPool() {
		out[item.ID] = item
	}
	return out
}
