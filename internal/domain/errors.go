package domain

import "errors"

var (
	// ErrPoolNotFound is returned when no quiz items exist for a language.
	ErrPoolNotFound = errors.New("quiz pool not found")
	// ErrSessionNotFound is returned when a play session is unknown or already closed.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrPlacementNotFound is returned when a user has no stored score for a language.
	ErrPlacementNotFound = errors.New("placement not found")
	// ErrInvalidItem marks a quiz item the engine cannot use.
	ErrInvalidItem = errors.New("invalid quiz item")

	// ErrSentenceIncomplete blocks submission while sentence words remain in the bank.
	ErrSentenceIncomplete = errors.New("sentence incomplete")
	// ErrNoSelection blocks submission of a choice item with nothing selected.
	ErrNoSelection = errors.New("no option selected")
	// ErrWordNotInBank indicates a pick/unpick index outside the current words.
	ErrWordNotInBank = errors.New("word not available")
	// ErrOptionNotFound indicates a selected option the item does not offer.
	ErrOptionNotFound = errors.New("option not found")
	// ErrWrongItemType indicates an action that does not apply to the current item.
	ErrWrongItemType = errors.New("action does not apply to this item type")
	// ErrQuizFinished is returned when acting on a play-through with no items left.
	ErrQuizFinished = errors.New("quiz already finished")
	// ErrQuizInProgress is returned when asking for a result before the last item.
	ErrQuizInProgress = errors.New("quiz still in progress")
)
