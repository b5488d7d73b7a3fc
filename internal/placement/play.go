package placement

import (
	"math/rand"

	"chaining-quiz-service/internal/domain"
)

// Play is one linear play-through of a quiz set. It is not safe for
// concurrent use; a play belongs to a single session.
type Play struct {
	set       domain.QuizSet
	pos       int
	collector *Collector
	draft     Draft
	rnd       *rand.Rand
}

// NewPlay starts at the first item of set. rnd shuffles sentence banks.
func NewPlay(set domain.QuizSet, rnd *rand.Rand) *Play {
	p := &Play{set: set, collector: NewCollector(), rnd: rnd}
	p.prepare()
	return p
}

func (p *Play) prepare() {
	if p.pos < len(p.set) {
		p.draft = NewDraft(p.set[p.pos], p.rnd)
		return
	}
	p.draft = nil
}

func (p *Play) Set() domain.QuizSet { return p.set }
func (p *Play) Index() int          { return p.pos }
func (p *Play) Len() int            { return len(p.set) }
func (p *Play) Finished() bool      { return p.pos >= len(p.set) }

// Current returns the item being answered.
func (p *Play) Current() (domain.QuizItem, bool) {
	if p.Finished() {
		return domain.QuizItem{}, false
	}
	return p.set[p.pos], true
}

// Draft returns the in-progress answer for the current item, nil when finished.
func (p *Play) Draft() Draft { return p.draft }

// Answers returns a copy of the answers recorded so far.
func (p *Play) Answers() domain.AnswerRecord { return p.collector.Answers() }

// CanSubmit reports whether the current draft may be submitted.
func (p *Play) CanSubmit() bool {
	return p.draft != nil && p.draft.Ready()
}

// Pick moves bank word i of the current sentence into the answer.
func (p *Play) Pick(i int) error {
	d, err := p.sentence()
	if err != nil {
		return err
	}
	return d.Pick(i)
}

// Unpick returns selected word i of the current sentence to the bank.
func (p *Play) Unpick(i int) error {
	d, err := p.sentence()
	if err != nil {
		return err
	}
	return d.Unpick(i)
}

// Select chooses an option of the current choice item.
func (p *Play) Select(option string) error {
	if p.draft == nil {
		return domain.ErrQuizFinished
	}
	d, ok := p.draft.(*ChoiceDraft)
	if !ok {
		return domain.ErrWrongItemType
	}
	return d.Select(option)
}

// Reset clears the current draft.
func (p *Play) Reset() error {
	switch d := p.draft.(type) {
	case nil:
		return domain.ErrQuizFinished
	case *SentenceDraft:
		d.Reset()
	case *ChoiceDraft:
		d.Reset()
	}
	return nil
}

// Submit records the current draft and moves to the next item. A blocked
// draft leaves the play where it is.
func (p *Play) Submit() error {
	item, ok := p.Current()
	if !ok {
		return domain.ErrQuizFinished
	}
	if err := p.draft.Check(); err != nil {
		return err
	}
	p.collector.RecordAnswer(item.ID, p.draft.Answer())
	p.pos++
	p.prepare()
	return nil
}

// Result scores the play-through once every item has been answered.
func (p *Play) Result() (domain.ScoreResult, error) {
	if !p.Finished() {
		return domain.ScoreResult{}, domain.ErrQuizInProgress
	}
	return ComputeScore(p.set, p.collector.answers), nil
}

func (p *Play) sentence() (*SentenceDraft, error) {
	if p.draft == nil {
		return nil, domain.ErrQuizFinished
	}
	d, ok := p.draft.(*SentenceDraft)
	if !ok {
		return nil, domain.ErrWrongItemType
	}
	return d, nil
}
