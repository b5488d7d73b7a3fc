package placement

import (
	"math/rand"
	"strings"

	"chaining-quiz-service/internal/domain"
)

// Draft is the in-progress answer for the current quiz item.
type Draft interface {
	// Answer is the string that will be recorded on submit.
	Answer() string
	// Ready is the "submit enabled" predicate.
	Ready() bool
	// Check returns the reason submission is blocked, or nil.
	Check() error
}

// NewDraft builds the draft that matches the item's type. Sentence banks are
// shuffled here, once per item.
func NewDraft(item domain.QuizItem, rnd *rand.Rand) Draft {
	if item.Type == domain.SentenceOrder {
		return NewSentenceDraft(item, rnd)
	}
	return NewChoiceDraft(item)
}

// SentenceDraft assembles a sentence from a shuffled word bank.
type SentenceDraft struct {
	shuffled []string
	bank     []string
	selected []string
}

func NewSentenceDraft(item domain.QuizItem, rnd *rand.Rand) *SentenceDraft {
	words := item.Words()
	rnd.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	d := &SentenceDraft{shuffled: words}
	d.Reset()
	return d
}

// Bank returns the words not yet used.
func (d *SentenceDraft) Bank() []string {
	return append([]string(nil), d.bank...)
}

// Selected returns the chosen words in selection order.
func (d *SentenceDraft) Selected() []string {
	return append([]string(nil), d.selected...)
}

// Pick moves bank word i to the end of the selection.
func (d *SentenceDraft) Pick(i int) error {
	if i < 0 || i >= len(d.bank) {
		return domain.ErrWordNotInBank
	}
	d.selected = append(d.selected, d.bank[i])
	d.bank = append(d.bank[:i], d.bank[i+1:]...)
	return nil
}

// Unpick returns selected word i to the end of the bank.
func (d *SentenceDraft) Unpick(i int) error {
	if i < 0 || i >= len(d.selected) {
		return domain.ErrWordNotInBank
	}
	d.bank = append(d.bank, d.selected[i])
	d.selected = append(d.selected[:i], d.selected[i+1:]...)
	return nil
}

// Reset puts every word back in the bank in its original shuffled order.
func (d *SentenceDraft) Reset() {
	d.bank = append(make([]string, 0, len(d.shuffled)), d.shuffled...)
	d.selected = make([]string, 0, len(d.shuffled))
}

func (d *SentenceDraft) Answer() string {
	return strings.Join(d.selected, " ")
}

func (d *SentenceDraft) Ready() bool {
	return len(d.bank) == 0
}

func (d *SentenceDraft) Check() error {
	if !d.Ready() {
		return domain.ErrSentenceIncomplete
	}
	return nil
}

// ChoiceDraft holds the single selection of a multiple-choice or
// fill-in-the-blank item.
type ChoiceDraft struct {
	options  []string
	selected string
	chosen   bool
}

func NewChoiceDraft(item domain.QuizItem) *ChoiceDraft {
	return &ChoiceDraft{options: item.Options}
}

// Options returns the candidates in display order.
func (d *ChoiceDraft) Options() []string {
	return append([]string(nil), d.options...)
}

// Select replaces the current selection.
func (d *ChoiceDraft) Select(option string) error {
	for _, candidate := range d.options {
		if candidate == option {
			d.selected = option
			d.chosen = true
			return nil
		}
	}
	return domain.ErrOptionNotFound
}

// Selection returns the selected option and whether one is set.
func (d *ChoiceDraft) Selection() (string, bool) {
	return d.selected, d.chosen
}

func (d *ChoiceDraft) Reset() {
	d.selected = ""
	d.chosen = false
}

func (d *ChoiceDraft) Answer() string {
	return d.selected
}

func (d *ChoiceDraft) Ready() bool {
	return d.chosen
}

func (d *ChoiceDraft) Check() error {
	if !d.chosen {
		return domain.ErrNoSelection
	}
	return nil
}
