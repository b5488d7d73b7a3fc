package placement

import "chaining-quiz-service/internal/domain"

// Collector accumulates the answers of one play-through.
type Collector struct {
	answers domain.AnswerRecord
}

func NewCollector() *Collector {
	return &Collector{answers: make(domain.AnswerRecord)}
}

// RecordAnswer stores the raw answer for an item, replacing any earlier one.
func (c *Collector) RecordAnswer(itemID, answer string) {
	c.answers[itemID] = answer
}

func (c *Collector) IsAnswered(itemID string) bool {
	_, ok := c.answers[itemID]
	return ok
}

// Answers returns a copy of the record.
func (c *Collector) Answers() domain.AnswerRecord {
	out := make(domain.AnswerRecord, len(c.answers))
	for id, answer := range c.answers {
		out[id] = answer
	}
	return out
}

func (c *Collector) Len() int {
	return len(c.answers)
}
