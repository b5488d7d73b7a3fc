package domain

// ItemView is what a client sees of the current quiz item. The canonical
// answer is never included.
type ItemView struct {
	ID       string   `json:"id"`
	Level    int      `json:"level"`
	Type     QuizType `json:"type"`
	Problem  string   `json:"problem"`
	Options  []string `json:"options,omitempty"`
	Bank     []string `json:"bank,omitempty"`
	Selected []string `json:"selected,omitempty"`
	Choice   string   `json:"choice,omitempty"`
}

// SessionView is a snapshot of a play session after each action.
type SessionView struct {
	SessionID string       `json:"sessionId"`
	Language  string       `json:"language"`
	Index     int          `json:"index"`
	Total     int          `json:"total"`
	Item      *ItemView    `json:"item,omitempty"`
	CanSubmit bool         `json:"canSubmit"`
	Result    *ScoreResult `json:"result,omitempty"`
}
