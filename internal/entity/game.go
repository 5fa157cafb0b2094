package entity

import "time"

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDrawn      Status = "drawn"
)

func (that Status) IsTerminal() bool {
	return that == StatusWon || that == StatusDrawn
}

// Result is the summary of a finished game.
type Result struct {
	ID         string    `json:"id"`
	Variant    string    `json:"variant"`
	Status     Status    `json:"status"`
	Winner     *Player   `json:"winner,omitempty"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

func (that *Result) IsDraw() bool {
	return that.Status == StatusDrawn
}

// Tally counts finished games of one variant.
type Tally struct {
	X     int `json:"x"`
	O     int `json:"o"`
	Draws int `json:"draws"`
}

func (that Tally) Games() int {
	return that.X + that.O + that.Draws
}
