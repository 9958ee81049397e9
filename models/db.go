package models

import (
	"encoding/json"
	"time"
)

type Debate struct {
	ID        string    `db:"id" json:"id"`
	Char1     string    `db:"char1" json:"char1"`
	Char2     string    `db:"char2" json:"char2"`
	UserSide  string    `db:"user_side" json:"user_side"`
	AISide    string    `db:"ai_side" json:"ai_side"`
	Winner    string    `db:"winner" json:"winner"`
	Turns     string    `db:"turns" json:"turns"` // []string of "Speaker: text" lines as json
	TurnCount int       `db:"turn_count" json:"turn_count"`
	StartedAt time.Time `db:"started_at" json:"started_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (d *Debate) Lines() ([]string, error) {
	if d.Turns == "" {
		return nil, nil
	}
	lines := []string{}
	if err := json.Unmarshal([]byte(d.Turns), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (d *Debate) SetLines(lines []string) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	d.Turns = string(data)
	return nil
}

func (d *Debate) Finished() bool {
	return d.Winner != ""
}
