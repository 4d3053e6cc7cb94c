package models

import "time"

// MatchRecord is one row of the historical ledger. Created once per completed
// fixture and immutable afterwards, except for explicit deletion by an admin.
type MatchRecord struct {
	ID        string    `json:"id" db:"id"`
	Date      time.Time `json:"date" db:"date"`
	MapName   *string   `json:"map_name,omitempty" db:"map_name"`
	Team1Name string    `json:"team1_name" db:"team1_name"`
	Team2Name string    `json:"team2_name" db:"team2_name"`
	Score1    int       `json:"score1" db:"score1"`
	Score2    int       `json:"score2" db:"score2"`
	Roster1   string    `json:"roster1" db:"roster1"` // comma-joined player names
	Roster2   string    `json:"roster2" db:"roster2"`
}

// MapPlayCount is an aggregate row for the "most played maps" panel.
type MapPlayCount struct {
	MapName string `json:"map_name"`
	Count   int    `json:"count"`
}
