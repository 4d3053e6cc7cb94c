package models

import (
	"strings"
	"time"
)

// championNameTokens is the legacy naming convention for spotting the house
// champion. Kept as a migration default for rosters created before the
// explicit is_champion flag existed.
var championNameTokens = []string{"vargas", "vargão"}

type Player struct {
	ID            string     `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Rating        int        `json:"rating" db:"rating"` // cosmetic 1..5, never used for balancing
	MatchesPlayed int        `json:"matches_played" db:"matches_played"`
	Wins          int        `json:"wins" db:"wins"`
	Losses        int        `json:"losses" db:"losses"`
	CurrentStreak int        `json:"current_streak" db:"current_streak"`
	IsSub         bool       `json:"is_sub" db:"is_sub"`
	IsChampion    bool       `json:"is_champion" db:"is_champion"`
	LastPlayed    *time.Time `json:"last_played,omitempty" db:"last_played"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// IsChampionPlayer reports whether this player is the designated champion,
// honoring both the explicit flag and the legacy name heuristic.
func (p Player) IsChampionPlayer() bool {
	if p.IsChampion {
		return true
	}
	lower := strings.ToLower(p.Name)
	for _, token := range championNameTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// Winrate returns the share of decided matches this player won, in [0,1].
// Draws are excluded from the denominator.
func (p Player) Winrate() float64 {
	total := p.Wins + p.Losses
	if total == 0 {
		return 0
	}
	return float64(p.Wins) / float64(total)
}
