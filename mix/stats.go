package mix

import (
	"time"

	"github.com/joaomidowz/vargas-mix/models"
)

// ApplyMatchOutcome folds one completed fixture into a player's record.
// Draws count as a played match but touch neither wins, losses nor streak.
func ApplyMatchOutcome(p *models.Player, won, lost bool, playedAt time.Time) {
	p.MatchesPlayed++
	at := playedAt
	p.LastPlayed = &at

	switch {
	case won:
		p.Wins++
		p.CurrentStreak++
	case lost:
		p.Losses++
		p.CurrentStreak = 0
	}
}
