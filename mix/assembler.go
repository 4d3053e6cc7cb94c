package mix

import (
	"math/rand"
	"sort"
	"time"

	"github.com/joaomidowz/vargas-mix/models"
)

// TeamSize is the squad cap for every mode except 1V1.
const TeamSize = 5

// Assemble partitions the selected players into teams.
//
// Locked players are pinned into team 0 (the anchor team). Everyone else goes
// through the rotation pool: subs first, then normals, each slice ordered by
// least-recently-played with never-played players up front. Ties on the
// recency key are broken by a shuffle driven by the supplied rng, so fairness
// noise is reproducible under a fixed seed.
//
// In 1V1 mode every selected player becomes a solo team and the 5-slot
// chunking is skipped entirely.
func Assemble(selected []models.Player, lockedIDs map[string]bool, mode models.GameMode, rng *rand.Rand) []models.Team {
	locked := make([]models.Player, 0, len(lockedIDs))
	pool := make([]models.Player, 0, len(selected))
	for _, p := range selected {
		if lockedIDs[p.ID] {
			locked = append(locked, p)
		} else {
			pool = append(pool, p)
		}
	}

	subs := make([]models.Player, 0)
	normals := make([]models.Player, 0, len(pool))
	for _, p := range pool {
		if p.IsSub {
			subs = append(subs, p)
		} else {
			normals = append(normals, p)
		}
	}
	sortByRecency(subs, rng)
	sortByRecency(normals, rng)

	// Subs rotate in before normals regardless of recency.
	ordered := append(subs, normals...)

	if mode == models.Mode1v1 {
		teams := make([]models.Team, 0, len(locked)+len(ordered))
		for _, p := range locked {
			teams = append(teams, models.Team{p})
		}
		for _, p := range ordered {
			teams = append(teams, models.Team{p})
		}
		return teams
	}

	anchor := models.Team(locked)
	fill := TeamSize - len(anchor)
	if fill > len(ordered) {
		fill = len(ordered)
	}
	if fill > 0 {
		anchor = append(anchor, ordered[:fill]...)
		ordered = ordered[fill:]
	}

	teams := []models.Team{anchor}
	for len(ordered) > 0 {
		n := TeamSize
		if n > len(ordered) {
			n = len(ordered)
		}
		teams = append(teams, models.Team(ordered[:n]))
		ordered = ordered[n:]
	}
	return teams
}

// recencyKey maps a player to their rotation sort key. Never-played players
// collapse onto the zero time, which sorts before any real timestamp.
func recencyKey(p models.Player) time.Time {
	if p.LastPlayed == nil {
		return time.Time{}
	}
	return *p.LastPlayed
}

// sortByRecency orders players least-recently-played first, then shuffles
// each run of equal keys in place.
func sortByRecency(players []models.Player, rng *rand.Rand) {
	sort.SliceStable(players, func(i, j int) bool {
		return recencyKey(players[i]).Before(recencyKey(players[j]))
	})
	for start := 0; start < len(players); {
		end := start + 1
		for end < len(players) && recencyKey(players[end]).Equal(recencyKey(players[start])) {
			end++
		}
		if run := players[start:end]; len(run) > 1 && rng != nil {
			rng.Shuffle(len(run), func(i, j int) {
				run[i], run[j] = run[j], run[i]
			})
		}
		start = end
	}
}
