package mix_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/joaomidowz/vargas-mix/mix"
	"github.com/joaomidowz/vargas-mix/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayer(id, name string) models.Player {
	return models.Player{ID: id, Name: name}
}

func playedAt(p models.Player, t time.Time) models.Player {
	p.LastPlayed = &t
	return p
}

func asSub(p models.Player) models.Player {
	p.IsSub = true
	return p
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestAssembleLockedPlayersAnchorTeamZero(t *testing.T) {
	selected := []models.Player{
		newPlayer("a", "Ana"),
		newPlayer("b", "Bruno"),
		newPlayer("c", "Carla"),
		newPlayer("d", "Davi"),
		newPlayer("e", "Edu"),
		newPlayer("f", "Fabi"),
		newPlayer("g", "Gui"),
	}
	locked := map[string]bool{"c": true, "f": true}

	teams := mix.Assemble(selected, locked, models.ModeRandom, testRNG())

	require.Len(t, teams, 2)
	require.Len(t, teams[0], 5)
	assert.Equal(t, "c", teams[0][0].ID)
	assert.Equal(t, "f", teams[0][1].ID)
	assert.Len(t, teams[1], 2)

	// No player appears twice.
	seen := map[string]bool{}
	for _, team := range teams {
		for _, p := range team {
			assert.False(t, seen[p.ID], "player %s assigned twice", p.ID)
			seen[p.ID] = true
		}
	}
	assert.Len(t, seen, len(selected))
}

func TestAssembleSubsFillBeforeNormals(t *testing.T) {
	recent := time.Now()
	selected := []models.Player{
		playedAt(newPlayer("n1", "Nico"), recent.Add(-48*time.Hour)),
		playedAt(newPlayer("n2", "Nina"), recent.Add(-72*time.Hour)),
		// The sub played most recently of everyone and still goes first.
		asSub(playedAt(newPlayer("s1", "Sasha"), recent)),
	}

	teams := mix.Assemble(selected, nil, models.ModeRandom, testRNG())

	require.Len(t, teams, 1)
	assert.Equal(t, "s1", teams[0][0].ID)
}

func TestAssembleNeverPlayedGoFirst(t *testing.T) {
	now := time.Now()
	fresh := newPlayer("fresh", "Fresh")
	veteran := playedAt(newPlayer("vet", "Vet"), now.Add(-time.Hour))
	recent := playedAt(newPlayer("rec", "Rec"), now)

	teams := mix.Assemble([]models.Player{recent, veteran, fresh}, nil, models.ModeRandom, testRNG())

	require.Len(t, teams, 1)
	assert.Equal(t, "fresh", teams[0][0].ID)
	assert.Equal(t, "vet", teams[0][1].ID)
	assert.Equal(t, "rec", teams[0][2].ID)
}

func TestAssemble1v1MakesSoloTeams(t *testing.T) {
	selected := []models.Player{
		newPlayer("a", "Ana"),
		newPlayer("b", "Bruno"),
		newPlayer("c", "Carla"),
	}

	teams := mix.Assemble(selected, map[string]bool{"b": true}, models.Mode1v1, testRNG())

	require.Len(t, teams, 3)
	for _, team := range teams {
		assert.Len(t, team, 1)
	}
	// Locked players lead the list.
	assert.Equal(t, "b", teams[0][0].ID)
}

func TestAssembleDeterministicForSameSeed(t *testing.T) {
	selected := make([]models.Player, 0, 10)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		selected = append(selected, newPlayer(id, id))
	}

	first := mix.Assemble(selected, nil, models.ModeRandom, rand.New(rand.NewSource(7)))
	second := mix.Assemble(selected, nil, models.ModeRandom, rand.New(rand.NewSource(7)))

	assert.Equal(t, first, second)
}

func TestAssembleOversizedLockedSet(t *testing.T) {
	selected := []models.Player{
		newPlayer("a", "Ana"),
		newPlayer("b", "Bruno"),
		newPlayer("c", "Carla"),
		newPlayer("d", "Davi"),
		newPlayer("e", "Edu"),
		newPlayer("f", "Fabi"),
	}
	locked := map[string]bool{"a": true, "b": true, "c": true, "d": true, "e": true}

	teams := mix.Assemble(selected, locked, models.ModeRandom, testRNG())

	require.Len(t, teams, 2)
	assert.Len(t, teams[0], 5)
	assert.Len(t, teams[1], 1)
	assert.Equal(t, "f", teams[1][0].ID)
}
