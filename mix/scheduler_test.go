package mix_test

import (
	"math/rand"
	"testing"

	"github.com/joaomidowz/vargas-mix/mix"
	"github.com/joaomidowz/vargas-mix/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func champion(id, name string) models.Player {
	p := newPlayer(id, name)
	p.IsChampion = true
	return p
}

func team(players ...models.Player) models.Team {
	return models.Team(players)
}

func TestScheduleGauntletChampionPlaysEveryone(t *testing.T) {
	teams := []models.Team{
		team(newPlayer("a", "Ana")),
		team(champion("v", "Vargas"), newPlayer("b", "Bruno")),
		team(newPlayer("c", "Carla")),
	}

	_, schedule, err := mix.Schedule(teams, models.ModeVsVargas, testRNG())
	require.NoError(t, err)

	require.Len(t, schedule, 2)
	for i, item := range schedule {
		assert.Equal(t, 1, item.Team1Index, "champion team is always side 1")
		assert.True(t, item.IsVargasGame)
		assert.True(t, item.Highlight)
		assert.Equal(t, i+1, item.Round)
		assert.Equal(t, "TEAM VARGÃO", item.Team1Name)
	}
	assert.Equal(t, "gauntlet-1", schedule[0].ID)
	assert.Equal(t, "gauntlet-2", schedule[1].ID)
	assert.Equal(t, 0, schedule[0].Team2Index)
	assert.Equal(t, 2, schedule[1].Team2Index)
}

func TestScheduleGauntletFallsBackToAdjacentPairs(t *testing.T) {
	teams := []models.Team{
		team(newPlayer("a", "Ana")),
		team(newPlayer("b", "Bruno")),
		team(newPlayer("c", "Carla")),
		team(newPlayer("d", "Davi")),
		team(newPlayer("e", "Edu")),
	}

	_, schedule, err := mix.Schedule(teams, models.ModeRandom, testRNG())
	require.NoError(t, err)

	// (0,1) and (2,3); the fifth team sits out.
	require.Len(t, schedule, 2)
	assert.Equal(t, "game-1", schedule[0].ID)
	assert.Equal(t, 0, schedule[0].Team1Index)
	assert.Equal(t, 1, schedule[0].Team2Index)
	assert.Equal(t, 2, schedule[1].Team1Index)
	assert.Equal(t, 3, schedule[1].Team2Index)
	for _, item := range schedule {
		assert.False(t, item.IsVargasGame)
	}
}

func TestScheduleBracketShape(t *testing.T) {
	teams := []models.Team{
		team(newPlayer("a", "Ana")),
		team(newPlayer("b", "Bruno")),
		team(newPlayer("c", "Carla")),
		team(newPlayer("d", "Davi")),
	}

	_, schedule, err := mix.Schedule(teams, models.ModeBracket, testRNG())
	require.NoError(t, err)
	require.Len(t, schedule, 3)

	semi1, semi2, final := schedule[0], schedule[1], schedule[2]

	assert.Equal(t, "semi-1", semi1.ID)
	assert.Equal(t, 0, semi1.Team1Index)
	assert.Equal(t, 1, semi1.Team2Index)

	assert.Equal(t, "semi-2", semi2.ID)
	assert.Equal(t, 2, semi2.Team1Index)
	assert.Equal(t, 3, semi2.Team2Index)

	assert.Equal(t, "final", final.ID)
	assert.Equal(t, models.PlaceholderIndex, final.Team1Index)
	assert.Equal(t, models.PlaceholderIndex, final.Team2Index)
	assert.Equal(t, mix.LabelWinnerSemi1, final.Team1Name)
	assert.Equal(t, mix.LabelWinnerSemi2, final.Team2Name)
	assert.True(t, final.Highlight)
	assert.True(t, final.IsBracketFinal())
}

func TestScheduleBracketThreeTeamsIsWalkover(t *testing.T) {
	teams := []models.Team{
		team(newPlayer("a", "Ana")),
		team(newPlayer("b", "Bruno")),
		team(newPlayer("c", "Carla")),
	}

	_, schedule, err := mix.Schedule(teams, models.ModeBracket, testRNG())
	require.NoError(t, err)
	require.Len(t, schedule, 3)

	semi2 := schedule[1]
	assert.Equal(t, mix.LabelWalkover, semi2.Team2Name)
	assert.Equal(t, models.PlaceholderIndex, semi2.Team2Index)
	// A walkover semi is not the final even though one side is a placeholder.
	assert.False(t, semi2.IsBracketFinal())
}

func TestScheduleBracketChampionMovedToFirstSemi(t *testing.T) {
	teams := []models.Team{
		team(newPlayer("a", "Ana")),
		team(newPlayer("b", "Bruno")),
		team(newPlayer("c", "Carla")),
		team(newPlayer("d", "Davi")),
		team(champion("v", "Vargas")),
	}

	ordered, schedule, err := mix.Schedule(teams, models.ModeBracket, testRNG())
	require.NoError(t, err)

	assert.True(t, ordered[0].ContainsChampion())
	assert.Equal(t, "TEAM VARGÃO", schedule[0].Team1Name)
}

func TestScheduleTooFewTeams(t *testing.T) {
	solo := []models.Team{team(newPlayer("a", "Ana"))}
	_, _, err := mix.Schedule(solo, models.ModeRandom, testRNG())
	assert.ErrorIs(t, err, mix.ErrNotEnoughTeams)

	pair := []models.Team{team(newPlayer("a", "Ana")), team(newPlayer("b", "Bruno"))}
	_, _, err = mix.Schedule(pair, models.ModeBracket, testRNG())
	assert.ErrorIs(t, err, mix.ErrBracketTooSmall)
}

func TestScheduleDuelRoundRobin(t *testing.T) {
	teams := []models.Team{
		team(newPlayer("a", "Ana")),
		team(newPlayer("b", "Bruno")),
		team(newPlayer("c", "Carla")),
		team(newPlayer("d", "Davi")),
	}

	_, schedule, err := mix.Schedule(teams, models.Mode1v1, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	require.Len(t, schedule, 6)

	// Every unordered pair appears exactly once, rounds renumbered after the
	// shuffle.
	pairs := map[[2]int]bool{}
	for i, item := range schedule {
		assert.Equal(t, i+1, item.Round)
		key := [2]int{item.Team1Index, item.Team2Index}
		assert.False(t, pairs[key], "pair %v scheduled twice", key)
		pairs[key] = true
	}
	assert.Len(t, pairs, 6)
}

func TestTeamDisplayName(t *testing.T) {
	assert.Equal(t, "FALLBACK", mix.TeamDisplayName(nil, "FALLBACK"))

	withChampion := team(newPlayer("a", "Ana"), champion("v", "Vargas"))
	assert.Equal(t, "TEAM VARGÃO", mix.TeamDisplayName(withChampion, ""))

	// Name substring also marks a champion, for rosters predating the flag.
	legacy := team(models.Player{ID: "x", Name: "vargão jr"})
	assert.Equal(t, "TEAM VARGÃO", mix.TeamDisplayName(legacy, ""))

	best := newPlayer("b", "Bruno")
	best.Wins = 9
	other := newPlayer("c", "Carla")
	other.Wins = 3
	assert.Equal(t, "TEAM BRUNO", mix.TeamDisplayName(team(other, best), ""))
}
