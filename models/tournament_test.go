package models_test

import (
	"encoding/json"
	"testing"

	"github.com/joaomidowz/vargas-mix/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validState() *models.TournamentState {
	return &models.TournamentState{
		Teams: []models.Team{
			{models.Player{ID: "a", Name: "Ana"}},
			{models.Player{ID: "b", Name: "Bruno"}},
		},
		Schedule: []models.ScheduleItem{
			{ID: "game-1", Round: 1, Team1Index: 0, Team2Index: 1},
		},
		Mode:        models.ModeRandom,
		SelectedIDs: []string{"a", "b"},
	}
}

func TestParseTournamentStateRoundTrip(t *testing.T) {
	payload, err := json.Marshal(validState())
	require.NoError(t, err)

	parsed, err := models.ParseTournamentState(payload)
	require.NoError(t, err)
	assert.Equal(t, models.ModeRandom, parsed.Mode)
	assert.Len(t, parsed.Teams, 2)
	assert.Equal(t, "game-1", parsed.Schedule[0].ID)
}

func TestTournamentStateJSONKeys(t *testing.T) {
	payload, err := json.Marshal(validState())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &raw))
	for _, key := range []string{"teams", "schedule", "activeMatchIndex", "decidedMap", "bracketWinners", "mode", "selectedIds", "lockedIds"} {
		assert.Contains(t, raw, key)
	}
}

func TestParseTournamentStateRejectsGarbage(t *testing.T) {
	_, err := models.ParseTournamentState([]byte("{not json"))
	assert.Error(t, err)
}

func TestParseTournamentStateRejectsUnknownMode(t *testing.T) {
	state := validState()
	state.Mode = "CHAOS"
	payload, _ := json.Marshal(state)

	_, err := models.ParseTournamentState(payload)
	assert.ErrorContains(t, err, "game mode")
}

func TestParseTournamentStateRejectsDanglingIndex(t *testing.T) {
	state := validState()
	state.Schedule[0].Team2Index = 9
	payload, _ := json.Marshal(state)

	_, err := models.ParseTournamentState(payload)
	assert.Error(t, err)
}

func TestParseTournamentStateRejectsBadCursor(t *testing.T) {
	state := validState()
	state.ActiveMatchIndex = 5
	payload, _ := json.Marshal(state)

	_, err := models.ParseTournamentState(payload)
	assert.Error(t, err)
}

func TestParseTournamentStateAllowsPlaceholders(t *testing.T) {
	state := validState()
	state.Schedule = append(state.Schedule, models.ScheduleItem{
		ID:         "final",
		Team1Index: models.PlaceholderIndex,
		Team2Index: models.PlaceholderIndex,
	})
	payload, _ := json.Marshal(state)

	parsed, err := models.ParseTournamentState(payload)
	require.NoError(t, err)
	assert.True(t, parsed.Schedule[1].IsBracketFinal())
}

func TestIsChampionPlayer(t *testing.T) {
	flagged := models.Player{ID: "a", Name: "Ana", IsChampion: true}
	assert.True(t, flagged.IsChampionPlayer())

	legacy := models.Player{ID: "v", Name: "O Vargas"}
	assert.True(t, legacy.IsChampionPlayer())

	regular := models.Player{ID: "b", Name: "Bruno"}
	assert.False(t, regular.IsChampionPlayer())
}

func TestWinrate(t *testing.T) {
	p := models.Player{MatchesPlayed: 10, Wins: 6, Losses: 2}
	assert.InDelta(t, 0.75, p.Winrate(), 1e-9)

	fresh := models.Player{}
	assert.Zero(t, fresh.Winrate())
}
