package mix_test

import (
	"testing"

	"github.com/joaomidowz/vargas-mix/mix"
	"github.com/joaomidowz/vargas-mix/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gauntletState(t *testing.T) *models.TournamentState {
	t.Helper()
	teams := []models.Team{
		team(champion("v", "Vargas")),
		team(newPlayer("a", "Ana")),
		team(newPlayer("b", "Bruno")),
	}
	teams, schedule, err := mix.Schedule(teams, models.ModeVsVargas, testRNG())
	require.NoError(t, err)
	return &models.TournamentState{
		Teams:    teams,
		Schedule: schedule,
		Mode:     models.ModeVsVargas,
	}
}

func bracketState(t *testing.T) *models.TournamentState {
	t.Helper()
	teams := []models.Team{
		team(newPlayer("a", "Ana")),
		team(newPlayer("b", "Bruno")),
		team(newPlayer("c", "Carla")),
		team(newPlayer("d", "Davi")),
	}
	teams, schedule, err := mix.Schedule(teams, models.ModeBracket, testRNG())
	require.NoError(t, err)
	return &models.TournamentState{
		Teams:    teams,
		Schedule: schedule,
		Mode:     models.ModeBracket,
	}
}

func decideMap(t *testing.T, state *models.TournamentState, name string) {
	t.Helper()
	require.NoError(t, mix.SetDecidedMap(state, name))
}

func TestPhaseLifecycle(t *testing.T) {
	state := gauntletState(t)

	assert.Equal(t, mix.PhaseAwaitingMap, mix.CurrentPhase(state))

	decideMap(t, state, "Mirage")
	assert.Equal(t, mix.PhaseAwaitingResult, mix.CurrentPhase(state))

	outcome, err := mix.RecordResult(state, 13, 7)
	require.NoError(t, err)
	assert.False(t, outcome.Finished)
	// Cursor advanced, next fixture needs a fresh veto.
	assert.Equal(t, mix.PhaseAwaitingMap, mix.CurrentPhase(state))
	assert.Nil(t, state.DecidedMap)

	decideMap(t, state, "Inferno")
	outcome, err = mix.RecordResult(state, 10, 13)
	require.NoError(t, err)
	assert.True(t, outcome.Finished)
	assert.Equal(t, mix.PhaseFinished, mix.CurrentPhase(state))

	_, err = mix.RecordResult(state, 1, 0)
	assert.ErrorIs(t, err, mix.ErrNoActiveFixture)
}

func TestRecordResultNeedsDecidedMap(t *testing.T) {
	state := gauntletState(t)
	_, err := mix.RecordResult(state, 13, 7)
	assert.ErrorIs(t, err, mix.ErrMapNotDecided)
}

func TestRecordResultStampsFixture(t *testing.T) {
	state := gauntletState(t)
	decideMap(t, state, "Nuke")

	outcome, err := mix.RecordResult(state, 16, 14)
	require.NoError(t, err)

	fixture := state.Schedule[0]
	require.NotNil(t, fixture.Score1)
	require.NotNil(t, fixture.Score2)
	require.NotNil(t, fixture.MapName)
	assert.Equal(t, 16, *fixture.Score1)
	assert.Equal(t, 14, *fixture.Score2)
	assert.Equal(t, "Nuke", *fixture.MapName)
	assert.Equal(t, 1, state.ActiveMatchIndex)
	assert.Equal(t, outcome.Team1, outcome.Winner)
}

func TestRecordResultDrawKeepsNoWinner(t *testing.T) {
	state := gauntletState(t)
	decideMap(t, state, "Ancient")

	outcome, err := mix.RecordResult(state, 15, 15)
	require.NoError(t, err)
	assert.Nil(t, outcome.Winner)
	assert.Equal(t, 1, state.ActiveMatchIndex)
}

func TestBracketRunToChampion(t *testing.T) {
	state := bracketState(t)

	// Final sides are unknown until both semis resolve.
	_, _, err := mix.ResolveRosters(state, state.Schedule[2])
	assert.ErrorIs(t, err, mix.ErrAwaitingWinner)

	decideMap(t, state, "Mirage")
	_, err = mix.RecordResult(state, 13, 5)
	require.NoError(t, err)
	require.NotNil(t, state.BracketWinners.Semi1)
	assert.Equal(t, "a", state.BracketWinners.Semi1[0].ID)

	decideMap(t, state, "Dust2")
	_, err = mix.RecordResult(state, 3, 13)
	require.NoError(t, err)
	require.NotNil(t, state.BracketWinners.Semi2)
	assert.Equal(t, "d", state.BracketWinners.Semi2[0].ID)

	decideMap(t, state, "Inferno")
	outcome, err := mix.RecordResult(state, 13, 11)
	require.NoError(t, err)
	assert.True(t, outcome.Finished)
	require.NotNil(t, state.BracketWinners.Champion)
	assert.Equal(t, "a", state.BracketWinners.Champion[0].ID)

	// The final fixture shows the resolved team names, not the placeholders.
	final := state.Schedule[2]
	assert.NotEqual(t, mix.LabelWinnerSemi1, final.Team1Name)
	assert.NotEqual(t, mix.LabelWinnerSemi2, final.Team2Name)
}

func TestBracketDrawRejected(t *testing.T) {
	state := bracketState(t)
	decideMap(t, state, "Mirage")

	_, err := mix.RecordResult(state, 12, 12)
	assert.ErrorIs(t, err, mix.ErrDrawInBracket)
	// Nothing moved.
	assert.Equal(t, 0, state.ActiveMatchIndex)
	assert.NotNil(t, state.DecidedMap)
}

func TestFinalBlockedUntilSemisResolve(t *testing.T) {
	state := bracketState(t)
	state.ActiveMatchIndex = 2
	decideMap(t, state, "Mirage")

	_, err := mix.RecordResult(state, 13, 2)
	assert.ErrorIs(t, err, mix.ErrAwaitingWinner)
}

func TestRedoVetoOnlyClearsMap(t *testing.T) {
	state := gauntletState(t)
	decideMap(t, state, "Overpass")

	require.NoError(t, mix.RedoVeto(state))
	assert.Nil(t, state.DecidedMap)
	assert.Equal(t, 0, state.ActiveMatchIndex)

	// Idempotent.
	require.NoError(t, mix.RedoVeto(state))
	assert.Nil(t, state.DecidedMap)
}

func TestFixtureLabelsResolveFinalAfterSemis(t *testing.T) {
	state := bracketState(t)
	final := state.Schedule[2]

	// Semis still pending: the final keeps its placeholders.
	name1, name2 := mix.FixtureLabels(state, final)
	assert.Equal(t, mix.LabelWinnerSemi1, name1)
	assert.Equal(t, mix.LabelWinnerSemi2, name2)

	decideMap(t, state, "Mirage")
	_, err := mix.RecordResult(state, 13, 7)
	require.NoError(t, err)

	// One semi is not enough.
	name1, name2 = mix.FixtureLabels(state, final)
	assert.Equal(t, mix.LabelWinnerSemi1, name1)
	assert.Equal(t, mix.LabelWinnerSemi2, name2)

	decideMap(t, state, "Inferno")
	_, err = mix.RecordResult(state, 5, 13)
	require.NoError(t, err)

	name1, name2 = mix.FixtureLabels(state, final)
	assert.Equal(t, mix.TeamDisplayName(state.BracketWinners.Semi1, ""), name1)
	assert.Equal(t, mix.TeamDisplayName(state.BracketWinners.Semi2, ""), name2)
	assert.NotEqual(t, mix.LabelWinnerSemi1, name1)
	assert.NotEqual(t, mix.LabelWinnerSemi2, name2)
}

func TestWalkoverSemiResolvesEmptySide(t *testing.T) {
	teams := []models.Team{
		team(newPlayer("a", "Ana")),
		team(newPlayer("b", "Bruno")),
		team(newPlayer("c", "Carla")),
	}
	teams, schedule, err := mix.Schedule(teams, models.ModeBracket, testRNG())
	require.NoError(t, err)
	state := &models.TournamentState{Teams: teams, Schedule: schedule, Mode: models.ModeBracket}

	side1, side2, err := mix.ResolveRosters(state, state.Schedule[1])
	require.NoError(t, err)
	assert.Len(t, side1, 1)
	assert.Empty(t, side2)
}
