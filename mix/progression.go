package mix

import (
	"errors"

	"github.com/joaomidowz/vargas-mix/models"
)

var (
	ErrNoActiveFixture = errors.New("no active fixture: tournament is finished")
	ErrMapNotDecided   = errors.New("map veto has not decided a map yet")
	ErrAwaitingWinner  = errors.New("final participants are awaiting semifinal winners")
	ErrDrawInBracket   = errors.New("a drawn score cannot advance an elimination fixture")
)

// Phase is where the active fixture stands in its lifecycle.
type Phase string

const (
	PhaseAwaitingMap    Phase = "AWAITING_MAP"
	PhaseAwaitingResult Phase = "AWAITING_RESULT"
	PhaseFinished       Phase = "TOURNAMENT_FINISHED"
)

// CurrentPhase derives the progression phase from the state snapshot.
func CurrentPhase(state *models.TournamentState) Phase {
	if state.Finished() {
		return PhaseFinished
	}
	if state.DecidedMap == nil {
		return PhaseAwaitingMap
	}
	return PhaseAwaitingResult
}

// SetDecidedMap moves the active fixture from AWAITING_MAP to
// AWAITING_RESULT.
func SetDecidedMap(state *models.TournamentState, mapName string) error {
	if state.Finished() {
		return ErrNoActiveFixture
	}
	state.DecidedMap = &mapName
	return nil
}

// RedoVeto returns the active fixture to a fresh AWAITING_MAP, clearing only
// the decided map. The fixture cursor and player statistics are untouched, so
// calling it repeatedly is harmless.
func RedoVeto(state *models.TournamentState) error {
	if state.Finished() {
		return ErrNoActiveFixture
	}
	state.DecidedMap = nil
	return nil
}

// Outcome describes a recorded result: resolved rosters, the winning side
// (nil on draw) and whether the tournament ran out of fixtures.
type Outcome struct {
	Fixture  models.ScheduleItem
	Team1    models.Team
	Team2    models.Team
	Winner   models.Team
	Finished bool
}

// ResolveRosters returns who is actually playing the fixture. For a bracket
// final the sides come from the recorded semifinal winners, never recomputed
// from team indices; a walkover slot resolves to an empty roster.
func ResolveRosters(state *models.TournamentState, fixture models.ScheduleItem) (models.Team, models.Team, error) {
	if fixture.IsBracketFinal() {
		if state.BracketWinners.Semi1 == nil || state.BracketWinners.Semi2 == nil {
			return nil, nil, ErrAwaitingWinner
		}
		return state.BracketWinners.Semi1, state.BracketWinners.Semi2, nil
	}
	return teamAt(state, fixture.Team1Index), teamAt(state, fixture.Team2Index), nil
}

// FixtureLabels names the two sides of a fixture for display. A bracket final
// keeps its placeholder labels only until both semifinal winners are recorded;
// from then on the resolved team names are shown.
func FixtureLabels(state *models.TournamentState, fixture models.ScheduleItem) (string, string) {
	if fixture.IsBracketFinal() && state.BracketWinners.Semi1 != nil && state.BracketWinners.Semi2 != nil {
		return TeamDisplayName(state.BracketWinners.Semi1, fixture.Team1Name),
			TeamDisplayName(state.BracketWinners.Semi2, fixture.Team2Name)
	}
	return fixture.Team1Name, fixture.Team2Name
}

func teamAt(state *models.TournamentState, idx int) models.Team {
	if idx < 0 || idx >= len(state.Teams) {
		return models.Team{}
	}
	return state.Teams[idx]
}

// RecordResult completes the active fixture with the given score, propagates
// bracket winners and advances the cursor. The decided map is consumed into
// the fixture and cleared for the next one.
func RecordResult(state *models.TournamentState, score1, score2 int) (*Outcome, error) {
	fixture := state.ActiveFixture()
	if fixture == nil {
		return nil, ErrNoActiveFixture
	}
	if state.DecidedMap == nil {
		return nil, ErrMapNotDecided
	}
	if state.Mode == models.ModeBracket && score1 == score2 {
		return nil, ErrDrawInBracket
	}

	team1, team2, err := ResolveRosters(state, *fixture)
	if err != nil {
		return nil, err
	}

	var winner models.Team
	switch {
	case score1 > score2:
		winner = team1
	case score2 > score1:
		winner = team2
	}

	if state.Mode == models.ModeBracket && winner != nil {
		// Keyed by fixture ID, not schedule position.
		switch fixture.ID {
		case "semi-1":
			state.BracketWinners.Semi1 = winner
		case "semi-2":
			state.BracketWinners.Semi2 = winner
		case "final":
			state.BracketWinners.Champion = winner
		}
	}

	mapName := *state.DecidedMap
	fixture.Score1 = &score1
	fixture.Score2 = &score2
	fixture.MapName = &mapName
	if fixture.IsBracketFinal() {
		fixture.Team1Name = TeamDisplayName(team1, fixture.Team1Name)
		fixture.Team2Name = TeamDisplayName(team2, fixture.Team2Name)
	}

	state.DecidedMap = nil
	state.ActiveMatchIndex++

	return &Outcome{
		Fixture:  *fixture,
		Team1:    team1,
		Team2:    team2,
		Winner:   winner,
		Finished: state.Finished(),
	}, nil
}
