package models

import (
	"encoding/json"
	"fmt"
)

// GameMode selects how teams are assembled and fixtures paired.
type GameMode string

const (
	ModeRandom   GameMode = "RANDOM"
	ModeVsVargas GameMode = "VS_VARGAS"
	ModeBracket  GameMode = "BRACKET"
	Mode1v1      GameMode = "1V1"
)

func (m GameMode) Valid() bool {
	switch m {
	case ModeRandom, ModeVsVargas, ModeBracket, Mode1v1:
		return true
	}
	return false
}

// Team is an ordered grouping of up to five players, produced fresh for every
// tournament run. Teams are never stored on their own, only inside the
// serialized tournament state.
type Team []Player

// ContainsChampion reports whether any member is the designated champion.
func (t Team) ContainsChampion() bool {
	for _, p := range t {
		if p.IsChampionPlayer() {
			return true
		}
	}
	return false
}

func (t Team) PlayerIDs() []string {
	ids := make([]string, 0, len(t))
	for _, p := range t {
		ids = append(ids, p.ID)
	}
	return ids
}

func (t Team) PlayerNames() []string {
	names := make([]string, 0, len(t))
	for _, p := range t {
		names = append(names, p.Name)
	}
	return names
}

// PlaceholderIndex marks a fixture side whose team is decided by an earlier
// bracket result rather than by assembly.
const PlaceholderIndex = -1

// ScheduleItem is one fixture of the generated schedule.
type ScheduleItem struct {
	ID           string  `json:"id"`
	Round        int     `json:"round"`
	Team1Name    string  `json:"team1Name"`
	Team2Name    string  `json:"team2Name"`
	Team1Index   int     `json:"team1Index"`
	Team2Index   int     `json:"team2Index"`
	IsVargasGame bool    `json:"isVargasGame"`
	Highlight    bool    `json:"highlight"`
	Score1       *int    `json:"score1,omitempty"`
	Score2       *int    `json:"score2,omitempty"`
	MapName      *string `json:"mapName,omitempty"`
}

// IsBracketFinal reports whether both sides are placeholders awaiting
// semifinal winners.
func (s ScheduleItem) IsBracketFinal() bool {
	return s.Team1Index == PlaceholderIndex && s.Team2Index == PlaceholderIndex
}

// BracketWinners tracks resolved bracket stages. Nil means the stage has not
// produced a winner yet. The q1/q2 keys exist for older saved states; the
// current bracket only fills semi1, semi2 and champion.
type BracketWinners struct {
	Q1       Team `json:"q1"`
	Q2       Team `json:"q2"`
	Semi1    Team `json:"semi1"`
	Semi2    Team `json:"semi2"`
	Champion Team `json:"champion"`
}

// TournamentState is the single persisted snapshot of an in-progress run.
// It is saved and loaded as one document; exactly one instance exists
// system-wide.
type TournamentState struct {
	Teams            []Team         `json:"teams"`
	Schedule         []ScheduleItem `json:"schedule"`
	ActiveMatchIndex int            `json:"activeMatchIndex"`
	DecidedMap       *string        `json:"decidedMap"`
	BracketWinners   BracketWinners `json:"bracketWinners"`
	Mode             GameMode       `json:"mode"`
	SelectedIDs      []string       `json:"selectedIds"`
	LockedIDs        []string       `json:"lockedIds"`
}

// ActiveFixture returns the fixture currently in play, or nil when every
// scheduled fixture has completed.
func (s *TournamentState) ActiveFixture() *ScheduleItem {
	if s.ActiveMatchIndex < 0 || s.ActiveMatchIndex >= len(s.Schedule) {
		return nil
	}
	return &s.Schedule[s.ActiveMatchIndex]
}

// Finished reports whether progression has moved past the last fixture.
func (s *TournamentState) Finished() bool {
	return s.ActiveMatchIndex >= len(s.Schedule)
}

// ParseTournamentState decodes a persisted snapshot and validates its shape.
// The stored document is never trusted blindly: unknown modes, dangling team
// indices or a cursor outside the schedule are rejected.
func ParseTournamentState(payload []byte) (*TournamentState, error) {
	var state TournamentState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("tournament state is not valid JSON: %w", err)
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return &state, nil
}

// Validate checks the cross-field invariants of a snapshot.
func (s *TournamentState) Validate() error {
	if !s.Mode.Valid() {
		return fmt.Errorf("unknown game mode %q", s.Mode)
	}
	if len(s.Teams) == 0 {
		return fmt.Errorf("tournament state has no teams")
	}
	if s.ActiveMatchIndex < 0 || s.ActiveMatchIndex > len(s.Schedule) {
		return fmt.Errorf("active match index %d out of range for %d fixtures", s.ActiveMatchIndex, len(s.Schedule))
	}
	for _, item := range s.Schedule {
		if err := validFixtureIndex(item.Team1Index, len(s.Teams)); err != nil {
			return fmt.Errorf("fixture %s team1: %w", item.ID, err)
		}
		if err := validFixtureIndex(item.Team2Index, len(s.Teams)); err != nil {
			return fmt.Errorf("fixture %s team2: %w", item.ID, err)
		}
	}
	return nil
}

func validFixtureIndex(idx, teamCount int) error {
	if idx == PlaceholderIndex {
		return nil
	}
	if idx < 0 || idx >= teamCount {
		return fmt.Errorf("index %d does not resolve to a team (have %d)", idx, teamCount)
	}
	return nil
}
