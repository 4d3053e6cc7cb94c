package mix

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/joaomidowz/vargas-mix/models"
)

var (
	ErrNotEnoughTeams  = errors.New("not enough teams to build a schedule (minimum 2)")
	ErrBracketTooSmall = errors.New("bracket mode needs at least 3 teams")
)

// Bracket placeholder labels resolved by progression once the semifinals
// produce winners.
const (
	LabelWinnerSemi1 = "WINNER OF SEMI 1"
	LabelWinnerSemi2 = "WINNER OF SEMI 2"
	LabelWalkover    = "W.O."
)

// Generator produces the fixture list for one game mode.
type Generator interface {
	Generate(teams []models.Team) ([]models.ScheduleItem, error)
	GetName() string
}

// Schedule assembles the fixture list for the given teams and mode. The
// returned team slice may be reordered (bracket mode swaps the champion's
// team into slot 0); fixtures index into the returned slice, not the input.
func Schedule(teams []models.Team, mode models.GameMode, rng *rand.Rand) ([]models.Team, []models.ScheduleItem, error) {
	if len(teams) < 2 {
		return nil, nil, ErrNotEnoughTeams
	}

	ordered := make([]models.Team, len(teams))
	copy(ordered, teams)

	var gen Generator
	switch mode {
	case models.ModeRandom, models.ModeVsVargas:
		gen = NewGauntletGenerator()
	case models.ModeBracket:
		// The champion's semifinal is always the first one displayed.
		if idx := championTeamIndex(ordered); idx >= 4 {
			ordered[0], ordered[idx] = ordered[idx], ordered[0]
		}
		gen = NewBracketGenerator()
	case models.Mode1v1:
		gen = NewDuelGenerator(rng)
	default:
		return nil, nil, fmt.Errorf("unsupported game mode %q", mode)
	}

	schedule, err := gen.Generate(ordered)
	if err != nil {
		return nil, nil, err
	}
	return ordered, schedule, nil
}

// championTeamIndex returns the index of the team holding the designated
// champion, or -1 if no team does.
func championTeamIndex(teams []models.Team) int {
	for i, t := range teams {
		if t.ContainsChampion() {
			return i
		}
	}
	return -1
}

// TeamDisplayName names a team for fixtures and brackets: the champion's team
// gets the house label, otherwise the team is fronted by its winningest
// member.
func TeamDisplayName(team models.Team, fallback string) string {
	if len(team) == 0 {
		return fallback
	}
	if team.ContainsChampion() {
		return "TEAM VARGÃO"
	}
	best := team[0]
	for _, p := range team[1:] {
		if p.Wins > best.Wins {
			best = p
		}
	}
	return "TEAM " + strings.ToUpper(best.Name)
}

// GauntletGenerator pairs the champion's team against every other team once.
// Without a champion present it falls back to adjacent round-robin pairing.
type GauntletGenerator struct{}

func NewGauntletGenerator() Generator {
	return &GauntletGenerator{}
}

func (g *GauntletGenerator) GetName() string {
	return "Gauntlet"
}

func (g *GauntletGenerator) Generate(teams []models.Team) ([]models.ScheduleItem, error) {
	champIdx := championTeamIndex(teams)
	if champIdx < 0 {
		return g.adjacentPairs(teams), nil
	}

	schedule := make([]models.ScheduleItem, 0, len(teams)-1)
	round := 0
	for i := range teams {
		if i == champIdx {
			continue
		}
		round++
		schedule = append(schedule, models.ScheduleItem{
			ID:           fmt.Sprintf("gauntlet-%d", round),
			Round:        round,
			Team1Name:    TeamDisplayName(teams[champIdx], fmt.Sprintf("TIME %d", champIdx+1)),
			Team2Name:    TeamDisplayName(teams[i], fmt.Sprintf("TIME %d", i+1)),
			Team1Index:   champIdx,
			Team2Index:   i,
			IsVargasGame: true,
			Highlight:    true,
		})
	}
	return schedule, nil
}

// adjacentPairs pairs (0,1), (2,3), ... A trailing unpaired team simply gets
// no fixture.
func (g *GauntletGenerator) adjacentPairs(teams []models.Team) []models.ScheduleItem {
	schedule := make([]models.ScheduleItem, 0, len(teams)/2)
	round := 0
	for i := 0; i+1 < len(teams); i += 2 {
		round++
		schedule = append(schedule, models.ScheduleItem{
			ID:         fmt.Sprintf("game-%d", round),
			Round:      round,
			Team1Name:  TeamDisplayName(teams[i], fmt.Sprintf("TIME %d", i+1)),
			Team2Name:  TeamDisplayName(teams[i+1], fmt.Sprintf("TIME %d", i+2)),
			Team1Index: i,
			Team2Index: i + 1,
		})
	}
	return schedule
}

// BracketGenerator builds a small single-elimination bracket: two semifinals
// and a final with placeholder slots. With only three teams the second
// semifinal is a walkover.
type BracketGenerator struct{}

func NewBracketGenerator() Generator {
	return &BracketGenerator{}
}

func (g *BracketGenerator) GetName() string {
	return "SingleElimination"
}

func (g *BracketGenerator) Generate(teams []models.Team) ([]models.ScheduleItem, error) {
	if len(teams) < 3 {
		return nil, ErrBracketTooSmall
	}

	schedule := []models.ScheduleItem{
		{
			ID:         "semi-1",
			Round:      1,
			Team1Name:  TeamDisplayName(teams[0], "TIME 1"),
			Team2Name:  TeamDisplayName(teams[1], "TIME 2"),
			Team1Index: 0,
			Team2Index: 1,
		},
	}

	semi2 := models.ScheduleItem{
		ID:         "semi-2",
		Round:      2,
		Team1Name:  TeamDisplayName(teams[2], "TIME 3"),
		Team1Index: 2,
		Team2Name:  LabelWalkover,
		Team2Index: models.PlaceholderIndex,
	}
	if len(teams) >= 4 {
		semi2.Team2Name = TeamDisplayName(teams[3], "TIME 4")
		semi2.Team2Index = 3
	}
	schedule = append(schedule, semi2)

	schedule = append(schedule, models.ScheduleItem{
		ID:         "final",
		Round:      3,
		Team1Name:  LabelWinnerSemi1,
		Team2Name:  LabelWinnerSemi2,
		Team1Index: models.PlaceholderIndex,
		Team2Index: models.PlaceholderIndex,
		Highlight:  true,
	})
	return schedule, nil
}

// DuelGenerator builds a full round robin over solo teams and shuffles the
// match order. Every unordered pair plays exactly once.
type DuelGenerator struct {
	rng *rand.Rand
}

func NewDuelGenerator(rng *rand.Rand) Generator {
	return &DuelGenerator{rng: rng}
}

func (g *DuelGenerator) GetName() string {
	return "Duel"
}

func (g *DuelGenerator) Generate(teams []models.Team) ([]models.ScheduleItem, error) {
	schedule := make([]models.ScheduleItem, 0, len(teams)*(len(teams)-1)/2)
	n := 0
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			n++
			schedule = append(schedule, models.ScheduleItem{
				ID:         fmt.Sprintf("duel-%d", n),
				Round:      n,
				Team1Name:  duelistName(teams[i], i),
				Team2Name:  duelistName(teams[j], j),
				Team1Index: i,
				Team2Index: j,
			})
		}
	}

	if g.rng != nil {
		g.rng.Shuffle(len(schedule), func(i, j int) {
			schedule[i], schedule[j] = schedule[j], schedule[i]
		})
	}
	for i := range schedule {
		schedule[i].Round = i + 1
	}
	return schedule, nil
}

func duelistName(team models.Team, idx int) string {
	if len(team) == 0 {
		return fmt.Sprintf("DUELISTA %d", idx+1)
	}
	return strings.ToUpper(team[0].Name)
}
