package mix

import (
	"errors"
	"fmt"

	"github.com/joaomidowz/vargas-mix/models"
)

var (
	ErrVetoDecided    = errors.New("veto already decided a map")
	ErrVetoNeedsMaps  = errors.New("veto needs at least two candidate maps")
	ErrVetoInvalidBan = errors.New("invalid veto ban")
)

// Veto is the alternating-ban mini-game for one fixture. The two team labels
// take turns striking candidates until a single map remains; that map is the
// terminal result. The reducer holds no reference to the tournament state and
// can be reset at will.
type Veto struct {
	Team1Name  string
	Team2Name  string
	candidates []models.GameMap
	banned     map[string]bool
	turn       int // 0 = team1, 1 = team2
}

func NewVeto(team1Name, team2Name string, candidates []models.GameMap) (*Veto, error) {
	if len(candidates) < 2 {
		return nil, ErrVetoNeedsMaps
	}
	maps := make([]models.GameMap, len(candidates))
	copy(maps, candidates)
	return &Veto{
		Team1Name:  team1Name,
		Team2Name:  team2Name,
		candidates: maps,
		banned:     make(map[string]bool),
	}, nil
}

// Ban strikes one candidate on behalf of the team whose turn it is.
func (v *Veto) Ban(mapID string) error {
	if _, done := v.Decided(); done {
		return ErrVetoDecided
	}
	found := false
	for _, m := range v.candidates {
		if m.ID == mapID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: map %q is not a candidate", ErrVetoInvalidBan, mapID)
	}
	if v.banned[mapID] {
		return fmt.Errorf("%w: map %q is already banned", ErrVetoInvalidBan, mapID)
	}
	v.banned[mapID] = true
	v.turn = 1 - v.turn
	return nil
}

// Decided returns the surviving map name once the candidates are reduced to
// one.
func (v *Veto) Decided() (string, bool) {
	var last *models.GameMap
	remaining := 0
	for i := range v.candidates {
		if !v.banned[v.candidates[i].ID] {
			remaining++
			last = &v.candidates[i]
		}
	}
	if remaining == 1 {
		return last.Name, true
	}
	return "", false
}

// Remaining lists the candidates still in play, in original order.
func (v *Veto) Remaining() []models.GameMap {
	out := make([]models.GameMap, 0, len(v.candidates))
	for _, m := range v.candidates {
		if !v.banned[m.ID] {
			out = append(out, m)
		}
	}
	return out
}

// TurnName is the label of the side expected to ban next.
func (v *Veto) TurnName() string {
	if v.turn == 0 {
		return v.Team1Name
	}
	return v.Team2Name
}

// Reset clears every ban and hands the first strike back to team 1.
func (v *Veto) Reset() {
	v.banned = make(map[string]bool)
	v.turn = 0
}
