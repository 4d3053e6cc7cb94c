package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joaomidowz/vargas-mix/live"
	"github.com/joaomidowz/vargas-mix/mix"
	"github.com/joaomidowz/vargas-mix/models"
	"github.com/joaomidowz/vargas-mix/repositories"
)

const (
	broadcastUpdated = "TOURNAMENT_UPDATED"
	broadcastCleared = "TOURNAMENT_CLEARED"
)

type TournamentService interface {
	Generate(ctx context.Context, input GenerateInput) (*TournamentView, error)
	Get(ctx context.Context) (*TournamentView, error)
	BanMap(ctx context.Context, mapID string) (*TournamentView, error)
	RedoVeto(ctx context.Context) (*TournamentView, error)
	RecordResult(ctx context.Context, score1, score2 int) (*TournamentView, error)
	Reset(ctx context.Context) error
}

type GenerateInput struct {
	SelectedIDs []string        `json:"selectedIds"`
	LockedIDs   []string        `json:"lockedIds"`
	Mode        models.GameMode `json:"mode"`
}

// VetoView is the poll-friendly projection of an in-progress map veto.
type VetoView struct {
	Team1Name string           `json:"team1Name"`
	Team2Name string           `json:"team2Name"`
	TurnName  string           `json:"turnName"`
	Remaining []models.GameMap `json:"remaining"`
}

// TournamentView is what both the polling endpoint and the websocket push
// carry: the full state plus the derived phase and the live veto, if any.
type TournamentView struct {
	State *models.TournamentState `json:"state"`
	Phase mix.Phase               `json:"phase,omitempty"`
	Veto  *VetoView               `json:"veto,omitempty"`
}

type tournamentService struct {
	db         *sql.DB
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRecordRepository
	mapRepo    repositories.GameMapRepository
	stateRepo  repositories.TournamentStateRepository
	hub        *live.Hub
	logger     *slog.Logger

	mu   sync.Mutex
	rng  *rand.Rand
	veto *mix.Veto
}

func NewTournamentService(
	db *sql.DB,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRecordRepository,
	mapRepo repositories.GameMapRepository,
	stateRepo repositories.TournamentStateRepository,
	hub *live.Hub,
	rng *rand.Rand,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:         db,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		mapRepo:    mapRepo,
		stateRepo:  stateRepo,
		hub:        hub,
		rng:        rng,
		logger:     logger,
	}
}

func (s *tournamentService) Generate(ctx context.Context, input GenerateInput) (*TournamentView, error) {
	if !input.Mode.Valid() {
		return nil, ErrInvalidGameMode
	}
	if len(input.SelectedIDs) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	selected, err := s.playerRepo.ListByIDs(ctx, input.SelectedIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load selected players: %w", err)
	}
	if len(selected) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	if input.Mode == models.ModeVsVargas && !hasChampion(selected) {
		return nil, ErrChampionNotFound
	}

	lockedSet := make(map[string]bool, len(input.LockedIDs))
	for _, id := range input.LockedIDs {
		lockedSet[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	teams := mix.Assemble(selected, lockedSet, input.Mode, s.rng)
	teams, schedule, err := mix.Schedule(teams, input.Mode, s.rng)
	if err != nil {
		if errors.Is(err, mix.ErrNotEnoughTeams) || errors.Is(err, mix.ErrBracketTooSmall) {
			return nil, fmt.Errorf("%w: %v", ErrNotEnoughPlayers, err)
		}
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}

	state := &models.TournamentState{
		Teams:            teams,
		Schedule:         schedule,
		ActiveMatchIndex: 0,
		Mode:             input.Mode,
		SelectedIDs:      input.SelectedIDs,
		LockedIDs:        input.LockedIDs,
	}

	if err := s.saveState(ctx, nil, state); err != nil {
		return nil, err
	}
	s.veto = nil

	view := s.viewOf(state)
	s.hub.BroadcastSnapshot(broadcastUpdated, view)
	s.logger.InfoContext(ctx, "tournament generated",
		slog.String("mode", string(input.Mode)),
		slog.Int("teams", len(teams)),
		slog.Int("fixtures", len(schedule)),
	)
	return view, nil
}

func (s *tournamentService) Get(ctx context.Context) (*TournamentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &TournamentView{}, nil
	}
	return s.viewOf(state), nil
}

func (s *tournamentService) BanMap(ctx context.Context, mapID string) (*TournamentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.requireState(ctx)
	if err != nil {
		return nil, err
	}
	fixture := state.ActiveFixture()
	if fixture == nil {
		return nil, ErrTournamentFinished
	}
	if state.DecidedMap != nil {
		return nil, mix.ErrVetoDecided
	}

	if s.veto == nil {
		if err := s.startVeto(ctx, state, fixture); err != nil {
			return nil, err
		}
	}

	if err := s.veto.Ban(mapID); err != nil {
		return nil, err
	}

	if decided, done := s.veto.Decided(); done {
		if err := mix.SetDecidedMap(state, decided); err != nil {
			return nil, err
		}
		if err := s.saveState(ctx, nil, state); err != nil {
			return nil, err
		}
		s.veto = nil
	}

	view := s.viewOf(state)
	s.hub.BroadcastSnapshot(broadcastUpdated, view)
	return view, nil
}

func (s *tournamentService) RedoVeto(ctx context.Context) (*TournamentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.requireState(ctx)
	if err != nil {
		return nil, err
	}
	if err := mix.RedoVeto(state); err != nil {
		return nil, err
	}
	// Drop the in-memory reducer entirely so the next ban starts from the
	// current map pool.
	s.veto = nil

	if err := s.saveState(ctx, nil, state); err != nil {
		return nil, err
	}

	view := s.viewOf(state)
	s.hub.BroadcastSnapshot(broadcastUpdated, view)
	return view, nil
}

func (s *tournamentService) RecordResult(ctx context.Context, score1, score2 int) (*TournamentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.requireState(ctx)
	if err != nil {
		return nil, err
	}

	outcome, err := mix.RecordResult(state, score1, score2)
	if err != nil {
		return nil, err
	}

	record := &models.MatchRecord{
		ID:        uuid.NewString(),
		MapName:   outcome.Fixture.MapName,
		Team1Name: outcome.Fixture.Team1Name,
		Team2Name: outcome.Fixture.Team2Name,
		Score1:    score1,
		Score2:    score2,
		Roster1:   strings.Join(outcome.Team1.PlayerNames(), ", "),
		Roster2:   strings.Join(outcome.Team2.PlayerNames(), ", "),
	}

	// One transaction covers the ledger row, every stat update and the
	// advanced state. A crash leaves either the whole result or none of it.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin result transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.matchRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}
	if err := s.applyStats(ctx, tx, outcome, score1, score2, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.saveState(ctx, tx, state); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit result transaction: %w", err)
	}

	view := s.viewOf(state)
	s.hub.BroadcastSnapshot(broadcastUpdated, view)
	s.logger.InfoContext(ctx, "fixture result recorded",
		slog.String("fixture", outcome.Fixture.ID),
		slog.Int("score1", score1),
		slog.Int("score2", score2),
		slog.Bool("finished", outcome.Finished),
	)
	return view, nil
}

func (s *tournamentService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.stateRepo.Clear(ctx, nil); err != nil {
		return err
	}
	s.veto = nil
	s.hub.BroadcastSnapshot(broadcastCleared, &TournamentView{})
	s.logger.InfoContext(ctx, "tournament reset")
	return nil
}

// applyStats refreshes each participant from the roster table before applying
// the outcome, so stats accumulated by earlier fixtures are not overwritten.
func (s *tournamentService) applyStats(ctx context.Context, tx *sql.Tx, outcome *mix.Outcome, score1, score2 int, playedAt time.Time) error {
	won1 := score1 > score2
	won2 := score2 > score1

	sides := []struct {
		team models.Team
		won  bool
		lost bool
	}{
		{outcome.Team1, won1, won2},
		{outcome.Team2, won2, won1},
	}

	for _, side := range sides {
		if len(side.team) == 0 {
			continue
		}
		players, err := s.playerRepo.ListByIDs(ctx, side.team.PlayerIDs())
		if err != nil {
			return fmt.Errorf("failed to load roster for stats update: %w", err)
		}
		for i := range players {
			mix.ApplyMatchOutcome(&players[i], side.won, side.lost, playedAt)
			if err := s.playerRepo.UpdateStats(ctx, tx, &players[i]); err != nil {
				return fmt.Errorf("failed to update stats for player %s: %w", players[i].ID, err)
			}
		}
	}
	return nil
}

func (s *tournamentService) startVeto(ctx context.Context, state *models.TournamentState, fixture *models.ScheduleItem) error {
	candidates, err := s.mapRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load veto candidates: %w", err)
	}
	team1Name, team2Name := mix.FixtureLabels(state, *fixture)
	veto, err := mix.NewVeto(team1Name, team2Name, candidates)
	if err != nil {
		return err
	}
	s.veto = veto
	return nil
}

func (s *tournamentService) loadState(ctx context.Context) (*models.TournamentState, error) {
	payload, err := s.stateRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}
	state, err := models.ParseTournamentState(payload)
	if err != nil {
		// A corrupt snapshot is unrecoverable; surface it instead of
		// silently dropping the tournament.
		return nil, fmt.Errorf("stored tournament state is invalid: %w", err)
	}
	return state, nil
}

func (s *tournamentService) requireState(ctx context.Context) (*models.TournamentState, error) {
	state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrNoTournament
	}
	return state, nil
}

func (s *tournamentService) saveState(ctx context.Context, exec repositories.SQLExecutor, state *models.TournamentState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal tournament state: %w", err)
	}
	return s.stateRepo.Save(ctx, exec, payload)
}

func (s *tournamentService) viewOf(state *models.TournamentState) *TournamentView {
	view := &TournamentView{
		State: state,
		Phase: mix.CurrentPhase(state),
	}
	if s.veto != nil {
		view.Veto = &VetoView{
			Team1Name: s.veto.Team1Name,
			Team2Name: s.veto.Team2Name,
			TurnName:  s.veto.TurnName(),
			Remaining: s.veto.Remaining(),
		}
	}
	return view
}

func hasChampion(players []models.Player) bool {
	for _, p := range players {
		if p.IsChampionPlayer() {
			return true
		}
	}
	return false
}
