package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/joaomidowz/vargas-mix/models"
	"github.com/joaomidowz/vargas-mix/repositories"
)

type RosterService interface {
	AddPlayer(ctx context.Context, input AddPlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id string) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	Leaderboard(ctx context.Context) ([]models.Player, error)
	SetSub(ctx context.Context, id string, isSub bool) (*models.Player, error)
	SetChampion(ctx context.Context, id string, isChampion bool) (*models.Player, error)
	DeletePlayer(ctx context.Context, id string) error
}

type AddPlayerInput struct {
	Name  string
	IsSub bool
}

type rosterService struct {
	playerRepo repositories.PlayerRepository
}

func NewRosterService(playerRepo repositories.PlayerRepository) RosterService {
	return &rosterService{
		playerRepo: playerRepo,
	}
}

func (s *rosterService) AddPlayer(ctx context.Context, input AddPlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	player := &models.Player{
		ID:    uuid.NewString(),
		Name:  name,
		IsSub: input.IsSub,
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, ErrPlayerNameConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *rosterService) GetPlayerByID(ctx context.Context, id string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by id %s: %w", id, err)
	}
	return player, nil
}

func (s *rosterService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if players == nil {
		return []models.Player{}, nil
	}
	return players, nil
}

// Leaderboard возвращает игроков по убыванию побед, при равенстве — по winrate.
func (s *rosterService) Leaderboard(ctx context.Context) ([]models.Player, error) {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Wins != players[j].Wins {
			return players[i].Wins > players[j].Wins
		}
		return players[i].Winrate() > players[j].Winrate()
	})
	return players, nil
}

func (s *rosterService) SetSub(ctx context.Context, id string, isSub bool) (*models.Player, error) {
	if err := s.playerRepo.SetSub(ctx, id, isSub); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update sub flag for player %s: %w", id, err)
	}
	return s.GetPlayerByID(ctx, id)
}

func (s *rosterService) SetChampion(ctx context.Context, id string, isChampion bool) (*models.Player, error) {
	if err := s.playerRepo.SetChampion(ctx, id, isChampion); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update champion flag for player %s: %w", id, err)
	}
	return s.GetPlayerByID(ctx, id)
}

func (s *rosterService) DeletePlayer(ctx context.Context, id string) error {
	err := s.playerRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	return nil
}
