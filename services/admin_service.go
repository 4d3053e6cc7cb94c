package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/joaomidowz/vargas-mix/live"
	"github.com/joaomidowz/vargas-mix/repositories"
	"github.com/joaomidowz/vargas-mix/utils"
)

type AdminService interface {
	ResetSeason(ctx context.Context, input ResetSeasonInput) error
}

type ResetSeasonInput struct {
	Password string `json:"password"`
	Confirm  bool   `json:"confirm"`
}

type adminService struct {
	db                *sql.DB
	playerRepo        repositories.PlayerRepository
	matchRepo         repositories.MatchRecordRepository
	stateRepo         repositories.TournamentStateRepository
	hub               *live.Hub
	adminPasswordHash string
	logger            *slog.Logger
}

func NewAdminService(
	db *sql.DB,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRecordRepository,
	stateRepo repositories.TournamentStateRepository,
	hub *live.Hub,
	adminPasswordHash string,
	logger *slog.Logger,
) AdminService {
	return &adminService{
		db:                db,
		playerRepo:        playerRepo,
		matchRepo:         matchRepo,
		stateRepo:         stateRepo,
		hub:               hub,
		adminPasswordHash: adminPasswordHash,
		logger:            logger,
	}
}

// ResetSeason wipes every stat, the match ledger and the active tournament in
// one transaction. The roster itself survives. Requires the admin password and
// an explicit confirm flag, both checked before anything is touched.
func (s *adminService) ResetSeason(ctx context.Context, input ResetSeasonInput) error {
	if !input.Confirm {
		return ErrConfirmationMissing
	}
	if !utils.CheckPasswordHash(input.Password, s.adminPasswordHash) {
		return ErrInvalidAdminPassword
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin season reset transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.playerRepo.ResetAllStats(ctx, tx); err != nil {
		return fmt.Errorf("failed to reset player stats: %w", err)
	}
	if err := s.matchRepo.DeleteAll(ctx, tx); err != nil {
		return fmt.Errorf("failed to clear match history: %w", err)
	}
	if err := s.stateRepo.Clear(ctx, tx); err != nil {
		return fmt.Errorf("failed to clear tournament state: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit season reset: %w", err)
	}

	s.hub.BroadcastSnapshot(broadcastCleared, &TournamentView{})
	s.logger.InfoContext(ctx, "season reset completed")
	return nil
}
