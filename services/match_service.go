package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/joaomidowz/vargas-mix/models"
	"github.com/joaomidowz/vargas-mix/repositories"
)

const defaultHistoryLimit = 50

type MatchService interface {
	History(ctx context.Context, limit int) ([]models.MatchRecord, error)
	MapStats(ctx context.Context) ([]models.MapPlayCount, error)
	DeleteRecord(ctx context.Context, id string) error
}

type matchService struct {
	matchRepo repositories.MatchRecordRepository
}

func NewMatchService(matchRepo repositories.MatchRecordRepository) MatchService {
	return &matchService{
		matchRepo: matchRepo,
	}
}

func (s *matchService) History(ctx context.Context, limit int) ([]models.MatchRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	records, err := s.matchRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load match history: %w", err)
	}
	return records, nil
}

func (s *matchService) MapStats(ctx context.Context) ([]models.MapPlayCount, error) {
	counts, err := s.matchRepo.CountByMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load map play counts: %w", err)
	}
	return counts, nil
}

func (s *matchService) DeleteRecord(ctx context.Context, id string) error {
	err := s.matchRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchRecordNotFound) {
			return ErrMatchRecordNotFound
		}
		return fmt.Errorf("failed to delete match record %s: %w", id, err)
	}
	return nil
}
