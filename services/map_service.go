package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gosimple/slug"
	"github.com/joaomidowz/vargas-mix/models"
	"github.com/joaomidowz/vargas-mix/repositories"
	"github.com/joaomidowz/vargas-mix/storage"
)

var (
	ErrUnsupportedImageType = errors.New("unsupported image content type")
	ErrUploadsDisabled      = errors.New("image uploads are disabled: object storage is not configured")
)

type GameMapService interface {
	CreateMap(ctx context.Context, name string) (*models.GameMap, error)
	ListMaps(ctx context.Context) ([]models.GameMap, error)
	UploadMapImage(ctx context.Context, id string, contentType string, reader io.Reader) (*models.GameMap, error)
	DeleteMap(ctx context.Context, id string) error
}

type gameMapService struct {
	mapRepo  repositories.GameMapRepository
	uploader storage.FileUploader
}

func NewGameMapService(mapRepo repositories.GameMapRepository, uploader storage.FileUploader) GameMapService {
	return &gameMapService{
		mapRepo:  mapRepo,
		uploader: uploader,
	}
}

func (s *gameMapService) CreateMap(ctx context.Context, name string) (*models.GameMap, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMapNameRequired
	}

	gameMap := &models.GameMap{
		ID:   slug.Make(name),
		Name: name,
	}

	if err := s.mapRepo.Create(ctx, gameMap); err != nil {
		if errors.Is(err, repositories.ErrGameMapNameConflict) {
			return nil, ErrMapNameConflict
		}
		return nil, fmt.Errorf("failed to create game map: %w", err)
	}
	return gameMap, nil
}

func (s *gameMapService) ListMaps(ctx context.Context) ([]models.GameMap, error) {
	maps, err := s.mapRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list game maps: %w", err)
	}
	for i := range maps {
		s.populateImageURL(&maps[i])
	}
	return maps, nil
}

func (s *gameMapService) UploadMapImage(ctx context.Context, id string, contentType string, reader io.Reader) (*models.GameMap, error) {
	gameMap, err := s.mapRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameMapNotFound) {
			return nil, ErrGameMapNotFound
		}
		return nil, fmt.Errorf("failed to get game map %s: %w", id, err)
	}

	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	ext, err := extensionForContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("maps/%s%s", gameMap.ID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload map image: %w", err)
	}

	oldKey := gameMap.ImageKey
	if err := s.mapRepo.UpdateImageKey(ctx, gameMap.ID, &key); err != nil {
		return nil, fmt.Errorf("failed to store image key for map %s: %w", gameMap.ID, err)
	}
	if oldKey != nil && *oldKey != key {
		// Best effort: a stale object is harmless.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	gameMap.ImageKey = &key
	s.populateImageURL(gameMap)
	return gameMap, nil
}

func (s *gameMapService) DeleteMap(ctx context.Context, id string) error {
	gameMap, err := s.mapRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameMapNotFound) {
			return ErrGameMapNotFound
		}
		return fmt.Errorf("failed to get game map %s: %w", id, err)
	}

	if err := s.mapRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrGameMapNotFound) {
			return ErrGameMapNotFound
		}
		return fmt.Errorf("failed to delete game map %s: %w", id, err)
	}

	if s.uploader != nil && gameMap.ImageKey != nil && *gameMap.ImageKey != "" {
		_ = s.uploader.Delete(ctx, *gameMap.ImageKey)
	}
	return nil
}

func (s *gameMapService) populateImageURL(gameMap *models.GameMap) {
	if gameMap == nil || gameMap.ImageKey == nil || *gameMap.ImageKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*gameMap.ImageKey); url != "" {
		gameMap.ImageURL = &url
	}
}

func extensionForContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImageType, contentType)
	}
}
