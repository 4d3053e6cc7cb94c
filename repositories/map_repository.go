package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/joaomidowz/vargas-mix/models"
	"github.com/lib/pq"
)

var (
	ErrGameMapNotFound     = errors.New("game map not found")
	ErrGameMapNameConflict = errors.New("game map name conflict")
)

type GameMapRepository interface {
	Create(ctx context.Context, gameMap *models.GameMap) error
	GetByID(ctx context.Context, id string) (*models.GameMap, error)
	ListAll(ctx context.Context) ([]models.GameMap, error)
	UpdateImageKey(ctx context.Context, id string, imageKey *string) error
	Delete(ctx context.Context, id string) error
}

type postgresGameMapRepository struct {
	db *sql.DB
}

func NewPostgresGameMapRepository(db *sql.DB) GameMapRepository {
	return &postgresGameMapRepository{db: db}
}

func (r *postgresGameMapRepository) Create(ctx context.Context, gameMap *models.GameMap) error {
	query := `INSERT INTO game_maps (id, name, image_key) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, gameMap.ID, gameMap.Name, gameMap.ImageKey)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrGameMapNameConflict
		}
		return fmt.Errorf("failed to insert game map: %w", err)
	}
	return nil
}

func (r *postgresGameMapRepository) GetByID(ctx context.Context, id string) (*models.GameMap, error) {
	query := `SELECT id, name, image_key FROM game_maps WHERE id = $1`

	gameMap := &models.GameMap{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&gameMap.ID, &gameMap.Name, &gameMap.ImageKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameMapNotFound
		}
		return nil, fmt.Errorf("failed to scan game map %s: %w", id, err)
	}
	return gameMap, nil
}

func (r *postgresGameMapRepository) ListAll(ctx context.Context) ([]models.GameMap, error) {
	query := `SELECT id, name, image_key FROM game_maps ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query game maps: %w", err)
	}
	defer rows.Close()

	maps := make([]models.GameMap, 0)
	for rows.Next() {
		var m models.GameMap
		if scanErr := rows.Scan(&m.ID, &m.Name, &m.ImageKey); scanErr != nil {
			return nil, fmt.Errorf("failed to scan game map row: %w", scanErr)
		}
		maps = append(maps, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during game map rows iteration: %w", err)
	}
	return maps, nil
}

func (r *postgresGameMapRepository) UpdateImageKey(ctx context.Context, id string, imageKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE game_maps SET image_key = $1 WHERE id = $2`, imageKey, id)
	if err != nil {
		return fmt.Errorf("failed to update image key for game map %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrGameMapNotFound)
}

func (r *postgresGameMapRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM game_maps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete game map %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrGameMapNotFound)
}
