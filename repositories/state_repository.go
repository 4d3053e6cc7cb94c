package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TournamentStateRepository persists the single active tournament as an
// opaque JSON payload. There is at most one row; saving replaces it and
// clearing writes an empty payload.
type TournamentStateRepository interface {
	Save(ctx context.Context, exec SQLExecutor, payload []byte) error
	Load(ctx context.Context) ([]byte, error)
	Clear(ctx context.Context, exec SQLExecutor) error
}

type postgresTournamentStateRepository struct {
	db *sql.DB
}

func NewPostgresTournamentStateRepository(db *sql.DB) TournamentStateRepository {
	return &postgresTournamentStateRepository{db: db}
}

func (r *postgresTournamentStateRepository) Save(ctx context.Context, exec SQLExecutor, payload []byte) error {
	query := `
		INSERT INTO tournament_state (id, payload, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`

	if exec == nil {
		exec = r.db
	}
	if _, err := exec.ExecContext(ctx, query, string(payload)); err != nil {
		return fmt.Errorf("failed to save tournament state: %w", err)
	}
	return nil
}

func (r *postgresTournamentStateRepository) Load(ctx context.Context) ([]byte, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM tournament_state WHERE id = 1`).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load tournament state: %w", err)
	}
	if payload == "" {
		return nil, nil
	}
	return []byte(payload), nil
}

func (r *postgresTournamentStateRepository) Clear(ctx context.Context, exec SQLExecutor) error {
	return r.Save(ctx, exec, []byte(""))
}
