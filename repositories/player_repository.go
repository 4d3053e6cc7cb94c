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
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player name conflict")
)

const playerColumns = `id, name, rating, matches_played, wins, losses, current_streak, is_sub, is_champion, last_played, created_at`

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	ListAll(ctx context.Context) ([]models.Player, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Player, error)
	UpdateStats(ctx context.Context, exec SQLExecutor, player *models.Player) error
	SetSub(ctx context.Context, id string, isSub bool) error
	SetChampion(ctx context.Context, id string, isChampion bool) error
	Delete(ctx context.Context, id string) error
	ResetAllStats(ctx context.Context, exec SQLExecutor) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (id, name, rating, is_sub, is_champion)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.ID,
		player.Name,
		player.Rating,
		player.IsSub,
		player.IsChampion,
	).Scan(&player.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrPlayerNameConflict
		}
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

func scanPlayer(row interface{ Scan(...interface{}) error }, p *models.Player) error {
	var lastPlayed sql.NullTime
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Rating,
		&p.MatchesPlayed,
		&p.Wins,
		&p.Losses,
		&p.CurrentStreak,
		&p.IsSub,
		&p.IsChampion,
		&lastPlayed,
		&p.CreatedAt,
	)
	if err != nil {
		return err
	}
	if lastPlayed.Valid {
		t := lastPlayed.Time
		p.LastPlayed = &t
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	player := &models.Player{}
	err := scanPlayer(r.db.QueryRowContext(ctx, query, id), player)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player %s: %w", id, err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) ListAll(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY name ASC`
	return r.queryPlayers(ctx, query)
}

func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Player, error) {
	if len(ids) == 0 {
		return []models.Player{}, nil
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = ANY($1) ORDER BY name ASC`
	return r.queryPlayers(ctx, query, pq.Array(ids))
}

func (r *postgresPlayerRepository) queryPlayers(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if scanErr := scanPlayer(rows, &p); scanErr != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", scanErr)
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", err)
	}
	return players, nil
}

// UpdateStats persists the mutable statistics columns. Identity fields are
// never touched here.
func (r *postgresPlayerRepository) UpdateStats(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := `
		UPDATE players
		SET matches_played = $1, wins = $2, losses = $3, current_streak = $4, last_played = $5
		WHERE id = $6`

	result, err := exec.ExecContext(ctx, query,
		player.MatchesPlayed,
		player.Wins,
		player.Losses,
		player.CurrentStreak,
		player.LastPlayed,
		player.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update stats for player %s: %w", player.ID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) SetSub(ctx context.Context, id string, isSub bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET is_sub = $1 WHERE id = $2`, isSub, id)
	if err != nil {
		return fmt.Errorf("failed to set sub flag for player %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) SetChampion(ctx context.Context, id string, isChampion bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET is_champion = $1 WHERE id = $2`, isChampion, id)
	if err != nil {
		return fmt.Errorf("failed to set champion flag for player %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// ResetAllStats zeroes every statistics column for the season reset. Player
// identities, ratings and flags survive.
func (r *postgresPlayerRepository) ResetAllStats(ctx context.Context, exec SQLExecutor) error {
	query := `
		UPDATE players
		SET matches_played = 0, wins = 0, losses = 0, current_streak = 0, last_played = NULL`
	if _, err := exec.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to reset player statistics: %w", err)
	}
	return nil
}
