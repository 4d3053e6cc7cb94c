package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/joaomidowz/vargas-mix/models"
)

var ErrMatchRecordNotFound = errors.New("match record not found")

type MatchRecordRepository interface {
	Create(ctx context.Context, exec SQLExecutor, record *models.MatchRecord) error
	ListRecent(ctx context.Context, limit int) ([]models.MatchRecord, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context, exec SQLExecutor) error
	CountByMap(ctx context.Context) ([]models.MapPlayCount, error)
}

type postgresMatchRecordRepository struct {
	db *sql.DB
}

func NewPostgresMatchRecordRepository(db *sql.DB) MatchRecordRepository {
	return &postgresMatchRecordRepository{db: db}
}

func (r *postgresMatchRecordRepository) Create(ctx context.Context, exec SQLExecutor, record *models.MatchRecord) error {
	query := `
		INSERT INTO match_records (id, map_name, team1_name, team2_name, score1, score2, roster1, roster2)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING date`

	err := exec.QueryRowContext(ctx, query,
		record.ID,
		record.MapName,
		record.Team1Name,
		record.Team2Name,
		record.Score1,
		record.Score2,
		record.Roster1,
		record.Roster2,
	).Scan(&record.Date)
	if err != nil {
		return fmt.Errorf("failed to insert match record: %w", err)
	}
	return nil
}

func (r *postgresMatchRecordRepository) ListRecent(ctx context.Context, limit int) ([]models.MatchRecord, error) {
	query := `
		SELECT id, date, map_name, team1_name, team2_name, score1, score2, roster1, roster2
		FROM match_records
		ORDER BY date DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query match records: %w", err)
	}
	defer rows.Close()

	records := make([]models.MatchRecord, 0)
	for rows.Next() {
		var rec models.MatchRecord
		if scanErr := rows.Scan(
			&rec.ID,
			&rec.Date,
			&rec.MapName,
			&rec.Team1Name,
			&rec.Team2Name,
			&rec.Score1,
			&rec.Score2,
			&rec.Roster1,
			&rec.Roster2,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match record row: %w", scanErr)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match record rows iteration: %w", err)
	}
	return records, nil
}

func (r *postgresMatchRecordRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM match_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match record %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchRecordNotFound)
}

func (r *postgresMatchRecordRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM match_records`); err != nil {
		return fmt.Errorf("failed to delete match records: %w", err)
	}
	return nil
}

func (r *postgresMatchRecordRepository) CountByMap(ctx context.Context) ([]models.MapPlayCount, error) {
	query := `
		SELECT map_name, COUNT(*)
		FROM match_records
		WHERE map_name IS NOT NULL
		GROUP BY map_name
		ORDER BY COUNT(*) DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query map play counts: %w", err)
	}
	defer rows.Close()

	counts := make([]models.MapPlayCount, 0)
	for rows.Next() {
		var c models.MapPlayCount
		if scanErr := rows.Scan(&c.MapName, &c.Count); scanErr != nil {
			return nil, fmt.Errorf("failed to scan map play count row: %w", scanErr)
		}
		counts = append(counts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during map play count rows iteration: %w", err)
	}
	return counts, nil
}
