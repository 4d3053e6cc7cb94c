package services

import "errors"

// Ошибки бизнес-логики, общие для сервисов и HTTP-маппинга.
var (
	// Валидация и бизнес-правила
	ErrValidationFailed    = errors.New("validation failed")
	ErrPlayerNameRequired  = errors.New("player name is required")
	ErrMapNameRequired     = errors.New("map name is required")
	ErrInvalidGameMode     = errors.New("invalid game mode")
	ErrNotEnoughPlayers    = errors.New("not enough players selected to form teams")
	ErrChampionNotFound    = errors.New("no champion among the selected players")
	ErrNoTournament        = errors.New("no tournament is currently active")
	ErrTournamentFinished  = errors.New("tournament is already finished")
	ErrVetoNotStarted      = errors.New("map veto has not been started")
	ErrVetoAlreadyStarted  = errors.New("map veto is already in progress")
	ErrConfirmationMissing = errors.New("season reset requires explicit confirmation")

	// Конфликты
	ErrPlayerNameConflict = errors.New("player name is already in use")
	ErrMapNameConflict    = errors.New("map name already exists")

	// Аутентификация
	ErrInvalidCredentials   = errors.New("invalid password")
	ErrInvalidAdminPassword = errors.New("invalid admin password")

	// Сущности
	ErrPlayerNotFound      = errors.New("player not found")
	ErrGameMapNotFound     = errors.New("game map not found")
	ErrMatchRecordNotFound = errors.New("match record not found")
)
