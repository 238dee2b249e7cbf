package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrTeamNameRequired         = errors.New("team name is required")
	ErrTeamCapacityInvalid      = errors.New("team max members must be positive")
	ErrTeamFull                 = errors.New("team is already full")
	ErrUserAlreadyInTeam        = errors.New("user is already a member of this team")
	ErrUserNotInTeam            = errors.New("user does not belong to a team")
	ErrCompetitionFieldsMissing = errors.New("missing required competition fields")
	ErrCompetitionDateInvalid   = errors.New("competition date must be an ISO-8601 instant")

	// Ошибки конфликтов
	ErrEmailTaken            = errors.New("email is already registered")
	ErrCompetitionConflict   = errors.New("competition already exists")
	ErrTeamAlreadyRegistered = errors.New("team is already registered for this competition")

	// Ошибки аутентификации
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Ошибки, специфичные для сущностей (дают больше контекста, чем ErrNotFound)
	ErrUserNotFound        = errors.New("user not found")
	ErrTeamNotFound        = errors.New("team not found")
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrProblemNotFound     = errors.New("problem not found in competition")
	ErrTeamNotRegistered   = errors.New("team is not registered for this competition")
)
