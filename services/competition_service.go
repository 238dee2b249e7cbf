package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/unicontest/competition-system/live"
	"github.com/unicontest/competition-system/models"
	"github.com/unicontest/competition-system/repositories"
)

const competitionListLimit = 100

type CreateCompetitionInput struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	MaxTeamSize int                      `json:"maxTeamSize"`
	Date        string                   `json:"date"`
	Status      models.CompetitionStatus `json:"status"`
	Duration    int                      `json:"duration"`
	Problems    []models.Problem         `json:"problems"`
	Rules       []string                 `json:"rules"`
	Scoring     models.Scoring           `json:"scoring"`
}

type CompetitionService interface {
	Create(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error)
	List(ctx context.Context) ([]models.Competition, error)
	GetByID(ctx context.Context, id string) (*models.Competition, error)
	RegisterTeam(ctx context.Context, competitionID, teamCode string) (totalTeams int, err error)
	// AutoUpdateCompetitionStatusesByDates advances upcoming and active
	// competitions according to their start instant and duration, and
	// broadcasts each transition on the live hub.
	AutoUpdateCompetitionStatusesByDates(ctx context.Context) error
}

type competitionService struct {
	competitionRepo repositories.CompetitionRepository
	hub             *live.Hub
	logger          *slog.Logger
	now             func() time.Time
}

func NewCompetitionService(competitionRepo repositories.CompetitionRepository, hub *live.Hub, logger *slog.Logger) CompetitionService {
	return &competitionService{
		competitionRepo: competitionRepo,
		hub:             hub,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *competitionService) Create(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error) {
	var missing []string
	if input.Title == "" {
		missing = append(missing, "title")
	}
	if input.Date == "" {
		missing = append(missing, "date")
	}
	if input.Status == "" {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrCompetitionFieldsMissing, strings.Join(missing, ", "))
	}

	comp := &models.Competition{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		MaxTeamSize: input.MaxTeamSize,
		Date:        input.Date,
		Status:      input.Status,
		Duration:    input.Duration,
		Teams:       []string{},
		Problems:    input.Problems,
		Rules:       input.Rules,
		Scoring:     input.Scoring,
	}

	// Задачи без слага получают его из названия.
	for i := range comp.Problems {
		if comp.Problems[i].Slug == "" {
			comp.Problems[i].Slug = slug.Make(comp.Problems[i].Title)
		}
	}

	if err := s.competitionRepo.Create(ctx, comp); err != nil {
		if errors.Is(err, repositories.ErrCompetitionConflict) {
			return nil, ErrCompetitionConflict
		}
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}
	return comp, nil
}

func (s *competitionService) List(ctx context.Context) ([]models.Competition, error) {
	comps, err := s.competitionRepo.List(ctx, competitionListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	return comps, nil
}

func (s *competitionService) GetByID(ctx context.Context, id string) (*models.Competition, error) {
	comp, err := s.competitionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to load competition: %w", err)
	}
	return comp, nil
}

func (s *competitionService) RegisterTeam(ctx context.Context, competitionID, teamCode string) (int, error) {
	total, err := s.competitionRepo.RegisterTeam(ctx, competitionID, teamCode)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrCompetitionNotFound):
			return 0, ErrCompetitionNotFound
		case errors.Is(err, repositories.ErrCompetitionTeamRegistered):
			return 0, ErrTeamAlreadyRegistered
		}
		return 0, fmt.Errorf("failed to register team: %w", err)
	}
	return total, nil
}

func (s *competitionService) AutoUpdateCompetitionStatusesByDates(ctx context.Context) error {
	comps, err := s.competitionRepo.ListByStatuses(ctx, models.StatusUpcoming, models.StatusActive)
	if err != nil {
		return fmt.Errorf("failed to list competitions for status update: %w", err)
	}

	now := s.now()
	for i := range comps {
		comp := &comps[i]
		start, err := parseCompetitionDate(comp.Date)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping competition with unparseable date",
				slog.String("competition_id", comp.ID), slog.Any("error", err))
			continue
		}

		next := comp.Status
		end := start.Add(time.Duration(comp.Duration) * time.Minute)
		switch {
		case !now.Before(end):
			next = models.StatusCompleted
		case !now.Before(start) && comp.Status == models.StatusUpcoming:
			next = models.StatusActive
		}
		if next == comp.Status {
			continue
		}

		if err := s.competitionRepo.UpdateStatus(ctx, comp.ID, next); err != nil {
			s.logger.ErrorContext(ctx, "failed to advance competition status",
				slog.String("competition_id", comp.ID), slog.Any("error", err))
			continue
		}
		s.logger.InfoContext(ctx, "competition status advanced",
			slog.String("competition_id", comp.ID),
			slog.String("from", string(comp.Status)),
			slog.String("to", string(next)))

		if s.hub != nil {
			s.hub.BroadcastToRoom(live.CompetitionRoom(comp.ID), live.Message{
				Type:   "COMPETITION_STATUS",
				RoomID: live.CompetitionRoom(comp.ID),
				Payload: map[string]string{
					"competitionId": comp.ID,
					"status":        string(next),
				},
			})
		}
	}
	return nil
}
