package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unicontest/competition-system/models"
	"github.com/unicontest/competition-system/repositories"
)

// ComputePoints resolves the points an accepted submission is worth from the
// competition scoring table. Non-accepted verdicts and unrecognized
// difficulties score zero; the lenient default is deliberate.
func ComputePoints(difficulty models.ProblemDifficulty, scoring models.Scoring, status models.SubmissionStatus) int {
	if status != models.SubmissionAccepted {
		return 0
	}
	return scoring.PointsFor(difficulty)
}

// ComputeElapsed returns whole seconds between the competition start and now,
// floored. Fails when the start instant is not parseable ISO-8601.
func ComputeElapsed(competitionStart string, now time.Time) (int64, error) {
	start, err := parseCompetitionDate(competitionStart)
	if err != nil {
		return 0, err
	}
	return int64(now.Sub(start) / time.Second), nil
}

type ScoringService interface {
	RecordSubmission(ctx context.Context, competitionID, problemID string, actingUser *models.User, status models.SubmissionStatus) (*models.Submission, error)
}

type scoringService struct {
	competitionRepo repositories.CompetitionRepository
	teamRepo        repositories.TeamRepository
	now             func() time.Time
}

func NewScoringService(competitionRepo repositories.CompetitionRepository, teamRepo repositories.TeamRepository) ScoringService {
	return &scoringService{
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// RecordSubmission appends an immutable submission to the acting user's team
// and accrues its points. Repeated submissions to an already-solved problem
// score again; deduplication is intentionally absent, the frontend treats the
// submission log as an event history.
func (s *scoringService) RecordSubmission(ctx context.Context, competitionID, problemID string, actingUser *models.User, status models.SubmissionStatus) (*models.Submission, error) {
	if actingUser.TeamCode == "" {
		return nil, ErrUserNotInTeam
	}

	comp, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to load competition: %w", err)
	}

	problem, ok := comp.ProblemByID(problemID)
	if !ok {
		return nil, ErrProblemNotFound
	}

	elapsed, err := ComputeElapsed(comp.Date, s.now())
	if err != nil {
		return nil, err
	}

	sub := models.Submission{
		ProblemID: problem.ID,
		Status:    status,
		Time:      elapsed,
		Member:    actingUser.Username,
		Points:    ComputePoints(problem.Difficulty, comp.Scoring, status),
	}

	if err := s.teamRepo.AppendSubmission(ctx, actingUser.TeamCode, sub); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}
	return &sub, nil
}
