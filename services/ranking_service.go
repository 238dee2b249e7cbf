package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/unicontest/competition-system/models"
	"github.com/unicontest/competition-system/repositories"
	"golang.org/x/sync/errgroup"
)

type RankingService interface {
	BuildRanking(ctx context.Context, competitionID string) (*models.Ranking, error)
	// TeamStanding returns the row and 1-based rank of one registered team.
	TeamStanding(ctx context.Context, competitionID, teamCode string) (*models.RankingRow, int, error)
}

type rankingService struct {
	competitionRepo repositories.CompetitionRepository
	teamRepo        repositories.TeamRepository
	userRepo        repositories.UserRepository
	now             func() time.Time
}

func NewRankingService(
	competitionRepo repositories.CompetitionRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
) RankingService {
	return &rankingService{
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
		userRepo:        userRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// BuildRanking recomputes the full leaderboard from the stored team and user
// documents. Nothing is cached; every call reflects the store as of now.
func (s *rankingService) BuildRanking(ctx context.Context, competitionID string) (*models.Ranking, error) {
	comp, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to load competition: %w", err)
	}

	// Обе выборки независимы, тянем их параллельно.
	var (
		teams []models.Team
		users []models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByCodes(gctx, comp.Teams)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.userRepo.ListByTeamCodes(gctx, comp.Teams)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load ranking inputs: %w", err)
	}

	problemTitles := make(map[string]string, len(comp.Problems))
	for _, p := range comp.Problems {
		problemTitles[p.ID] = p.Title
	}

	rows := make([]models.RankingRow, 0, len(teams))
	totalSolved := 0
	for i := range teams {
		row := buildTeamRow(&teams[i], users, problemTitles)
		row.Achievements = sampleAchievements()
		totalSolved += row.Solves
		rows = append(rows, row)
	}

	markLastSolver(rows)

	// Points descending; equal points resolve by total time ascending. The
	// comparison uses the numeric seconds, the HH:MM:SS strings are display
	// only (zero-padded, so they happen to agree, but nothing depends on it).
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].TotalSeconds < rows[j].TotalSeconds
	})

	return &models.Ranking{
		Ranking: rows,
		Competition: models.RankingSummary{
			Title:       comp.Title,
			Teams:       len(comp.Teams),
			TotalSolved: totalSolved,
			ResTime:     TimeRemaining(comp.Date, comp.Duration, s.now()),
		},
	}, nil
}

func (s *rankingService) TeamStanding(ctx context.Context, competitionID, teamCode string) (*models.RankingRow, int, error) {
	ranking, err := s.BuildRanking(ctx, competitionID)
	if err != nil {
		return nil, 0, err
	}
	for i := range ranking.Ranking {
		if ranking.Ranking[i].Code == teamCode {
			return &ranking.Ranking[i], i + 1, nil
		}
	}
	return nil, 0, ErrTeamNotRegistered
}

// buildTeamRow derives the per-team stats of one leaderboard row.
//
// Submissions are sorted by elapsed time; with a stable sort the last element
// of the sorted sequence is the latest solve, and among equal times the one
// appended last wins. totalTime is that latest elapsed time, lastSolveTime the
// gap to the previous solve (the full elapsed time when there is only one).
func buildTeamRow(team *models.Team, users []models.User, problemTitles map[string]string) models.RankingRow {
	subs := make([]models.Submission, len(team.Submissions))
	copy(subs, team.Submissions)
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].Time < subs[j].Time })

	solves := len(subs)
	var totalSeconds, lastGap int64
	lastSolveTitle := ""
	if solves > 0 {
		last := subs[solves-1]
		totalSeconds = last.Time
		secondLast := int64(0)
		if solves > 1 {
			secondLast = subs[solves-2].Time
		}
		lastGap = last.Time - secondLast
		lastSolveTitle = problemTitles[last.ProblemID]
	}

	members := make([]string, 0)
	for i := range users {
		if users[i].TeamCode == team.Code {
			members = append(members, users[i].Username)
		}
	}

	return models.RankingRow{
		ID:            team.ID.Hex(),
		Code:          team.Code,
		Name:          team.TeamName,
		Avatar:        team.Avatar,
		Color:         team.Color,
		Members:       members,
		Points:        team.Points,
		Solves:        solves,
		TotalTime:     formatSeconds(totalSeconds),
		TotalSeconds:  totalSeconds,
		LastSolve:     lastSolveTitle,
		LastSolveTime: formatSeconds(lastGap),
	}
}

// markLastSolver flags the single team whose latest solve happened last.
// Teams without submissions are never candidates, so when nobody solved
// anything no row carries the flag. Ties keep the first team encountered.
func markLastSolver(rows []models.RankingRow) {
	best := -1
	for i := range rows {
		if rows[i].Solves == 0 {
			continue
		}
		if best == -1 || rows[i].TotalSeconds > rows[best].TotalSeconds {
			best = i
		}
	}
	if best >= 0 {
		rows[best].IsLastSolver = true
	}
}

// TimeRemaining formats the time left until competitionStart + duration as
// HH:MM:SS, clamped to 00:00:00 once elapsed. An unparseable start clamps too.
func TimeRemaining(competitionStart string, durationMinutes int, now time.Time) string {
	start, err := parseCompetitionDate(competitionStart)
	if err != nil {
		return "00:00:00"
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	remaining := int64(end.Sub(now) / time.Second)
	if remaining <= 0 {
		return "00:00:00"
	}
	return formatSeconds(remaining)
}
