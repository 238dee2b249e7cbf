package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unicontest/competition-system/models"
)

func TestComputePoints(t *testing.T) {
	scoring := models.Scoring{Easy: 10, Medium: 20, Hard: 30}

	tests := []struct {
		name       string
		difficulty models.ProblemDifficulty
		status     models.SubmissionStatus
		want       int
	}{
		{"accepted easy", models.DifficultyEasy, models.SubmissionAccepted, 10},
		{"accepted medium", models.DifficultyMedium, models.SubmissionAccepted, 20},
		{"accepted hard", models.DifficultyHard, models.SubmissionAccepted, 30},
		{"unknown difficulty scores zero", models.ProblemDifficulty("insane"), models.SubmissionAccepted, 0},
		{"wrong answer scores zero", models.DifficultyHard, models.SubmissionWrongAnswer, 0},
		{"time limit scores zero", models.DifficultyEasy, models.SubmissionTimeLimitExceeded, 0},
	}
	for _, tt := range tests {
		if got := ComputePoints(tt.difficulty, scoring, tt.status); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestComputeElapsed(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 10, 0, 0, time.UTC)

	got, err := ComputeElapsed("2024-01-01T00:00:00Z", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 600 {
		t.Errorf("got %d seconds, want 600", got)
	}

	// Offset-less instants are treated as UTC.
	got, err = ComputeElapsed("2024-01-01T00:00:00", now)
	if err != nil {
		t.Fatalf("unexpected error for naive instant: %v", err)
	}
	if got != 600 {
		t.Errorf("naive instant: got %d seconds, want 600", got)
	}

	if _, err := ComputeElapsed("next tuesday", now); !errors.Is(err, ErrCompetitionDateInvalid) {
		t.Errorf("expected ErrCompetitionDateInvalid, got %v", err)
	}
}

func newScoringFixture(t *testing.T) (*scoringService, *fakeTeamRepo, *models.User) {
	t.Helper()

	compRepo := newFakeCompetitionRepo()
	teamRepo := newFakeTeamRepo()

	comp := &models.Competition{
		ID:     "comp-1",
		Title:  "Spring Cup",
		Date:   "2024-01-01T00:00:00Z",
		Status: models.StatusActive,
		Problems: []models.Problem{
			{ID: "p1", Title: "Two Sum", Difficulty: models.DifficultyEasy},
			{ID: "p2", Title: "Median", Difficulty: models.DifficultyHard},
		},
		Scoring: models.Scoring{Easy: 10, Medium: 20, Hard: 30},
	}
	if err := compRepo.Create(context.Background(), comp); err != nil {
		t.Fatalf("seed competition: %v", err)
	}

	team := &models.Team{Code: "ABCDEF", TeamName: "gophers", MaxMembers: 3, CurrentMembers: 1, Submissions: []models.Submission{}}
	if err := teamRepo.Create(context.Background(), team); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	svc := &scoringService{
		competitionRepo: compRepo,
		teamRepo:        teamRepo,
		now:             func() time.Time { return time.Date(2024, 1, 1, 0, 10, 0, 0, time.UTC) },
	}
	return svc, teamRepo, &models.User{Username: "alice", TeamCode: "ABCDEF"}
}

func TestRecordSubmissionAccrues(t *testing.T) {
	svc, teamRepo, user := newScoringFixture(t)
	ctx := context.Background()

	sub, err := svc.RecordSubmission(ctx, "comp-1", "p1", user, models.SubmissionAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Time != 600 {
		t.Errorf("elapsed: got %d, want 600", sub.Time)
	}
	if sub.Points != 10 {
		t.Errorf("points: got %d, want 10", sub.Points)
	}
	if sub.Member != "alice" {
		t.Errorf("member: got %q", sub.Member)
	}

	team, err := teamRepo.GetByCode(ctx, "ABCDEF")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if team.Points != 10 || len(team.Submissions) != 1 {
		t.Fatalf("team after first submission: points=%d subs=%d", team.Points, len(team.Submissions))
	}

	// A repeated accepted submission to the same problem scores again.
	if _, err := svc.RecordSubmission(ctx, "comp-1", "p1", user, models.SubmissionAccepted); err != nil {
		t.Fatalf("repeat submission: %v", err)
	}
	team, _ = teamRepo.GetByCode(ctx, "ABCDEF")
	if team.Points != 20 || len(team.Submissions) != 2 {
		t.Fatalf("team after repeat: points=%d subs=%d", team.Points, len(team.Submissions))
	}
}

func TestRecordSubmissionRejectedVerdictIsKept(t *testing.T) {
	svc, teamRepo, user := newScoringFixture(t)
	ctx := context.Background()

	sub, err := svc.RecordSubmission(ctx, "comp-1", "p2", user, models.SubmissionWrongAnswer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Points != 0 {
		t.Errorf("rejected verdict points: got %d, want 0", sub.Points)
	}

	team, _ := teamRepo.GetByCode(ctx, "ABCDEF")
	if team.Points != 0 || len(team.Submissions) != 1 {
		t.Fatalf("team after rejected verdict: points=%d subs=%d", team.Points, len(team.Submissions))
	}
}

func TestRecordSubmissionErrors(t *testing.T) {
	svc, _, user := newScoringFixture(t)
	ctx := context.Background()

	if _, err := svc.RecordSubmission(ctx, "comp-1", "nope", user, models.SubmissionAccepted); !errors.Is(err, ErrProblemNotFound) {
		t.Errorf("unknown problem: got %v, want ErrProblemNotFound", err)
	}
	if _, err := svc.RecordSubmission(ctx, "missing", "p1", user, models.SubmissionAccepted); !errors.Is(err, ErrCompetitionNotFound) {
		t.Errorf("unknown competition: got %v, want ErrCompetitionNotFound", err)
	}
	loner := &models.User{Username: "bob"}
	if _, err := svc.RecordSubmission(ctx, "comp-1", "p1", loner, models.SubmissionAccepted); !errors.Is(err, ErrUserNotInTeam) {
		t.Errorf("teamless user: got %v, want ErrUserNotInTeam", err)
	}
}
