package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/unicontest/competition-system/models"
)

func newCompetitionFixture(t *testing.T, now time.Time) (*competitionService, *fakeCompetitionRepo) {
	t.Helper()
	repo := newFakeCompetitionRepo()
	svc := &competitionService{
		competitionRepo: repo,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:             func() time.Time { return now },
	}
	return svc, repo
}

func TestCompetitionCreate(t *testing.T) {
	svc, _ := newCompetitionFixture(t, time.Now())
	ctx := context.Background()

	comp, err := svc.Create(ctx, CreateCompetitionInput{
		Title:    "Spring Cup",
		Date:     "2024-05-01T10:00:00Z",
		Status:   models.StatusUpcoming,
		Duration: 120,
		Problems: []models.Problem{
			{ID: "p1", Title: "Two Sum"},
			{ID: "p2", Title: "Median", Slug: "given-slug"},
		},
		Scoring: models.Scoring{Easy: 10, Medium: 20, Hard: 30},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comp.ID == "" {
		t.Error("id not assigned")
	}
	if comp.Teams == nil || len(comp.Teams) != 0 {
		t.Errorf("teams: got %v, want empty non-nil slice", comp.Teams)
	}
	if comp.Problems[0].Slug != "two-sum" {
		t.Errorf("generated slug: got %q, want two-sum", comp.Problems[0].Slug)
	}
	if comp.Problems[1].Slug != "given-slug" {
		t.Errorf("existing slug overwritten: got %q", comp.Problems[1].Slug)
	}

	got, err := svc.GetByID(ctx, comp.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Title != "Spring Cup" {
		t.Errorf("round trip title: got %q", got.Title)
	}
}

func TestCompetitionCreateValidation(t *testing.T) {
	svc, _ := newCompetitionFixture(t, time.Now())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCompetitionInput{Title: "only title"})
	if !errors.Is(err, ErrCompetitionFieldsMissing) {
		t.Errorf("missing fields: got %v, want ErrCompetitionFieldsMissing", err)
	}

	valid := CreateCompetitionInput{Title: "Spring Cup", Date: "2024-05-01T10:00:00Z", Status: models.StatusUpcoming}
	if _, err := svc.Create(ctx, valid); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, valid); !errors.Is(err, ErrCompetitionConflict) {
		t.Errorf("duplicate title: got %v, want ErrCompetitionConflict", err)
	}
}

func TestCompetitionRegisterTeam(t *testing.T) {
	svc, _ := newCompetitionFixture(t, time.Now())
	ctx := context.Background()

	comp, err := svc.Create(ctx, CreateCompetitionInput{Title: "Spring Cup", Date: "2024-05-01T10:00:00Z", Status: models.StatusUpcoming})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	total, err := svc.RegisterTeam(ctx, comp.ID, "ALPHAX")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if total != 1 {
		t.Errorf("totalTeams: got %d, want 1", total)
	}
	if total, err = svc.RegisterTeam(ctx, comp.ID, "BRAVOX"); err != nil || total != 2 {
		t.Errorf("second register: total=%d err=%v", total, err)
	}

	if _, err := svc.RegisterTeam(ctx, comp.ID, "ALPHAX"); !errors.Is(err, ErrTeamAlreadyRegistered) {
		t.Errorf("duplicate registration: got %v, want ErrTeamAlreadyRegistered", err)
	}
	if _, err := svc.RegisterTeam(ctx, "missing", "ALPHAX"); !errors.Is(err, ErrCompetitionNotFound) {
		t.Errorf("unknown competition: got %v, want ErrCompetitionNotFound", err)
	}
}

func TestAutoUpdateCompetitionStatuses(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc, repo := newCompetitionFixture(t, now)
	ctx := context.Background()

	seed := []*models.Competition{
		{ID: "starts-now", Title: "a", Date: "2024-05-01T11:00:00Z", Duration: 120, Status: models.StatusUpcoming},
		{ID: "already-over", Title: "b", Date: "2024-05-01T09:00:00Z", Duration: 60, Status: models.StatusActive},
		{ID: "still-future", Title: "c", Date: "2024-05-02T10:00:00Z", Duration: 60, Status: models.StatusUpcoming},
		{ID: "bad-date", Title: "d", Date: "whenever", Duration: 60, Status: models.StatusUpcoming},
	}
	for _, c := range seed {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("seed %s: %v", c.ID, err)
		}
	}

	if err := svc.AutoUpdateCompetitionStatusesByDates(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]models.CompetitionStatus{
		"starts-now":   models.StatusActive,
		"already-over": models.StatusCompleted,
		"still-future": models.StatusUpcoming,
		"bad-date":     models.StatusUpcoming,
	}
	for id, status := range want {
		got, err := repo.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("get %s: %v", id, err)
		}
		if got.Status != status {
			t.Errorf("%s: got %q, want %q", id, got.Status, status)
		}
	}
}
