package services

import (
	"context"
	"io"
	"sort"

	"github.com/unicontest/competition-system/models"
	"github.com/unicontest/competition-system/repositories"
	"github.com/unicontest/competition-system/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mirror the conditional-update semantics of
// the mongo implementations so the services can be exercised without a store.

type fakeUserRepo struct {
	users map[string]*models.User // keyed by username
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = primitive.NewObjectID()
	clone := *user
	r.users[user.Username] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) SetTeamCode(ctx context.Context, username, code string) error {
	u, ok := r.users[username]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.TeamCode = code
	return nil
}

func (r *fakeUserRepo) ListByTeamCode(ctx context.Context, code string) ([]models.User, error) {
	return r.ListByTeamCodes(ctx, []string{code})
}

func (r *fakeUserRepo) ListByTeamCodes(ctx context.Context, codes []string) ([]models.User, error) {
	wanted := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		wanted[c] = struct{}{}
	}
	names := make([]string, 0, len(r.users))
	for name := range r.users {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic iteration for assertions
	out := make([]models.User, 0)
	for _, name := range names {
		u := r.users[name]
		if _, ok := wanted[u.TeamCode]; ok && u.TeamCode != "" {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeTeamRepo struct {
	teams map[string]*models.Team // keyed by code
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]*models.Team)}
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	team.ID = primitive.NewObjectID()
	clone := *team
	clone.Submissions = append([]models.Submission(nil), team.Submissions...)
	r.teams[team.Code] = &clone
	return nil
}

func (r *fakeTeamRepo) GetByCode(ctx context.Context, code string) (*models.Team, error) {
	t, ok := r.teams[code]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	clone := *t
	clone.Submissions = append([]models.Submission(nil), t.Submissions...)
	return &clone, nil
}

func (r *fakeTeamRepo) ListCodes(ctx context.Context) (map[string]struct{}, error) {
	codes := make(map[string]struct{}, len(r.teams))
	for code := range r.teams {
		codes[code] = struct{}{}
	}
	return codes, nil
}

func (r *fakeTeamRepo) ListByCodes(ctx context.Context, codes []string) ([]models.Team, error) {
	out := make([]models.Team, 0, len(codes))
	for _, code := range codes {
		if t, ok := r.teams[code]; ok {
			clone := *t
			clone.Submissions = append([]models.Submission(nil), t.Submissions...)
			out = append(out, clone)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) AddMember(ctx context.Context, code string) error {
	t, ok := r.teams[code]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	if t.CurrentMembers >= t.MaxMembers {
		return repositories.ErrTeamFull
	}
	t.CurrentMembers++
	return nil
}

func (r *fakeTeamRepo) RemoveMember(ctx context.Context, code string) (int, error) {
	t, ok := r.teams[code]
	if !ok {
		return 0, repositories.ErrTeamNotFound
	}
	t.CurrentMembers--
	if t.CurrentMembers <= 0 {
		delete(r.teams, code)
		return 0, nil
	}
	return t.CurrentMembers, nil
}

func (r *fakeTeamRepo) AppendSubmission(ctx context.Context, code string, sub models.Submission) error {
	t, ok := r.teams[code]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.Submissions = append(t.Submissions, sub)
	t.Points += sub.Points
	return nil
}

func (r *fakeTeamRepo) SetAvatar(ctx context.Context, code, avatarKey, avatar string) error {
	t, ok := r.teams[code]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.AvatarKey = &avatarKey
	t.Avatar = avatar
	return nil
}

type fakeCompetitionRepo struct {
	comps map[string]*models.Competition
}

func newFakeCompetitionRepo() *fakeCompetitionRepo {
	return &fakeCompetitionRepo{comps: make(map[string]*models.Competition)}
}

func (r *fakeCompetitionRepo) Create(ctx context.Context, comp *models.Competition) error {
	for _, c := range r.comps {
		if c.ID == comp.ID || c.Title == comp.Title {
			return repositories.ErrCompetitionConflict
		}
	}
	clone := *comp
	r.comps[comp.ID] = &clone
	return nil
}

func (r *fakeCompetitionRepo) GetByID(ctx context.Context, id string) (*models.Competition, error) {
	c, ok := r.comps[id]
	if !ok {
		return nil, repositories.ErrCompetitionNotFound
	}
	clone := *c
	clone.Teams = append([]string(nil), c.Teams...)
	return &clone, nil
}

func (r *fakeCompetitionRepo) List(ctx context.Context, limit int64) ([]models.Competition, error) {
	out := make([]models.Competition, 0, len(r.comps))
	for _, c := range r.comps {
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCompetitionRepo) ListByStatuses(ctx context.Context, statuses ...models.CompetitionStatus) ([]models.Competition, error) {
	out := make([]models.Competition, 0)
	for _, c := range r.comps {
		for _, s := range statuses {
			if c.Status == s {
				out = append(out, *c)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeCompetitionRepo) RegisterTeam(ctx context.Context, id, code string) (int, error) {
	c, ok := r.comps[id]
	if !ok {
		return 0, repositories.ErrCompetitionNotFound
	}
	for _, existing := range c.Teams {
		if existing == code {
			return 0, repositories.ErrCompetitionTeamRegistered
		}
	}
	c.Teams = append(c.Teams, code)
	return len(c.Teams), nil
}

func (r *fakeCompetitionRepo) UpdateStatus(ctx context.Context, id string, status models.CompetitionStatus) error {
	c, ok := r.comps[id]
	if !ok {
		return repositories.ErrCompetitionNotFound
	}
	c.Status = status
	return nil
}

type fakeUploader struct {
	uploads map[string]string // key -> content type
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: make(map[string]string)}
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	u.uploads[key] = contentType
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	delete(u.uploads, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}
