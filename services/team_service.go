package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/unicontest/competition-system/models"
	"github.com/unicontest/competition-system/repositories"
	"github.com/unicontest/competition-system/storage"
)

type CreateTeamInput struct {
	TeamName   string `json:"teamName"`
	MaxMembers int    `json:"maxMembers"`
	Avatar     string `json:"avatar"`
	Color      string `json:"color"`
}

type TeamService interface {
	Create(ctx context.Context, actingUser *models.User, input CreateTeamInput) (*models.Team, error)
	Join(ctx context.Context, actingUser *models.User, code string) error
	Leave(ctx context.Context, actingUser *models.User) error
	GetByCode(ctx context.Context, code string) (*models.Team, []models.TeamMember, error)
	UploadAvatar(ctx context.Context, actingUser *models.User, contentType string, body io.Reader) (string, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, userRepo repositories.UserRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		uploader: uploader,
	}
}

// Create generates a fresh join code, inserts the team with the acting user as
// its first member and relinks the user. Leaving the previous team (and
// dissolving it when it empties) happens as part of the same operation.
func (s *teamService) Create(ctx context.Context, actingUser *models.User, input CreateTeamInput) (*models.Team, error) {
	if input.TeamName == "" {
		return nil, ErrTeamNameRequired
	}
	if input.MaxMembers < 1 {
		return nil, ErrTeamCapacityInvalid
	}

	existing, err := s.teamRepo.ListCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list team codes: %w", err)
	}
	code := GenerateUniqueCode(existing, TeamCodeLength)

	team := &models.Team{
		Code:           code,
		TeamName:       input.TeamName,
		Avatar:         input.Avatar,
		Color:          input.Color,
		MaxMembers:     input.MaxMembers,
		CurrentMembers: 1,
		Submissions:    []models.Submission{},
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	if prev := actingUser.TeamCode; prev != "" && prev != code {
		if _, err := s.teamRepo.RemoveMember(ctx, prev); err != nil && !errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("failed to leave previous team %s: %w", prev, err)
		}
	}

	if err := s.userRepo.SetTeamCode(ctx, actingUser.Username, code); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// The user record vanished between authentication and linkage.
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to link user to team: %w", err)
	}
	actingUser.TeamCode = code

	s.populateAvatarURL(team)
	return team, nil
}

func (s *teamService) Join(ctx context.Context, actingUser *models.User, code string) error {
	if actingUser.TeamCode == code {
		return ErrUserAlreadyInTeam
	}

	if err := s.teamRepo.AddMember(ctx, code); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamFull):
			return ErrTeamFull
		}
		return fmt.Errorf("failed to join team: %w", err)
	}

	if err := s.userRepo.SetTeamCode(ctx, actingUser.Username, code); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to link user to team: %w", err)
	}
	actingUser.TeamCode = code
	return nil
}

func (s *teamService) Leave(ctx context.Context, actingUser *models.User) error {
	if prev := actingUser.TeamCode; prev != "" {
		if _, err := s.teamRepo.RemoveMember(ctx, prev); err != nil && !errors.Is(err, repositories.ErrTeamNotFound) {
			return fmt.Errorf("failed to leave team %s: %w", prev, err)
		}
	}

	if err := s.userRepo.SetTeamCode(ctx, actingUser.Username, ""); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to unlink user from team: %w", err)
	}
	actingUser.TeamCode = ""
	return nil
}

func (s *teamService) GetByCode(ctx context.Context, code string) (*models.Team, []models.TeamMember, error) {
	team, err := s.teamRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, nil, ErrTeamNotFound
		}
		return nil, nil, fmt.Errorf("failed to get team: %w", err)
	}

	users, err := s.userRepo.ListByTeamCode(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list team members: %w", err)
	}

	members := make([]models.TeamMember, 0, len(users))
	for i := range users {
		members = append(members, users[i].ToMember())
	}

	s.populateAvatarURL(team)
	return team, members, nil
}

func (s *teamService) UploadAvatar(ctx context.Context, actingUser *models.User, contentType string, body io.Reader) (string, error) {
	code := actingUser.TeamCode
	if code == "" {
		return "", ErrUserNotInTeam
	}
	if _, err := s.teamRepo.GetByCode(ctx, code); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return "", ErrTeamNotFound
		}
		return "", fmt.Errorf("failed to get team: %w", err)
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("teams/%s/avatar%s", code, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.teamRepo.SetAvatar(ctx, code, result.Key, result.Location); err != nil {
		return "", fmt.Errorf("failed to store avatar reference: %w", err)
	}
	return result.Location, nil
}

func (s *teamService) populateAvatarURL(team *models.Team) {
	if team != nil && team.AvatarKey != nil && *team.AvatarKey != "" && s.uploader != nil {
		if url := s.uploader.GetPublicURL(*team.AvatarKey); url != "" {
			team.AvatarURL = &url
		}
	}
}
