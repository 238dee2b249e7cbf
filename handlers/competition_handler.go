package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/unicontest/competition-system/models"
	"github.com/unicontest/competition-system/services"
)

type CompetitionHandler struct {
	competitionService services.CompetitionService
	rankingService     services.RankingService
	scoringService     services.ScoringService
	authService        services.AuthService
}

func NewCompetitionHandler(
	competitionService services.CompetitionService,
	rankingService services.RankingService,
	scoringService services.ScoringService,
	authService services.AuthService,
) *CompetitionHandler {
	return &CompetitionHandler{
		competitionService: competitionService,
		rankingService:     rankingService,
		scoringService:     scoringService,
		authService:        authService,
	}
}

func (h *CompetitionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCompetitionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comp, err := h.competitionService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "competition created successfully",
		"id":      comp.ID,
		"title":   comp.Title,
		"status":  comp.Status,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CompetitionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	comps, err := h.competitionService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"list": comps}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CompetitionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	comp, err := h.competitionService.GetByID(r.Context(), chi.URLParam(r, "competitionID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competition": comp}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPrivate returns the competition together with the caller's team
// standing. The standing is null when the caller has no team or the team is
// not registered.
func (h *CompetitionHandler) GetPrivate(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.authService)
	if err != nil {
		unauthorizedResponse(w, r, "invalid or expired token")
		return
	}

	competitionID := chi.URLParam(r, "competitionID")
	comp, err := h.competitionService.GetByID(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"competition":  comp,
		"teamStanding": nil,
	}
	if user.TeamCode != "" {
		row, rank, err := h.rankingService.TeamStanding(r.Context(), competitionID, user.TeamCode)
		switch {
		case err == nil:
			response["teamStanding"] = jsonResponse{"rank": rank, "row": row}
		case errors.Is(err, services.ErrTeamNotRegistered):
			// оставляем null
		default:
			mapServiceErrorToHTTP(w, r, err)
			return
		}
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CompetitionHandler) Join(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TeamCode      string `json:"teamCode"`
		CompetitionID string `json:"competitionId"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TeamCode == "" || input.CompetitionID == "" {
		badRequestResponse(w, r, errors.New("teamCode and competitionId are required"))
		return
	}

	totalTeams, err := h.competitionService.RegisterTeam(r.Context(), input.CompetitionID, input.TeamCode)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message":    "team registered successfully",
		"teamCode":   input.TeamCode,
		"totalTeams": totalTeams,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordSubmission appends a submission for the caller's team.
func (h *CompetitionHandler) RecordSubmission(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.authService)
	if err != nil {
		unauthorizedResponse(w, r, "invalid or expired token")
		return
	}

	var input struct {
		Status models.SubmissionStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	switch input.Status {
	case models.SubmissionAccepted, models.SubmissionWrongAnswer, models.SubmissionTimeLimitExceeded:
	default:
		badRequestResponse(w, r, errors.New("status must be one of AC, WA, TLE"))
		return
	}

	sub, err := h.scoringService.RecordSubmission(
		r.Context(),
		chi.URLParam(r, "competitionID"),
		chi.URLParam(r, "problemID"),
		user,
		input.Status,
	)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message":    "submission recorded",
		"submission": sub,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
