package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/unicontest/competition-system/services"
)

type TeamHandler struct {
	teamService services.TeamService
	authService services.AuthService
}

func NewTeamHandler(teamService services.TeamService, authService services.AuthService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		authService: authService,
	}
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.authService)
	if err != nil {
		unauthorizedResponse(w, r, "invalid or expired token")
		return
	}

	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.Create(r.Context(), user, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "team created successfully",
		"team":    team,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.authService)
	if err != nil {
		unauthorizedResponse(w, r, "invalid or expired token")
		return
	}

	var input struct {
		TeamCode string `json:"teamCode"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TeamCode == "" {
		badRequestResponse(w, r, errors.New("teamCode is required"))
		return
	}

	if err := h.teamService.Join(r.Context(), user, input.TeamCode); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message":  "joined team successfully",
		"teamCode": input.TeamCode,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete leaves the caller's team, dissolving it when the last member leaves.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.authService)
	if err != nil {
		unauthorizedResponse(w, r, "invalid or expired token")
		return
	}

	if err := h.teamService.Leave(r.Context(), user); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"message": "team deleted or left"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		badRequestResponse(w, r, errors.New("team code is required"))
		return
	}

	team, members, err := h.teamService.GetByCode(r.Context(), code)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"team":    team,
		"members": members,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadAvatar stores a team avatar image in object storage.
func (h *TeamHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.authService)
	if err != nil {
		unauthorizedResponse(w, r, "invalid or expired token")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		badRequestResponse(w, r, errors.New("avatar file is required"))
		return
	}
	defer file.Close()

	url, err := h.teamService.UploadAvatar(r.Context(), user, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"avatarUrl": url}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
