package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/unicontest/competition-system/services"
)

type UserHandler struct {
	authService services.AuthService
	jwtSecret   []byte
}

func NewUserHandler(authService services.AuthService, jwtSecret string) *UserHandler {
	return &UserHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Username == "" || input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("username, email, and password are required"))
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	tokenString, err := newAccessToken(h.jwtSecret, user)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to sign token: %w", err))
		return
	}

	response := jsonResponse{
		"access_token": tokenString,
		"token_type":   "bearer",
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Me returns the caller's profile without the password hash.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.authService)
	if err != nil {
		unauthorizedResponse(w, r, "invalid or expired token")
		return
	}

	if err := writeJSON(w, http.StatusOK, user, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
