package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/unicontest/competition-system/models"
	"github.com/unicontest/competition-system/services"
)

// accessTokenTTL is the fixed token lifetime.
const accessTokenTTL = 120 * time.Minute

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
}

func NewAuthHandler(authService services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
	}
}

// newAccessToken signs an HS256 token with the user's email as subject and
// the document id as custom claim.
func newAccessToken(secret []byte, user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Email,
		"id":  user.ID.Hex(),
		"exp": now.Add(accessTokenTTL).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Login принимает form-поля username и password (как OAuth2 password flow).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid form body: %w", err))
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		badRequestResponse(w, r, errors.New("username and password are required"))
		return
	}

	user, err := h.authService.Login(r.Context(), username, password)
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
		"teamCode":     user.TeamCode,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Verify returns the public identity of the token's owner.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.authService)
	if err != nil {
		unauthorizedResponse(w, r, "invalid or expired token")
		return
	}

	response := jsonResponse{
		"id":       user.ID.Hex(),
		"username": user.Username,
		"email":    user.Email,
		"teamCode": user.TeamCode,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
