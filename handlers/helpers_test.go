package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unicontest/competition-system/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"team not found", services.ErrTeamNotFound, http.StatusNotFound},
		{"competition not found", services.ErrCompetitionNotFound, http.StatusNotFound},
		{"problem not found", services.ErrProblemNotFound, http.StatusNotFound},
		{"team not registered", services.ErrTeamNotRegistered, http.StatusNotFound},
		{"competition conflict", services.ErrCompetitionConflict, http.StatusConflict},
		{"team full", services.ErrTeamFull, http.StatusBadRequest},
		{"already in team", services.ErrUserAlreadyInTeam, http.StatusBadRequest},
		{"already registered", services.ErrTeamAlreadyRegistered, http.StatusBadRequest},
		{"email taken maps to 400", services.ErrEmailTaken, http.StatusBadRequest},
		{"invalid date", services.ErrCompetitionDateInvalid, http.StatusBadRequest},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unexpected error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		mapServiceErrorToHTTP(rec, req, tt.err)
		if rec.Code != tt.want {
			t.Errorf("%s: status got %d, want %d", tt.name, rec.Code, tt.want)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: body is not JSON: %v", tt.name, err)
		}
		if _, ok := body["error"]; !ok {
			t.Errorf("%s: body lacks error field: %v", tt.name, body)
		}
	}
}
