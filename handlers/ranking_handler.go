package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/unicontest/competition-system/services"
)

type RankingHandler struct {
	rankingService services.RankingService
}

func NewRankingHandler(rankingService services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

func (h *RankingHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.rankingService.BuildRanking(r.Context(), chi.URLParam(r, "competitionID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, ranking, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
