package handlers

import (
	"errors"
	"net/http"

	"github.com/mychesstour/chesstour-api/query"
	"github.com/mychesstour/chesstour-api/services"
)

type TournamentHandler struct {
	tournamentService *services.TournamentService
}

func NewTournamentHandler(ts *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

// ListHandler обрабатывает GET /api/v1/tournaments.
//
// Любая ошибка валидации параметров — 400 до единого обращения к хранилищу.
// Ошибка хранилища — 500 с его сообщением как есть: хранилище — доверенная
// инфраструктура, прозрачность здесь ценнее маскировки.
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	params, err := query.ParseListParams(r.URL.Query())
	if err != nil {
		var validationErr *query.ValidationError
		if errors.As(err, &validationErr) {
			errorResponse(w, r, http.StatusBadRequest, validationErr.Message)
			return
		}
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.tournamentService.ListTournaments(r.Context(), params)
	if err != nil {
		errorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
