package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mychesstour/chesstour-api/services"
)

type WaitlistHandler struct {
	waitlistService *services.WaitlistService
}

func NewWaitlistHandler(ws *services.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{waitlistService: ws}
}

type joinWaitlistInput struct {
	Email string `json:"email"`
}

// JoinHandler обрабатывает POST /api/v1/waitlist.
func (h *WaitlistHandler) JoinHandler(w http.ResponseWriter, r *http.Request) {
	var input joinWaitlistInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		badRequestResponse(w, r, errors.New("Please enter your email address."))
		return
	}

	if _, err := h.waitlistService.Join(r.Context(), email); err != nil {
		if errors.Is(err, services.ErrWaitlistDuplicate) {
			conflictResponse(w, r, "You're already on the waitlist!")
			return
		}
		errorResponse(w, r, http.StatusInternalServerError,
			"Something went wrong. Please contact us at mychesstour@gmail.com for support.")
		return
	}

	response := jsonResponse{"message": "You're on the waitlist!"}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
