package handlers

import (
	"errors"
	"net/http"

	"github.com/joaomidowz/vargas-mix/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

// Get is the polling endpoint: viewers hit it every few seconds, so the
// response always has the same shape whether a tournament runs or not.
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.Get(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var input services.GenerateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.tournamentService.Generate(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) BanMap(w http.ResponseWriter, r *http.Request) {
	var input struct {
		MapID string `json:"map_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.MapID == "" {
		badRequestResponse(w, r, errors.New("map_id is required"))
		return
	}

	view, err := h.tournamentService.BanMap(r.Context(), input.MapID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) RedoVeto(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.RedoVeto(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Score1 *int `json:"score1"`
		Score2 *int `json:"score2"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Score1 == nil || input.Score2 == nil {
		badRequestResponse(w, r, errors.New("score1 and score2 are required"))
		return
	}
	if *input.Score1 < 0 || *input.Score2 < 0 {
		badRequestResponse(w, r, errors.New("scores must not be negative"))
		return
	}

	view, err := h.tournamentService.RecordResult(r.Context(), *input.Score1, *input.Score2)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Confirm bool `json:"confirm"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if !input.Confirm {
		badRequestResponse(w, r, services.ErrConfirmationMissing)
		return
	}

	if err := h.tournamentService.Reset(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
