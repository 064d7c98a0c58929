package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-system/services"
)

type WinnerHandler struct {
	winnerService services.WinnerService
}

func NewWinnerHandler(winnerService services.WinnerService) *WinnerHandler {
	return &WinnerHandler{winnerService: winnerService}
}

func (h *WinnerHandler) AnnounceWinner(w http.ResponseWriter, r *http.Request) {
	var input services.WinnerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	winner, err := h.winnerService.AnnounceWinner(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "Winner announced successfully",
		"winner":  winner,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *WinnerHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	winnerID, err := getIDFromURL(r, "winnerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	winner, err := h.winnerService.GetWinnerByID(r.Context(), winnerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"winner": winner}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *WinnerHandler) ListWinners(w http.ResponseWriter, r *http.Request) {
	winners, err := h.winnerService.ListWinners(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"winners": winners}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *WinnerHandler) UpdateWinner(w http.ResponseWriter, r *http.Request) {
	winnerID, err := getIDFromURL(r, "winnerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.WinnerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	winner, err := h.winnerService.UpdateWinner(r.Context(), winnerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"winner": winner}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *WinnerHandler) DeleteWinner(w http.ResponseWriter, r *http.Request) {
	winnerID, err := getIDFromURL(r, "winnerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.winnerService.DeleteWinner(r.Context(), winnerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
