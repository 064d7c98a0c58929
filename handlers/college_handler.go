package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/services"
	"github.com/go-chi/chi/v5"
)

type CollegeHandler struct {
	collegeService services.CollegeService
}

func NewCollegeHandler(collegeService services.CollegeService) *CollegeHandler {
	return &CollegeHandler{collegeService: collegeService}
}

func (h *CollegeHandler) ListStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.collegeService.ListStates(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"states": states}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CollegeHandler) ListByState(w http.ResponseWriter, r *http.Request) {
	state := chi.URLParam(r, "state")
	if state == "" {
		badRequestResponse(w, r, errors.New("missing state in URL path"))
		return
	}

	colleges, err := h.collegeService.ListCollegesByState(r.Context(), state)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"colleges": colleges}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CollegeHandler) AddCollege(w http.ResponseWriter, r *http.Request) {
	var college models.College
	if err := readJSON(w, r, &college); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.collegeService.AddCollege(r.Context(), &college); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "College added successfully",
		"college": college,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
