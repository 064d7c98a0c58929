package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-system/services"
)

type EvaluationHandler struct {
	evaluationService services.EvaluationService
}

func NewEvaluationHandler(evaluationService services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

func (h *EvaluationHandler) SubmitEvaluation(w http.ResponseWriter, r *http.Request) {
	var input services.EvaluationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	evaluation, err := h.evaluationService.SubmitEvaluation(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message":    "Evaluation submitted successfully",
		"evaluation": evaluation,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EvaluationHandler) GetEvaluation(w http.ResponseWriter, r *http.Request) {
	evaluationID, err := getIDFromURL(r, "evaluationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	evaluation, err := h.evaluationService.GetEvaluationByID(r.Context(), evaluationID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"evaluation": evaluation}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EvaluationHandler) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	evaluations, err := h.evaluationService.ListEvaluations(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"evaluations": evaluations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EvaluationHandler) UpdateEvaluation(w http.ResponseWriter, r *http.Request) {
	evaluationID, err := getIDFromURL(r, "evaluationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.EvaluationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	evaluation, err := h.evaluationService.UpdateEvaluation(r.Context(), evaluationID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"evaluation": evaluation}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EvaluationHandler) DeleteEvaluation(w http.ResponseWriter, r *http.Request) {
	evaluationID, err := getIDFromURL(r, "evaluationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.evaluationService.DeleteEvaluation(r.Context(), evaluationID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
