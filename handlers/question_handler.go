package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-system/services"
)

type QuestionHandler struct {
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var input services.QuestionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	question, err := h.questionService.CreateQuestion(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message":  "Question created successfully",
		"question": question,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := getIDFromURL(r, "questionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	question, err := h.questionService.GetQuestionByID(r.Context(), questionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"question": question}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionService.ListQuestions(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"questions": questions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *QuestionHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := getIDFromURL(r, "questionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.QuestionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	question, err := h.questionService.UpdateQuestion(r.Context(), questionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"question": question}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := getIDFromURL(r, "questionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.questionService.DeleteQuestion(r.Context(), questionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *QuestionHandler) DomainsAndQuestions(w http.ResponseWriter, r *http.Request) {
	groups, err := h.questionService.DomainsAndQuestions(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"domains": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
