package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dosada05/hackathon-system/services"
)

type HackathonHandler struct {
	hackathonService services.HackathonService
}

func NewHackathonHandler(hackathonService services.HackathonService) *HackathonHandler {
	return &HackathonHandler{hackathonService: hackathonService}
}

func (h *HackathonHandler) CreateHackathon(w http.ResponseWriter, r *http.Request) {
	var input services.CreateHackathonInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	hackathon, err := h.hackathonService.CreateHackathon(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message":   "Hackathon created successfully",
		"hackathon": hackathon,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HackathonHandler) ListHackathons(w http.ResponseWriter, r *http.Request) {
	hackathons, err := h.hackathonService.ListHackathons(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"hackathons": hackathons}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ActiveOrUpcoming reports whether an open hackathon exists right now.
// A negative answer is a normal 200 with exists=false, not an error.
func (h *HackathonHandler) ActiveOrUpcoming(w http.ResponseWriter, r *http.Request) {
	exists, hackathon, err := h.hackathonService.HasOpenHackathon(r.Context(), time.Now())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"exists": exists}
	if exists {
		response["hackathon"] = hackathon
	} else {
		response["message"] = "No active or upcoming hackathon found"
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HackathonHandler) Winners(w http.ResponseWriter, r *http.Request) {
	boards, err := h.hackathonService.GetWinnerBoards(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"winners": boards}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HackathonHandler) UploadBanner(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequestResponse(w, r, errors.New("could not parse multipart form, check file size"))
		return
	}

	file, header, err := r.FormFile("banner")
	if err != nil {
		badRequestResponse(w, r, errors.New("missing file field \"banner\""))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	hackathon, err := h.hackathonService.UploadBanner(r.Context(), hackathonID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message":   "Banner uploaded successfully",
		"hackathon": hackathon,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
