package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joaomidowz/vargas-mix/services"
)

const maxImageBytes = 5 << 20 // 5MB

type GameMapHandler struct {
	mapService services.GameMapService
}

func NewGameMapHandler(mapService services.GameMapService) *GameMapHandler {
	return &GameMapHandler{mapService: mapService}
}

func (h *GameMapHandler) List(w http.ResponseWriter, r *http.Request) {
	maps, err := h.mapService.ListMaps(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"maps": maps}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameMapHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	gameMap, err := h.mapService.CreateMap(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"map": gameMap}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadImage accepts a multipart form with an "image" part and stores it in
// object storage under the map's key.
func (h *GameMapHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		badRequestResponse(w, r, errors.New("failed to parse multipart form, is the image too large?"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		badRequestResponse(w, r, errors.New("image file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	gameMap, err := h.mapService.UploadMapImage(r.Context(), chi.URLParam(r, "mapID"), contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"map": gameMap}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameMapHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.mapService.DeleteMap(r.Context(), chi.URLParam(r, "mapID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
