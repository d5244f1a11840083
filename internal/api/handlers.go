package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"warehouse/loadmap/internal/constants"
	"warehouse/loadmap/internal/loadmap"
	"warehouse/loadmap/internal/logging"
	"warehouse/loadmap/internal/models/dtos/responses"
	"warehouse/loadmap/internal/services"
)

// maxBodyBytes bounds a load map request body.
const maxBodyBytes = 1 << 20

type LoadMapHandler struct {
	deps *Dependencies
}

func NewLoadMapHandler(deps *Dependencies) *LoadMapHandler {
	return &LoadMapHandler{deps: deps}
}

// List serves GET /api/loadmaps?q=.
func (h *LoadMapHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.deps.Services.LoadMap.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		logging.Error("List load maps failed", "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, constants.MsgLoadFailed)
		return
	}
	respondWithJSON(w, http.StatusOK, summaries)
}

// Create serves POST /api/loadmaps.
func (h *LoadMapHandler) Create(w http.ResponseWriter, r *http.Request) {
	rec, ok := decodeLoadMap(w, r)
	if !ok {
		return
	}

	created, err := h.deps.Services.LoadMap.Create(r.Context(), rec)
	if err != nil {
		logging.Error("Create load map failed", "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, constants.MsgSaveFailed)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// Get serves GET /api/loadmaps/{id}.
func (h *LoadMapHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rec, err := h.deps.Services.LoadMap.Get(r.Context(), id)
	if services.IsNotFound(err) {
		respondWithError(w, http.StatusNotFound, constants.MsgNotFound)
		return
	}
	if err != nil {
		logging.Error("Get load map failed", "id", id, "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, constants.MsgLoadFailed)
		return
	}
	respondWithJSON(w, http.StatusOK, rec)
}

// Replace serves PUT /api/loadmaps/{id}. Every field is overwritten.
func (h *LoadMapHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, ok := decodeLoadMap(w, r)
	if !ok {
		return
	}

	updated, err := h.deps.Services.LoadMap.Replace(r.Context(), id, rec)
	if services.IsNotFound(err) {
		respondWithError(w, http.StatusNotFound, constants.MsgNotFound)
		return
	}
	if err != nil {
		logging.Error("Replace load map failed", "id", id, "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, constants.MsgSaveFailed)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// Delete serves DELETE /api/loadmaps/{id}. Deleting a missing id succeeds.
func (h *LoadMapHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.deps.Services.LoadMap.Delete(r.Context(), id); err != nil {
		logging.Error("Delete load map failed", "id", id, "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, constants.MsgDeleteFailed)
		return
	}
	respondWithJSON(w, http.StatusOK, responses.DeleteResponse{OK: true})
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		respondWithError(w, http.StatusBadRequest, constants.MsgInvalidID)
		return 0, false
	}
	return uint(id), true
}

func decodeLoadMap(w http.ResponseWriter, r *http.Request) (*loadmap.LoadMap, bool) {
	var rec loadmap.LoadMap
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&rec); err != nil {
		logging.Debug("Rejected load map body", "error", err.Error())
		respondWithError(w, http.StatusBadRequest, constants.MsgInvalidBody)
		return nil, false
	}
	return &rec, true
}
