package api

import (
	"fmt"
	"net/http"
	"strings"

	"warehouse/loadmap/internal/constants"
	"warehouse/loadmap/internal/export"
	"warehouse/loadmap/internal/loadmap"
	"warehouse/loadmap/internal/logging"
	"warehouse/loadmap/internal/services"
)

// ExportPDF serves GET /api/loadmaps/{id}/export.pdf.
func (h *LoadMapHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, ok := h.load(w, r, id)
	if !ok {
		return
	}

	opts := export.PDFOptions{}
	if base := strings.TrimRight(h.deps.Config.PublicURL, "/"); base != "" {
		opts.LinkURL = fmt.Sprintf("%s/ui/loadmaps/%d", base, id)
	}

	data, err := export.LoadSheetPDF(rec, opts)
	if err != nil {
		logging.Error("PDF export failed", "id", id, "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, constants.MsgExportFailed)
		return
	}
	h.deps.Metrics.Export("pdf")
	respondWithFile(w, export.PDFContentType, fmt.Sprintf("loadmap-%d.pdf", id), data)
}

// ExportXLSX serves GET /api/loadmaps/{id}/export.xlsx.
func (h *LoadMapHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, ok := h.load(w, r, id)
	if !ok {
		return
	}

	data, err := export.LoadMapXLSX(rec)
	if err != nil {
		logging.Error("XLSX export failed", "id", id, "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, constants.MsgExportFailed)
		return
	}
	h.deps.Metrics.Export("xlsx")
	respondWithFile(w, export.XLSXContentType, fmt.Sprintf("loadmap-%d.xlsx", id), data)
}

func (h *LoadMapHandler) load(w http.ResponseWriter, r *http.Request, id uint) (*loadmap.LoadMap, bool) {
	rec, err := h.deps.Services.LoadMap.Get(r.Context(), id)
	if services.IsNotFound(err) {
		respondWithError(w, http.StatusNotFound, constants.MsgNotFound)
		return nil, false
	}
	if err != nil {
		logging.Error("Load for export failed", "id", id, "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, constants.MsgLoadFailed)
		return nil, false
	}
	return rec, true
}
