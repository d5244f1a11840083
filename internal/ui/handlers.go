// Package ui serves the browser list and editor views. Each browser session
// drives its own editor.Controller.
package ui

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	reqctx "warehouse/loadmap/internal/context"
	"warehouse/loadmap/internal/editor"
	"warehouse/loadmap/internal/loadmap"
	"warehouse/loadmap/internal/logging"
)

const (
	AlertSaveFailed   = "Save failed"
	AlertDeleteFailed = "Delete failed"
	AlertLoadFailed   = "Could not load load maps"
	AlertOpenFailed   = "Could not open load map"
)

// UIHandler manages all UI routes.
type UIHandler struct {
	store  *SessionStore
	render *Renderer
	apiURL string
}

// NewUIHandler creates a UI handler. apiURL prefixes export links.
func NewUIHandler(store *SessionStore, render *Renderer, apiURL string) *UIHandler {
	return &UIHandler{store: store, render: render, apiURL: strings.TrimRight(apiURL, "/")}
}

// Routes returns the UI router, mounted under /ui.
func (h *UIHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/loadmaps", http.StatusFound)
	})
	r.Get("/loadmaps", h.ListPage)
	r.Get("/loadmaps/rows", h.ListRows)
	r.Get("/loadmaps/new", h.NewLoadMap)
	r.Get("/loadmaps/{id}", h.OpenLoadMap)

	r.Route("/editor", func(r chi.Router) {
		r.Get("/", h.EditorPage)
		r.Get("/pallets/{pos}", h.PalletModal)
		r.Post("/pallets/{pos}", h.EditPallet)
		r.Post("/pallets/{pos}/clear", h.ClearPallet)
		r.Post("/save", h.Save)
		r.Post("/delete", h.Delete)
		r.Post("/close", h.Close)
	})
	return r
}

func (h *UIHandler) controller(r *http.Request) *editor.Controller {
	return h.store.Controller(reqctx.GetSessionID(r.Context()))
}

// ListPage renders the search box and the saved load maps.
func (h *UIHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(r)
	query := r.URL.Query().Get("q")

	data := map[string]interface{}{"Title": "Load Maps", "Query": query}
	items, err := ctrl.List(r.Context(), query)
	switch {
	case errors.Is(err, editor.ErrStaleResponse):
		items = ctrl.Summaries()
	case err != nil:
		logging.Warn("List load maps failed", "error", err.Error())
		data["Alert"] = AlertLoadFailed
	}
	data["Items"] = items
	h.render.RenderTemplate(w, "list.html", data)
}

// ListRows renders only the result rows for HTMX search and live refresh.
func (h *UIHandler) ListRows(w http.ResponseWriter, r *http.Request) {
	items, err := h.controller(r).List(r.Context(), r.URL.Query().Get("q"))
	if errors.Is(err, editor.ErrStaleResponse) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	data := map[string]interface{}{"Items": items}
	if err != nil {
		logging.Warn("List load maps failed", "error", err.Error())
		data["RowsAlert"] = AlertLoadFailed
	}
	h.render.RenderPartial(w, http.StatusOK, "list_rows", data)
}

// NewLoadMap opens a blank record.
func (h *UIHandler) NewLoadMap(w http.ResponseWriter, r *http.Request) {
	if _, err := h.controller(r).Open(r.Context(), 0); err != nil {
		logging.Error("Open new load map failed", "error", err.Error())
	}
	http.Redirect(w, r, "/ui/editor", http.StatusSeeOther)
}

// OpenLoadMap loads a saved record into the editor, discarding whatever was open.
func (h *UIHandler) OpenLoadMap(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		http.NotFound(w, r)
		return
	}
	if _, err := h.controller(r).Open(r.Context(), uint(id)); err != nil {
		logging.Warn("Open load map failed", "id", id, "error", err.Error())
		h.render.RenderTemplate(w, "list.html", map[string]interface{}{
			"Title": "Load Maps",
			"Alert": AlertOpenFailed,
		})
		return
	}
	http.Redirect(w, r, "/ui/editor", http.StatusSeeOther)
}

// EditorPage renders the open record, or returns to the list when none is open.
func (h *UIHandler) EditorPage(w http.ResponseWriter, r *http.Request) {
	h.renderEditor(w, r, "")
}

func (h *UIHandler) renderEditor(w http.ResponseWriter, r *http.Request, alert string) {
	var data map[string]interface{}
	err := h.controller(r).Update(func(s *editor.Session) error {
		data = editorData(s)
		return nil
	})
	if errors.Is(err, editor.ErrNoSession) {
		http.Redirect(w, r, "/ui/loadmaps", http.StatusSeeOther)
		return
	}

	data["Title"] = "Edit Load Map"
	data["Alert"] = alert
	if id, ok := data["ID"].(uint); ok && id != 0 {
		data["PDFURL"] = fmt.Sprintf("%s/api/loadmaps/%d/export.pdf", h.apiURL, id)
		data["XLSXURL"] = fmt.Sprintf("%s/api/loadmaps/%d/export.xlsx", h.apiURL, id)
	}
	h.render.RenderTemplate(w, "editor.html", data)
}

// PalletModal renders the edit dialog for one slot.
func (h *UIHandler) PalletModal(w http.ResponseWriter, r *http.Request) {
	pos, ok := parsePos(w, r)
	if !ok {
		return
	}

	var data map[string]interface{}
	err := h.controller(r).Update(func(s *editor.Session) error {
		p, err := s.Pallet(pos)
		if err != nil {
			return err
		}
		data = map[string]interface{}{
			"Pallet":   p,
			"Bulkhead": s.IsBulkhead(pos),
			"Types":    loadmap.PalletTypes,
		}
		return nil
	})
	if err != nil {
		h.palletError(w, err)
		return
	}
	h.render.RenderPartial(w, http.StatusOK, "pallet_modal", data)
}

// EditPallet applies the modal's values and re-renders the grid and totals.
func (h *UIHandler) EditPallet(w http.ResponseWriter, r *http.Request) {
	pos, ok := parsePos(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	edit := loadmap.Edit{
		Store:    r.PostForm.Get("store"),
		Type:     loadmap.PalletType(r.PostForm.Get("type")),
		Zone:     r.PostForm.Get("zone"),
		Bulkhead: r.PostForm.Get("bulkhead") != "",
	}
	h.mutateGrid(w, r, func(s *editor.Session) error { return s.EditPallet(pos, edit) })
}

// ClearPallet blanks a slot and re-renders the grid and totals.
func (h *UIHandler) ClearPallet(w http.ResponseWriter, r *http.Request) {
	pos, ok := parsePos(w, r)
	if !ok {
		return
	}
	h.mutateGrid(w, r, func(s *editor.Session) error { return s.ClearPallet(pos) })
}

func (h *UIHandler) mutateGrid(w http.ResponseWriter, r *http.Request, fn func(*editor.Session) error) {
	var data map[string]interface{}
	err := h.controller(r).Update(func(s *editor.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		data = gridData(s)
		return nil
	})
	if err != nil {
		h.palletError(w, err)
		return
	}
	h.render.RenderPartial(w, http.StatusOK, "grid", data)
}

func (h *UIHandler) palletError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, editor.ErrNoSession):
		w.Header().Set("HX-Redirect", "/ui/loadmaps")
		w.WriteHeader(http.StatusConflict)
	case errors.Is(err, loadmap.ErrInvalidPosition):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Save stores the submitted form and grid. On failure the editor is shown
// again with a blocking alert and every typed value intact.
func (h *UIHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(r)
	if !h.applyForm(w, r, ctrl) {
		return
	}

	saved, err := ctrl.Save(r.Context())
	switch {
	case errors.Is(err, editor.ErrNoSession):
		http.Redirect(w, r, "/ui/loadmaps", http.StatusSeeOther)
	case errors.Is(err, editor.ErrSaveFailed):
		logging.Warn("Save load map failed", "error", err.Error())
		h.renderEditor(w, r, AlertSaveFailed)
	default:
		if err != nil {
			logging.Warn("List refresh after save failed", "error", err.Error())
		}
		logging.Info("Load map saved", "id", saved.ID)
		http.Redirect(w, r, "/ui/loadmaps", http.StatusSeeOther)
	}
}

// Delete removes the open record. The browser confirms first and posts
// confirmed=yes; anything else keeps the editor open.
func (h *UIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(r)
	if !h.applyForm(w, r, ctrl) {
		return
	}

	confirmed := r.PostForm.Get("confirmed") == "yes"
	err := ctrl.Delete(r.Context(), editor.ConfirmFunc(func(string) bool { return confirmed }))
	switch {
	case errors.Is(err, editor.ErrNotConfirmed):
		h.renderEditor(w, r, "")
	case errors.Is(err, editor.ErrDeleteFailed):
		logging.Warn("Delete load map failed", "error", err.Error())
		h.renderEditor(w, r, AlertDeleteFailed)
	default:
		if err != nil && !errors.Is(err, editor.ErrNoSession) {
			logging.Warn("List refresh after delete failed", "error", err.Error())
		}
		http.Redirect(w, r, "/ui/loadmaps", http.StatusSeeOther)
	}
}

// Close discards the open record without saving.
func (h *UIHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.controller(r).Close()
	http.Redirect(w, r, "/ui/loadmaps", http.StatusSeeOther)
}

// applyForm copies the posted fields into the open session so a failed
// request re-renders what the user typed.
func (h *UIHandler) applyForm(w http.ResponseWriter, r *http.Request, ctrl *editor.Controller) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return false
	}
	err := ctrl.Update(func(s *editor.Session) error {
		s.SetForm(r.PostForm)
		return nil
	})
	if errors.Is(err, editor.ErrNoSession) {
		http.Redirect(w, r, "/ui/loadmaps", http.StatusSeeOther)
		return false
	}
	return true
}

func parsePos(w http.ResponseWriter, r *http.Request) (int, bool) {
	pos, err := strconv.Atoi(chi.URLParam(r, "pos"))
	if err != nil || !loadmap.ValidPosition(pos) {
		http.Error(w, "Invalid pallet position", http.StatusBadRequest)
		return 0, false
	}
	return pos, true
}
