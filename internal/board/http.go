package board

import (
	"encoding/json"
	"errors"
	"net/http"

	"weekboard/internal/model"
	"weekboard/internal/task"
	"weekboard/internal/view"
)

type Handler struct {
	router *Router
}

func NewHandler(router *Router) *Handler {
	return &Handler{router: router}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/board/drop", h.drop)
	mux.HandleFunc("POST /api/board/toggle", h.toggle)
	mux.HandleFunc("POST /api/board/delete", h.delete)
	mux.HandleFunc("POST /api/board/overdue/reschedule", h.rescheduleOverdue)
	mux.HandleFunc("POST /api/board/overdue/clear", h.clearOverdue)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func writeRouterErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, task.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrRecurringMove), errors.Is(err, ErrConfirmationRequired):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrBadDropTarget), errors.Is(err, task.ErrBadDate),
		errors.Is(err, task.ErrRecurringToggle):
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

func filtersFromQuery(r *http.Request) view.Filters {
	q := r.URL.Query()
	return view.Filters{
		Project:  q.Get("project"),
		Priority: q.Get("priority"),
	}
}

func (h *Handler) drop(w http.ResponseWriter, r *http.Request) {
	var intent DropIntent
	if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	t, err := h.router.ApplyDrop(intent)
	if err != nil {
		writeRouterErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	var ref model.EntryRef
	if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	t, err := h.router.ToggleEntry(ref)
	if err != nil {
		writeRouterErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	var ref model.EntryRef
	if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	h.router.DeleteEntry(ref)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) rescheduleOverdue(w http.ResponseWriter, r *http.Request) {
	moved := h.router.MoveOverdueToToday(filtersFromQuery(r))
	writeJSON(w, http.StatusOK, map[string]any{"moved": moved})
}

func (h *Handler) clearOverdue(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Confirm bool `json:"confirm"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json")
			return
		}
	}
	removed, err := h.router.ClearOverdue(filtersFromQuery(r), body.Confirm)
	if err != nil {
		writeRouterErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
}
