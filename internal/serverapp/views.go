package serverapp

import (
	"encoding/json"
	"net/http"
	"time"

	"weekboard/internal/model"
	"weekboard/internal/task"
	"weekboard/internal/view"
)

type viewsHandler struct {
	store     *task.Store
	clock     task.Clock
	weekStart time.Weekday
}

func newViewsHandler(store *task.Store, clock task.Clock, weekStart time.Weekday) *viewsHandler {
	return &viewsHandler{store: store, clock: clock, weekStart: weekStart}
}

func (h *viewsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/views/unscheduled", h.unscheduled)
	mux.HandleFunc("GET /api/views/week", h.week)
	mux.HandleFunc("GET /api/views/overdue", h.overdue)
	mux.HandleFunc("GET /api/views/history", h.history)
}

func viewJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

func (h *viewsHandler) filters(r *http.Request) view.Filters {
	q := r.URL.Query()
	return view.Filters{
		Project:  q.Get("project"),
		Priority: q.Get("priority"),
	}
}

func (h *viewsHandler) unscheduled(w http.ResponseWriter, r *http.Request) {
	viewJSON(w, view.Unscheduled(h.store.List(), h.filters(r)))
}

// week projects the 7-day grid. An explicit ?start=YYYY-MM-DD pins the
// window; otherwise the week containing today is used.
func (h *viewsHandler) week(w http.ResponseWriter, r *http.Request) {
	start := view.WeekStart(h.clock.Now(), h.weekStart)
	if s := r.URL.Query().Get("start"); s != "" {
		parsed, err := time.ParseInLocation(model.DateLayout, s, time.Local)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			viewJSON(w, map[string]any{"error": "start must be YYYY-MM-DD"})
			return
		}
		start = parsed
	}
	viewJSON(w, view.Week(h.store.List(), start, h.filters(r)))
}

func (h *viewsHandler) overdue(w http.ResponseWriter, r *http.Request) {
	viewJSON(w, view.Overdue(h.store.List(), h.clock.Now(), h.filters(r)))
}

func (h *viewsHandler) history(w http.ResponseWriter, r *http.Request) {
	viewJSON(w, view.History(h.store.List(), h.filters(r)))
}
