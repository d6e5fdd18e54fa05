package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"growth-dashboard/internal/logger"
	"growth-dashboard/internal/manager"
	"growth-dashboard/internal/report"
	"growth-dashboard/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(bm *manager.BoardManager) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", dashboardHandler(bm))
	r.Post("/tasks/{id}/toggle", toggleFormHandler(bm))

	r.Get("/api/weeks", listWeeksHandler(bm))
	r.Get("/api/progress", progressHandler(bm))
	r.Post("/api/tasks/{id}/toggle", toggleTaskHandler(bm))

	r.Get("/export", exportHandler(bm))
	r.Get("/healthz", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func dashboardHandler(bm *manager.BoardManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := web.NewPageData(bm.Weeks(), bm.Progress())
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := web.RenderDashboard(w, data); err != nil {
			logger.Error(r.Context(), err, "rendering dashboard")
		}
	}
}

// toggleFormHandler backs the checkbox forms on the page: toggle and
// redirect back so the re-rendered page shows the new state.
func toggleFormHandler(bm *manager.BoardManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if _, err := bm.ToggleTask(id); err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func listWeeksHandler(bm *manager.BoardManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, bm.Weeks())
	}
}

func progressHandler(bm *manager.BoardManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, bm.Progress())
	}
}

func toggleTaskHandler(bm *manager.BoardManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}

		task, err := bm.ToggleTask(id)
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}

		writeJSON(w, task)
	}
}

func exportHandler(bm *manager.BoardManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "json"
		}

		data, err := report.NewExporter(bm).Export(format)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}

		w.Header().Set("Content-Type", report.ContentType(format))
		w.Header().Set("Content-Disposition", "attachment; filename=progress."+format)
		_, _ = w.Write(data)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
