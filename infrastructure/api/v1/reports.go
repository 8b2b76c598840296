// Package v1 holds the version 1 HTTP routes.
package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/campuslogs/crimelog/application/service"
	"github.com/campuslogs/crimelog/domain/report"
	"github.com/campuslogs/crimelog/infrastructure/export"
	"github.com/campuslogs/crimelog/internal/log"
	"github.com/go-chi/chi/v5"
)

// ReportRunner is the slice of the reports service the API needs.
type ReportRunner interface {
	Names() []string
	Run(ctx context.Context, name string, filter service.ReportFilter) (report.ResultSet, error)
}

// ReportRouter serves the named read-only reports.
type ReportRouter struct {
	reports ReportRunner
	logger  *log.Logger
}

// NewReportRouter creates a ReportRouter.
func NewReportRouter(reports ReportRunner, logger *log.Logger) *ReportRouter {
	return &ReportRouter{reports: reports, logger: logger}
}

// Routes returns the chi router for report endpoints.
func (r *ReportRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Get("/{name}", r.Get)

	return router
}

// List handles GET /api/v1/reports.
func (r *ReportRouter) List(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"reports": r.reports.Names()})
}

// Get handles GET /api/v1/reports/{name}. The since and until query
// parameters bound the reported date (YYYY-MM-DD); format=csv switches the
// response from JSON to CSV.
func (r *ReportRouter) Get(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")

	filter, err := parseFilter(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rs, err := r.reports.Run(req.Context(), name, filter)
	if err != nil {
		if errors.Is(err, service.ErrUnknownReport) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		r.logger.Error("report failed", "report", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "report failed"})
		return
	}

	if req.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.csv"`)
		if err := export.WriteCSV(w, rs); err != nil {
			r.logger.Error("csv write failed", "report", name, "error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"report":  name,
		"columns": rs.Columns(),
		"rows":    rs.Rows(),
	})
}

func parseFilter(req *http.Request) (service.ReportFilter, error) {
	var filter service.ReportFilter
	q := req.URL.Query()

	if since := q.Get("since"); since != "" {
		t, err := time.Parse("2006-01-02", since)
		if err != nil {
			return filter, errors.New("invalid since date, expected YYYY-MM-DD")
		}
		filter.Since = t
	}
	if until := q.Get("until"); until != "" {
		t, err := time.Parse("2006-01-02", until)
		if err != nil {
			return filter, errors.New("invalid until date, expected YYYY-MM-DD")
		}
		filter.Until = t
	}
	return filter, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
