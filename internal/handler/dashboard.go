package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rsharma/fintrack/internal/export"
	"github.com/rsharma/fintrack/internal/projector"
)

// Dashboard handles GET /dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	data, err := h.svc.Dashboard(userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, data)
}

// Calendar handles GET /calendar?year=&month=, defaulting to the current month
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	year, month, err := yearMonth(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := h.svc.Calendar(userID, year, month)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, data)
}

// Reports handles GET /reports?year=&month=&period=month|quarter|year
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	year, month, err := yearMonth(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := h.svc.Report(userID, year, month, r.URL.Query().Get("period"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// ExportReport handles GET /reports/export, returning the report as XML
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	year, month, err := yearMonth(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := h.svc.Report(userID, year, month, r.URL.Query().Get("period"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	user, err := h.svc.GetUser(userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	doc, err := export.ReportXML(user, report)
	if err != nil {
		h.log.Errorf("Failed to build report export: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to build export")
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="report-%s.xml"`, report.StartDate))
	w.Write(doc)
}

// yearMonth reads the year/month query params, defaulting to today.
func yearMonth(r *http.Request) (int, int, error) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())
	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year: %s", v)
		}
		year = n
	}
	if v := q.Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid month: %s", v)
		}
		month = n
	}
	if _, err := projector.NewPeriod(year, month); err != nil {
		return 0, 0, err
	}
	return year, month, nil
}
