package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"chem-backend/internal/middleware"
	"chem-backend/internal/models"
	"chem-backend/internal/services"
	"chem-backend/internal/timeutil"
	"chem-backend/pkg/utils"
)

const reportFailed = "Failed to generate detailed report"

type ReportHandler struct {
	Service *services.ReportService
	Archive *services.ArchiveService
}

func NewReportHandler(s *services.ReportService, archive *services.ArchiveService) *ReportHandler {
	return &ReportHandler{Service: s, Archive: archive}
}

// parseFilter reads optional start and end (YYYY-MM-DD, IST). Both bounds
// are inclusive whole days.
func parseFilter(r *http.Request) (models.ReportFilter, error) {
	var filter models.ReportFilter
	q := r.URL.Query()

	if start := q.Get("start"); start != "" {
		t, err := timeutil.ParseDate(start)
		if err != nil {
			return filter, errors.New("start must be YYYY-MM-DD")
		}
		from := timeutil.StartOfDay(t)
		filter.From = &from
	}
	if end := q.Get("end"); end != "" {
		t, err := timeutil.ParseDate(end)
		if err != nil {
			return filter, errors.New("end must be YYYY-MM-DD")
		}
		to := timeutil.EndOfDay(t)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return filter, errors.New("start must not be after end")
	}
	return filter, nil
}

func (h *ReportHandler) filter(w http.ResponseWriter, r *http.Request) (models.ReportFilter, bool) {
	filter, err := parseFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return filter, false
	}
	return filter, true
}

// DetailedReport serves the composite sales/purchases/chemicals report
func (h *ReportHandler) DetailedReport(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	report, err := h.Service.BuildDetailedReport(r.Context(), filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, reportFailed)
		return
	}
	utils.JSON(w, http.StatusOK, report)
}

// Summary serves the report together with the dashboard views
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.BuildSummary(r.Context(), filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, reportFailed)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

func (h *ReportHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	data, err := h.Service.GenerateDetailedCSV(r.Context(), filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, reportFailed)
		return
	}
	h.download(w, data, "text/csv", "csv")
}

func (h *ReportHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	data, err := h.Service.GenerateDetailedPDF(r.Context(), filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, reportFailed)
		return
	}
	h.download(w, data, "application/pdf", "pdf")
}

func (h *ReportHandler) DownloadXLSX(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	data, err := h.Service.GenerateDetailedXLSX(r.Context(), filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, reportFailed)
		return
	}
	h.download(w, data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx")
}

func (h *ReportHandler) download(w http.ResponseWriter, data []byte, contentType, ext string) {
	filename := fmt.Sprintf("detailed_report_%s.%s", timeutil.Now().Format("20060102"), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Write(data)
}

// ArchiveReport stores a summary snapshot in object storage
func (h *ReportHandler) ArchiveReport(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	archived, err := h.Archive.Archive(r.Context(), middleware.SessionFromContext(r.Context()), filter)
	if err != nil {
		respondError(w, err, "Failed to archive report")
		return
	}
	utils.JSON(w, http.StatusCreated, archived)
}

func (h *ReportHandler) ListArchives(w http.ResponseWriter, r *http.Request) {
	archives, err := h.Archive.List(r.Context(), middleware.SessionFromContext(r.Context()))
	if err != nil {
		respondError(w, err, "Failed to list archived reports")
		return
	}
	utils.JSON(w, http.StatusOK, archives)
}
