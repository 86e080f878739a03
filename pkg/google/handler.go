package google

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/project"
)

type SpreadsheetExportDto struct {
	SpreadsheetId  string `json:"spreadsheetId"`
	SpreadsheetUrl string `json:"spreadsheetUrl"`
	Title          string `json:"title"`
}

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{s}
}

func (h *Handler) ExportBudgetReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectId, err := strconv.Atoi(r.URL.Query().Get("projectId"))
	if err != nil {
		http.Error(w, "invalid projectId", http.StatusBadRequest)
		return
	}
	date, err := utils.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "date must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	export, err := h.service.ExportBudgetReport(r.Context(), projectId, date)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if errors.Is(err, project.ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toSpreadsheetExportDto(export)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func toSpreadsheetExportDto(e SpreadsheetExport) SpreadsheetExportDto {
	return SpreadsheetExportDto{
		SpreadsheetId:  e.SpreadsheetId,
		SpreadsheetUrl: e.SpreadsheetUrl,
		Title:          e.Title,
	}
}
