package feed

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/farmledger/farmledger/pkg/pond"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type ChartRowDTO struct {
	Week           int    `json:"week"`
	BodyWeightG    string `json:"bodyWeightG"`
	BiomassKg      string `json:"biomassKg"`
	RatePercent    string `json:"ratePercent"`
	DailyRationKg  string `json:"dailyRationKg"`
	WeeklyRationKg string `json:"weeklyRationKg"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetChart projects a feed chart for a pond. Query parameters: "bodyWeight"
// (current mean body weight in grams, required) and "weeks" (default 8).
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	pondId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid pond id", http.StatusBadRequest)
		return
	}

	startWeight, err := decimal.NewFromString(r.URL.Query().Get("bodyWeight"))
	if err != nil {
		http.Error(w, "invalid bodyWeight value", http.StatusBadRequest)
		return
	}

	weeks := 8
	if weeksString := r.URL.Query().Get("weeks"); weeksString != "" {
		if weeks, err = strconv.Atoi(weeksString); err != nil {
			http.Error(w, "invalid weeks value", http.StatusBadRequest)
			return
		}
	}

	rows, err := h.service.ChartForPond(r.Context(), pondId, startWeight, weeks)
	if err != nil {
		if errors.Is(err, pond.ErrPondNotFound) {
			http.Error(w, "pond not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrInvalidChartRequest) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ChartRowDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, ChartRowDTO{
			Week:           row.Week,
			BodyWeightG:    row.BodyWeightG.String(),
			BiomassKg:      row.BiomassKg.String(),
			RatePercent:    row.RatePercent.String(),
			DailyRationKg:  row.DailyRationKg.String(),
			WeeklyRationKg: row.WeeklyRationKg.String(),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
