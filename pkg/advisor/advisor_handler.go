package advisor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/pond"
	"github.com/farmledger/farmledger/pkg/project"
	"github.com/shopspring/decimal"
)

type RecommendationDTO struct {
	Priority string `json:"priority"`
	Category string `json:"category"`
	Action   string `json:"action"`
	Reason   string `json:"reason"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// GetRecommendations evaluates the advisory rules. All query parameters are
// optional: "pondId", "projectId", "date", "fcr", "growthRate",
// "survivalRate".
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	request := Request{Reference: utils.DateOf(h.clock.Now())}

	var err error
	if pondIdString := r.URL.Query().Get("pondId"); pondIdString != "" {
		if request.PondId, err = strconv.Atoi(pondIdString); err != nil {
			http.Error(w, "invalid pondId", http.StatusBadRequest)
			return
		}
	}
	if projectIdString := r.URL.Query().Get("projectId"); projectIdString != "" {
		if request.ProjectId, err = strconv.Atoi(projectIdString); err != nil {
			http.Error(w, "invalid projectId", http.StatusBadRequest)
			return
		}
	}
	if dateString := r.URL.Query().Get("date"); dateString != "" {
		if request.Reference, err = utils.ParseDate(dateString); err != nil {
			http.Error(w, "date must be in YYYY-MM-DD format", http.StatusBadRequest)
			return
		}
	}
	if request.FCR, err = decimalParam(r, "fcr"); err != nil {
		http.Error(w, "invalid fcr value", http.StatusBadRequest)
		return
	}
	if request.GrowthRateGWeek, err = decimalParam(r, "growthRate"); err != nil {
		http.Error(w, "invalid growthRate value", http.StatusBadRequest)
		return
	}
	if request.SurvivalRatePct, err = decimalParam(r, "survivalRate"); err != nil {
		http.Error(w, "invalid survivalRate value", http.StatusBadRequest)
		return
	}

	recommendations, err := h.service.Recommendations(r.Context(), request)
	if err != nil {
		if errors.Is(err, pond.ErrPondNotFound) || errors.Is(err, project.ErrProjectNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]RecommendationDTO, 0, len(recommendations))
	for _, rec := range recommendations {
		dtos = append(dtos, RecommendationDTO{
			Priority: string(rec.Priority),
			Category: rec.Category,
			Action:   rec.Action,
			Reason:   rec.Reason,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func decimalParam(r *http.Request, name string) (*decimal.Decimal, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
