package pond

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/farmledger/farmledger/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type PondDTO struct {
	ID              int    `json:"id,omitempty"`
	Name            string `json:"name"`
	AreaM2          string `json:"areaM2"`
	StockingDensity string `json:"stockingDensity"`
}

type WaterReadingDTO struct {
	ID              int       `json:"id,omitempty"`
	PondID          int       `json:"pondId"`
	ReadingTime     time.Time `json:"readingTime"`
	PH              string    `json:"ph"`
	DissolvedOxygen string    `json:"dissolvedOxygen"`
	TemperatureC    string    `json:"temperatureC"`
	SalinityPpt     string    `json:"salinityPpt,omitempty"`
	AmmoniaMgL      string    `json:"ammoniaMgL,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new pond")
	w.Header().Set("Content-Type", "application/json")

	var dto PondDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pond, err := dtoToPond(dto)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := h.service.Create(r.Context(), pond)
	if err != nil {
		if errors.Is(err, ErrInvalidPond) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(pondToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ponds, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]PondDTO, 0, len(ponds))
	for _, p := range ponds {
		dtos = append(dtos, pondToDTO(p))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	pondId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pond, err := h.service.Get(r.Context(), pondId)
	if err != nil {
		if errors.Is(err, ErrPondNotFound) {
			http.Error(w, "pond not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(pondToDTO(pond)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	pondId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto PondDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == 0 || dto.ID != pondId {
		http.Error(w, "Invalid pond id in request body", http.StatusBadRequest)
		return
	}
	pond, err := dtoToPond(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Update(r.Context(), pond)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Pond not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	pondId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Delete(r.Context(), pondId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Pond not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RecordReading(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	pondId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto WaterReadingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.PondID = pondId
	reading, err := dtoToReading(dto)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	recorded, err := h.service.RecordReading(r.Context(), reading)
	if err != nil {
		if errors.Is(err, ErrPondNotFound) {
			http.Error(w, "pond not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(readingToDTO(recorded)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetReadings lists a pond's readings between the "from" and "to" query
// parameters (RFC3339). Defaults to the last 7 days.
func (h *Handler) GetReadings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	pondId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -7)
	if fromString := r.URL.Query().Get("from"); fromString != "" {
		if from, err = time.Parse(time.RFC3339, fromString); err != nil {
			http.Error(w, "from must be in RFC3339 format", http.StatusBadRequest)
			return
		}
	}
	if toString := r.URL.Query().Get("to"); toString != "" {
		if to, err = time.Parse(time.RFC3339, toString); err != nil {
			http.Error(w, "to must be in RFC3339 format", http.StatusBadRequest)
			return
		}
	}

	readings, err := h.service.GetReadings(r.Context(), pondId, from, to)
	if err != nil {
		if errors.Is(err, ErrPondNotFound) {
			http.Error(w, "pond not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]WaterReadingDTO, 0, len(readings))
	for _, reading := range readings {
		dtos = append(dtos, readingToDTO(reading))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func pathId(r *http.Request) (int, error) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		return 0, errors.New("invalid pond id")
	}
	return id, nil
}

func pondToDTO(p Pond) PondDTO {
	return PondDTO{
		ID:              p.ID,
		Name:            p.Name,
		AreaM2:          p.AreaM2.String(),
		StockingDensity: p.StockingDensity.String(),
	}
}

func dtoToPond(dto PondDTO) (Pond, error) {
	area, err := parseDecimal(dto.AreaM2)
	if err != nil {
		return Pond{}, errors.New("invalid areaM2 value")
	}
	density, err := parseDecimal(dto.StockingDensity)
	if err != nil {
		return Pond{}, errors.New("invalid stockingDensity value")
	}
	return Pond{ID: dto.ID, Name: dto.Name, AreaM2: area, StockingDensity: density}, nil
}

func readingToDTO(reading WaterReading) WaterReadingDTO {
	return WaterReadingDTO{
		ID:              reading.ID,
		PondID:          reading.PondID,
		ReadingTime:     reading.ReadingTime,
		PH:              reading.PH.String(),
		DissolvedOxygen: reading.DissolvedOxygen.String(),
		TemperatureC:    reading.TemperatureC.String(),
		SalinityPpt:     reading.SalinityPpt.String(),
		AmmoniaMgL:      reading.AmmoniaMgL.String(),
	}
}

func dtoToReading(dto WaterReadingDTO) (WaterReading, error) {
	reading := WaterReading{ID: dto.ID, PondID: dto.PondID, ReadingTime: dto.ReadingTime}

	var err error
	if reading.PH, err = parseDecimal(dto.PH); err != nil {
		return WaterReading{}, errors.New("invalid ph value")
	}
	if reading.DissolvedOxygen, err = parseDecimal(dto.DissolvedOxygen); err != nil {
		return WaterReading{}, errors.New("invalid dissolvedOxygen value")
	}
	if reading.TemperatureC, err = parseDecimal(dto.TemperatureC); err != nil {
		return WaterReading{}, errors.New("invalid temperatureC value")
	}
	if reading.SalinityPpt, err = parseDecimal(dto.SalinityPpt); err != nil {
		return WaterReading{}, errors.New("invalid salinityPpt value")
	}
	if reading.AmmoniaMgL, err = parseDecimal(dto.AmmoniaMgL); err != nil {
		return WaterReading{}, errors.New("invalid ammoniaMgL value")
	}
	return reading, nil
}

func parseDecimal(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}
