package attendance

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/farmledger/farmledger/internal/rest"
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type RecordDTO struct {
	ID            int        `json:"id,omitempty"`
	EmployeeID    int        `json:"employeeId"`
	Date          utils.Date `json:"date"`
	Status        string     `json:"status"`
	OvertimeHours string     `json:"overtimeHours,omitempty"`
	OvertimeRate  string     `json:"overtimeRate,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// Record handles PUT /api/attendance. A repeated PUT for the same employee
// and date overwrites the stored record.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	log.Debug("Recording attendance")
	w.Header().Set("Content-Type", "application/json")

	var dto RecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	record, err := dtoToRecord(dto)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	stored, err := h.service.Record(r.Context(), record)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) || errors.Is(err, utils.ErrInvalidDate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(recordToDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetForMonth handles GET /api/attendance?employeeId=&date=.
func (h *Handler) GetForMonth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	employeeId, err := strconv.Atoi(r.URL.Query().Get("employeeId"))
	if err != nil {
		http.Error(w, "invalid employeeId", http.StatusBadRequest)
		return
	}
	reference, err := utils.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "date must be in YYYY-MM-DD format",
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	records, err := h.service.GetForMonth(r.Context(), employeeId, reference)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]RecordDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, recordToDTO(record))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func recordToDTO(r Record) RecordDTO {
	dto := RecordDTO{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       r.Date,
		Status:     string(r.Status),
	}
	if !r.OvertimeHours.IsZero() {
		dto.OvertimeHours = r.OvertimeHours.String()
	}
	if !r.OvertimeRate.IsZero() {
		dto.OvertimeRate = r.OvertimeRate.String()
	}
	return dto
}

func dtoToRecord(dto RecordDTO) (Record, error) {
	record := Record{
		ID:            dto.ID,
		EmployeeID:    dto.EmployeeID,
		Date:          dto.Date,
		Status:        Status(dto.Status),
		OvertimeHours: decimal.Zero,
		OvertimeRate:  decimal.Zero,
	}

	// Missing optional fields mean zero, not an error.
	if dto.OvertimeHours != "" {
		hours, err := decimal.NewFromString(dto.OvertimeHours)
		if err != nil || hours.IsNegative() {
			return Record{}, errors.New("overtimeHours must be a non-negative number")
		}
		record.OvertimeHours = hours
	}
	if dto.OvertimeRate != "" {
		rate, err := decimal.NewFromString(dto.OvertimeRate)
		if err != nil || rate.IsNegative() {
			return Record{}, errors.New("overtimeRate must be a non-negative number")
		}
		record.OvertimeRate = rate
	}

	return record, nil
}
