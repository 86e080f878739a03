package employee

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/farmledger/farmledger/internal/rest"
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type EmployeeDTO struct {
	ID        int         `json:"id,omitempty"`
	Uid       string      `json:"uid,omitempty"`
	Name      string      `json:"name"`
	Role      string      `json:"role,omitempty"`
	DailyWage string      `json:"dailyWage"`
	StartDate utils.Date  `json:"startDate"`
	EndDate   *utils.Date `json:"endDate,omitempty"`
	Status    string      `json:"status,omitempty"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new employee")
	w.Header().Set("Content-Type", "application/json")

	var dto EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	employee, err := h.dtoToEmployee(dto)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := h.service.Create(r.Context(), employee)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(h.employeeToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := Status(r.URL.Query().Get("status"))
	if status != "" && status != StatusActive && status != StatusPast {
		http.Error(w, "invalid status filter", http.StatusBadRequest)
		return
	}

	employees, err := h.service.GetAll(r.Context(), status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		dtos = append(dtos, h.employeeToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	employeeId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	employee, err := h.service.Get(r.Context(), employeeId)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.employeeToDTO(employee)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	employeeId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == 0 || dto.ID != employeeId {
		http.Error(w, "Invalid employee id in request body", http.StatusBadRequest)
		return
	}
	employee, err := h.dtoToEmployee(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Update(r.Context(), employee)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Employee not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	employeeId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Delete(r.Context(), employeeId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Employee not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathId(r *http.Request) (int, error) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		return 0, errors.New("invalid employee id")
	}
	return id, nil
}

func (h *Handler) employeeToDTO(e Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:        e.ID,
		Uid:       e.Uid,
		Name:      e.Name,
		Role:      e.Role,
		DailyWage: e.DailyWage.String(),
		StartDate: e.StartDate,
		Status:    string(e.StatusOn(utils.DateOf(h.clock.Now()))),
	}
	if !e.EndDate.IsZero() {
		endDate := e.EndDate
		dto.EndDate = &endDate
	}
	return dto
}

func (h *Handler) dtoToEmployee(dto EmployeeDTO) (Employee, error) {
	wage := decimal.Zero
	if dto.DailyWage != "" {
		parsed, err := decimal.NewFromString(dto.DailyWage)
		if err != nil {
			return Employee{}, errors.New("invalid dailyWage value")
		}
		if parsed.IsNegative() {
			return Employee{}, errors.New("dailyWage must not be negative")
		}
		wage = parsed
	}

	employee := Employee{
		ID:        dto.ID,
		Uid:       dto.Uid,
		Name:      dto.Name,
		Role:      dto.Role,
		DailyWage: wage,
		StartDate: dto.StartDate,
	}
	if dto.EndDate != nil {
		employee.EndDate = *dto.EndDate
	}
	return employee, nil
}
