package project

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

type ProjectDTO struct {
	ID        int        `json:"id,omitempty"`
	Name      string     `json:"name"`
	Notes     string     `json:"notes,omitempty"`
	StartDate utils.Date `json:"startDate"`
	Status    string     `json:"status,omitempty"`
}

type BudgetCategoryDTO struct {
	ID     int    `json:"id,omitempty"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new project")
	w.Header().Set("Content-Type", "application/json")

	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), dtoToProject(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(projectToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	projects, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		dtos = append(dtos, projectToDTO(p))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	projectId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	project, err := h.service.Get(r.Context(), projectId)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(projectToDTO(project)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	projectId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == 0 || dto.ID != projectId {
		http.Error(w, "Invalid project id in request body", http.StatusBadRequest)
		return
	}

	ok, err := h.service.Update(r.Context(), dtoToProject(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	projectId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Delete(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetBudget replaces the full budget of a project with the submitted
// categories.
func (h *Handler) SetBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	projectId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dtos []BudgetCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	categories := make([]BudgetCategory, 0, len(dtos))
	for _, dto := range dtos {
		category, err := dtoToCategory(dto)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		categories = append(categories, category)
	}

	stored, err := h.service.SetBudget(r.Context(), projectId, categories)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrDuplicateCategory) || errors.Is(err, ErrInvalidCategory) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categoriesToDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	projectId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	categories, err := h.service.GetBudget(r.Context(), projectId)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categoriesToDTO(categories)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func pathId(r *http.Request) (int, error) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		return 0, errors.New("invalid project id")
	}
	return id, nil
}

func projectToDTO(p Project) ProjectDTO {
	return ProjectDTO{
		ID:        p.ID,
		Name:      p.Name,
		Notes:     p.Notes,
		StartDate: p.StartDate,
		Status:    string(p.Status),
	}
}

func dtoToProject(dto ProjectDTO) Project {
	return Project{
		ID:        dto.ID,
		Name:      dto.Name,
		Notes:     dto.Notes,
		StartDate: dto.StartDate,
		Status:    Status(dto.Status),
	}
}

func categoriesToDTO(categories []BudgetCategory) []BudgetCategoryDTO {
	dtos := make([]BudgetCategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, BudgetCategoryDTO{ID: c.ID, Name: c.Name, Amount: c.Amount.String()})
	}
	return dtos
}

func dtoToCategory(dto BudgetCategoryDTO) (BudgetCategory, error) {
	amount := decimal.Zero
	if dto.Amount != "" {
		parsed, err := decimal.NewFromString(dto.Amount)
		if err != nil {
			return BudgetCategory{}, errors.New("invalid amount value")
		}
		amount = parsed
	}
	return BudgetCategory{ID: dto.ID, Name: dto.Name, Amount: amount}, nil
}
