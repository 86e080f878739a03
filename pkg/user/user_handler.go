package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/farmledger/farmledger/internal/rest"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Id          int         `json:"id,omitempty"`
	Uid         string      `json:"uid,omitempty"`
	Username    string      `json:"username"`
	DisplayName string      `json:"displayName"`
	Settings    SettingsDTO `json:"settings"`
}

type SettingsDTO struct {
	Timezone string `json:"timezone"`
	Currency string `json:"currency"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	current, err := h.service.GetCurrentUser(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoUser) || errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(userToDTO(current)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateUser(r.Context(), dtoToUser(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(userToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new user")
	w.Header().Set("Content-Type", "application/json")

	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Username == "" {
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "username is required"}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := h.service.CreateUser(r.Context(), dtoToUser(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(userToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetAvailableUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, userToDTO(u))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) IsUsernameAvailable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}

	available, err := h.service.IsUsernameAvailable(r.Context(), username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]bool{"available": available}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func userToDTO(u User) UserDTO {
	return UserDTO{
		Id:          u.Id,
		Uid:         u.Uid,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Settings: SettingsDTO{
			Timezone: u.Settings.Timezone,
			Currency: u.Settings.Currency,
		},
	}
}

func dtoToUser(dto UserDTO) User {
	return User{
		Id:          dto.Id,
		Uid:         dto.Uid,
		Username:    dto.Username,
		DisplayName: dto.DisplayName,
		Settings: Settings{
			Timezone: dto.Settings.Timezone,
			Currency: dto.Settings.Currency,
		},
	}
}
