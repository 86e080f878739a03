package transaction

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

type TransactionDTO struct {
	ID        int        `json:"id,omitempty"`
	ProjectID int        `json:"projectId"`
	Category  string     `json:"category"`
	Amount    string     `json:"amount"`
	Date      utils.Date `json:"date"`
	Note      string     `json:"note,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	log.Debug("Recording new transaction")
	w.Header().Set("Content-Type", "application/json")

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	transaction, err := dtoToTransaction(dto)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	recorded, err := h.service.Record(r.Context(), transaction)
	if err != nil {
		if errors.Is(err, ErrInvalidTransaction) || errors.Is(err, utils.ErrInvalidDate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(transactionToDTO(recorded)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetForMonth returns a project's transactions for the calendar month of the
// given date. Expects "projectId" and "date" (any day in the month) query
// parameters.
func (h *Handler) GetForMonth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	projectId, err := strconv.Atoi(r.URL.Query().Get("projectId"))
	if err != nil {
		http.Error(w, "invalid projectId", http.StatusBadRequest)
		return
	}
	date, err := utils.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "invalid date format: " + err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	transactions, err := h.service.GetForMonth(r.Context(), projectId, date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		dtos = append(dtos, transactionToDTO(t))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	transactionId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	ok, err := h.service.Delete(r.Context(), transactionId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func transactionToDTO(t Transaction) TransactionDTO {
	return TransactionDTO{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Category:  t.Category,
		Amount:    t.Amount.String(),
		Date:      t.Date,
		Note:      t.Note,
	}
}

func dtoToTransaction(dto TransactionDTO) (Transaction, error) {
	amount := decimal.Zero
	if dto.Amount != "" {
		parsed, err := decimal.NewFromString(dto.Amount)
		if err != nil {
			return Transaction{}, errors.New("invalid amount value")
		}
		amount = parsed
	}
	return Transaction{
		ID:        dto.ID,
		ProjectID: dto.ProjectID,
		Category:  dto.Category,
		Amount:    amount,
		Date:      dto.Date,
		Note:      dto.Note,
	}, nil
}
