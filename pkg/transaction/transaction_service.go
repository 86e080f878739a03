package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/farmledger/farmledger/internal/event_bus"
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/period"
	"github.com/farmledger/farmledger/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidTransaction = errors.New("invalid transaction")

type Service interface {
	Record(ctx context.Context, transaction Transaction) (Transaction, error)
	Get(ctx context.Context, transactionId int) (Transaction, error)
	GetForMonth(ctx context.Context, projectId int, reference utils.Date) ([]Transaction, error)
	Delete(ctx context.Context, transactionId int) (bool, error)
}

type ServiceImpl struct {
	repo Repo
	bus  *event_bus.EventBus
}

func NewTransactionService(repo Repo, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

func (s *ServiceImpl) Record(ctx context.Context, transaction Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if strings.TrimSpace(transaction.Category) == "" {
		return Transaction{}, fmt.Errorf("%w: category is required", ErrInvalidTransaction)
	}
	if transaction.Amount.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: amount must not be negative", ErrInvalidTransaction)
	}
	if transaction.Date.IsZero() {
		return Transaction{}, fmt.Errorf("%w: transaction date is required", utils.ErrInvalidDate)
	}

	id, err := s.repo.Store(ctx, userId, transaction)
	if err != nil {
		return Transaction{}, err
	}
	transaction.ID = id

	if s.bus != nil {
		event := event_bus.NewEvent(ctx, event_bus.TransactionRecordedType, event_bus.TransactionRecorded{
			TransactionId: transaction.ID,
			ProjectId:     transaction.ProjectID,
			Category:      transaction.Category,
			Amount:        transaction.Amount,
			Date:          transaction.Date,
		})
		if err := s.bus.Publish(event); err != nil {
			log.Warnf("failed to publish transaction event: %v", err)
		}
	}

	return transaction, nil
}

func (s *ServiceImpl) Get(ctx context.Context, transactionId int) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, transactionId)
}

func (s *ServiceImpl) GetForMonth(ctx context.Context, projectId int, reference utils.Date) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	month := period.MonthOf(reference)
	return s.repo.GetForProjectRange(ctx, userId, projectId, month.Start, month.End)
}

func (s *ServiceImpl) Delete(ctx context.Context, transactionId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, transactionId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("transaction not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", transactionId, userId)
		return false, nil
	}
	return true, nil
}
