package transaction

import (
	"context"

	"github.com/farmledger/farmledger/internal/utils"
)

type StubTransactionRepo struct {
	nextId int
	data   map[int]Transaction
	owners map[int]int
}

func NewStubTransactionRepo() *StubTransactionRepo {
	return &StubTransactionRepo{data: map[int]Transaction{}, owners: map[int]int{}}
}

func (s *StubTransactionRepo) Store(ctx context.Context, userId int, transaction Transaction) (int, error) {
	s.nextId++
	transaction.ID = s.nextId
	s.data[transaction.ID] = transaction
	s.owners[transaction.ID] = userId
	return transaction.ID, nil
}

func (s *StubTransactionRepo) Get(ctx context.Context, userId int, transactionId int) (Transaction, error) {
	transaction, ok := s.data[transactionId]
	if !ok || s.owners[transactionId] != userId {
		return Transaction{}, ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *StubTransactionRepo) GetForProjectRange(ctx context.Context, userId int, projectId int, from utils.Date, to utils.Date) ([]Transaction, error) {
	var transactions []Transaction
	for id, transaction := range s.data {
		if s.owners[id] != userId || transaction.ProjectID != projectId {
			continue
		}
		if transaction.Date.Before(from) || transaction.Date.After(to) {
			continue
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}

func (s *StubTransactionRepo) GetRange(ctx context.Context, userId int, from utils.Date, to utils.Date) ([]Transaction, error) {
	var transactions []Transaction
	for id, transaction := range s.data {
		if s.owners[id] != userId {
			continue
		}
		if transaction.Date.Before(from) || transaction.Date.After(to) {
			continue
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}

func (s *StubTransactionRepo) Delete(ctx context.Context, userId int, transactionId int) (bool, error) {
	if _, ok := s.data[transactionId]; !ok || s.owners[transactionId] != userId {
		return false, nil
	}
	delete(s.data, transactionId)
	delete(s.owners, transactionId)
	return true, nil
}

func (s *StubTransactionRepo) Cleanup() {
	s.nextId = 0
	s.data = map[int]Transaction{}
	s.owners = map[int]int{}
}
