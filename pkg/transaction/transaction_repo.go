package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/farmledger/farmledger/internal/database"
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrTransactionNotFound = errors.New("transaction does not exist")

type Repo interface {
	Store(ctx context.Context, userId int, transaction Transaction) (int, error)
	Get(ctx context.Context, userId int, transactionId int) (Transaction, error)
	// GetForProjectRange returns the project's transactions with a date
	// between from and to, both inclusive, ordered by date.
	GetForProjectRange(ctx context.Context, userId int, projectId int, from utils.Date, to utils.Date) ([]Transaction, error)
	GetRange(ctx context.Context, userId int, from utils.Date, to utils.Date) ([]Transaction, error)
	Delete(ctx context.Context, userId int, transactionId int) (bool, error)
}

type RepoImpl struct {
	db *database.DB
}

func NewTransactionRepo(db *database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, transaction Transaction) (int, error) {
	query := r.db.Rebind(`INSERT INTO transactions (user_id, project_id, category, amount, date, note)
				VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)

	var id int
	err := r.db.QueryRowContext(ctx, query,
		userId,
		transaction.ProjectID,
		transaction.Category,
		transaction.Amount.String(),
		transaction.Date.String(),
		transaction.Note,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store transaction: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, userId int, transactionId int) (Transaction, error) {
	query := r.db.Rebind(`SELECT id, project_id, category, amount, date, note
				FROM transactions WHERE id = ? AND user_id = ?`)
	row := r.db.QueryRowContext(ctx, query, transactionId, userId)

	transaction, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	} else if err != nil {
		log.Errorf("could not get transaction %d: %v", transactionId, err)
		return Transaction{}, err
	}
	return transaction, nil
}

func (r *RepoImpl) GetForProjectRange(ctx context.Context, userId int, projectId int, from utils.Date, to utils.Date) ([]Transaction, error) {
	query := r.db.Rebind(`SELECT id, project_id, category, amount, date, note
				FROM transactions
				WHERE user_id = ? AND project_id = ? AND date >= ? AND date <= ?
				ORDER BY date, id`)
	rows, err := r.db.QueryContext(ctx, query, userId, projectId, from.String(), to.String())
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *RepoImpl) GetRange(ctx context.Context, userId int, from utils.Date, to utils.Date) ([]Transaction, error) {
	query := r.db.Rebind(`SELECT id, project_id, category, amount, date, note
				FROM transactions
				WHERE user_id = ? AND date >= ? AND date <= ?
				ORDER BY date, id`)
	rows, err := r.db.QueryContext(ctx, query, userId, from.String(), to.String())
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, transactionId int) (bool, error) {
	query := r.db.Rebind(`DELETE FROM transactions WHERE id = ? AND user_id = ?`)
	result, err := r.db.ExecContext(ctx, query, transactionId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete transaction: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func scanTransactions(rows *sql.Rows) ([]Transaction, error) {
	var transactions []Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan transaction: %w", err)
			log.Error(err)
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

func scanTransaction(scan func(dest ...any) error) (Transaction, error) {
	var transaction Transaction
	var amount, date string

	if err := scan(
		&transaction.ID,
		&transaction.ProjectID,
		&transaction.Category,
		&amount,
		&date,
		&transaction.Note,
	); err != nil {
		return Transaction{}, err
	}

	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return Transaction{}, fmt.Errorf("could not parse amount: %w", err)
	}
	transaction.Amount = parsedAmount

	parsedDate, err := utils.ParseDate(date)
	if err != nil {
		return Transaction{}, fmt.Errorf("could not parse date: %w", err)
	}
	transaction.Date = parsedDate

	return transaction, nil
}
