package employee

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

var ErrEmployeeNotFound = errors.New("employee does not exist")

type Repo interface {
	Store(ctx context.Context, userId int, employee Employee) (int, error)
	Get(ctx context.Context, userId int, employeeId int) (Employee, error)
	GetAll(ctx context.Context, userId int) ([]Employee, error)
	Update(ctx context.Context, userId int, employee Employee) (bool, error)
	Delete(ctx context.Context, userId int, employeeId int) (bool, error)
}

type RepoImpl struct {
	db *database.DB
}

func NewEmployeeRepo(db *database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, employee Employee) (int, error) {
	query := r.db.Rebind(`INSERT INTO employee (uid, name, role, daily_wage, start_date, end_date, user_id)
				VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)

	var endDateParam interface{}
	if !employee.EndDate.IsZero() {
		endDateParam = employee.EndDate.String()
	}

	var id int
	err := r.db.QueryRowContext(ctx, query,
		employee.Uid,
		employee.Name,
		employee.Role,
		employee.DailyWage.String(),
		employee.StartDate.String(),
		endDateParam,
		userId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store employee: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, userId int, employeeId int) (Employee, error) {
	query := r.db.Rebind(`SELECT id, uid, name, role, daily_wage, start_date, end_date
				FROM employee WHERE id = ? AND user_id = ?`)
	row := r.db.QueryRowContext(ctx, query, employeeId, userId)

	employee, err := scanEmployee(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	} else if err != nil {
		log.Errorf("could not get employee %d: %v", employeeId, err)
		return Employee{}, err
	}
	return employee, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Employee, error) {
	query := r.db.Rebind(`SELECT id, uid, name, role, daily_wage, start_date, end_date
				FROM employee WHERE user_id = ? ORDER BY name`)
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query employees: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		employee, err := scanEmployee(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan employee: %w", err)
			log.Error(err)
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (r *RepoImpl) Update(ctx context.Context, userId int, employee Employee) (bool, error) {
	query := r.db.Rebind(`UPDATE employee SET name = ?, role = ?, daily_wage = ?, start_date = ?, end_date = ?
				WHERE id = ? AND user_id = ?`)

	var endDateParam interface{}
	if !employee.EndDate.IsZero() {
		endDateParam = employee.EndDate.String()
	}

	result, err := r.db.ExecContext(ctx, query,
		employee.Name,
		employee.Role,
		employee.DailyWage.String(),
		employee.StartDate.String(),
		endDateParam,
		employee.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update employee: %w", err)
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

func (r *RepoImpl) Delete(ctx context.Context, userId int, employeeId int) (bool, error) {
	query := r.db.Rebind(`DELETE FROM employee WHERE id = ? AND user_id = ?`)
	result, err := r.db.ExecContext(ctx, query, employeeId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete employee: %w", err)
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

func scanEmployee(scan func(dest ...any) error) (Employee, error) {
	var employee Employee
	var dailyWage string
	var startDate string
	var endDate sql.NullString

	if err := scan(
		&employee.ID,
		&employee.Uid,
		&employee.Name,
		&employee.Role,
		&dailyWage,
		&startDate,
		&endDate,
	); err != nil {
		return Employee{}, err
	}

	wage, err := decimal.NewFromString(dailyWage)
	if err != nil {
		return Employee{}, fmt.Errorf("could not parse daily wage: %w", err)
	}
	employee.DailyWage = wage

	start, err := utils.ParseDate(startDate)
	if err != nil {
		return Employee{}, fmt.Errorf("could not parse start date: %w", err)
	}
	employee.StartDate = start

	if endDate.Valid {
		end, err := utils.ParseDate(endDate.String)
		if err != nil {
			return Employee{}, fmt.Errorf("could not parse end date: %w", err)
		}
		employee.EndDate = end
	}

	return employee, nil
}
