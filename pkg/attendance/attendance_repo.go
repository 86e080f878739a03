package attendance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/farmledger/farmledger/internal/database"
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	// Upsert stores the record, replacing any existing record for the same
	// (employee, date) pair.
	Upsert(ctx context.Context, userId int, record Record) (int, error)
	GetRange(ctx context.Context, userId int, employeeId int, from utils.Date, to utils.Date) ([]Record, error)
	GetAllInRange(ctx context.Context, userId int, from utils.Date, to utils.Date) ([]Record, error)
}

type RepoImpl struct {
	db *database.DB
}

func NewAttendanceRepo(db *database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Upsert(ctx context.Context, userId int, record Record) (int, error) {
	query := r.db.Rebind(`INSERT INTO attendance (user_id, employee_id, date, status, overtime_hours, overtime_rate)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT (user_id, employee_id, date)
				DO UPDATE SET status = excluded.status,
				              overtime_hours = excluded.overtime_hours,
				              overtime_rate = excluded.overtime_rate
				RETURNING id`)

	var id int
	err := r.db.QueryRowContext(ctx, query,
		userId,
		record.EmployeeID,
		record.Date.String(),
		string(record.Status),
		record.OvertimeHours.String(),
		record.OvertimeRate.String(),
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not upsert attendance record: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetRange(ctx context.Context, userId int, employeeId int, from utils.Date, to utils.Date) ([]Record, error) {
	query := r.db.Rebind(`SELECT id, employee_id, date, status, overtime_hours, overtime_rate
				FROM attendance
				WHERE user_id = ? AND employee_id = ? AND date >= ? AND date <= ?
				ORDER BY date`)
	rows, err := r.db.QueryContext(ctx, query, userId, employeeId, from.String(), to.String())
	if err != nil {
		err := fmt.Errorf("could not query attendance records: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *RepoImpl) GetAllInRange(ctx context.Context, userId int, from utils.Date, to utils.Date) ([]Record, error) {
	query := r.db.Rebind(`SELECT id, employee_id, date, status, overtime_hours, overtime_rate
				FROM attendance
				WHERE user_id = ? AND date >= ? AND date <= ?
				ORDER BY employee_id, date`)
	rows, err := r.db.QueryContext(ctx, query, userId, from.String(), to.String())
	if err != nil {
		err := fmt.Errorf("could not query attendance records: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var record Record
		var date, status, overtimeHours, overtimeRate string
		if err := rows.Scan(
			&record.ID,
			&record.EmployeeID,
			&date,
			&status,
			&overtimeHours,
			&overtimeRate,
		); err != nil {
			err := fmt.Errorf("could not scan attendance record: %w", err)
			log.Error(err)
			return nil, err
		}

		parsedDate, err := utils.ParseDate(date)
		if err != nil {
			err := fmt.Errorf("could not parse attendance date: %w", err)
			log.Error(err)
			return nil, err
		}
		record.Date = parsedDate
		record.Status = Status(status)

		if record.OvertimeHours, err = decimal.NewFromString(overtimeHours); err != nil {
			return nil, fmt.Errorf("could not parse overtime hours: %w", err)
		}
		if record.OvertimeRate, err = decimal.NewFromString(overtimeRate); err != nil {
			return nil, fmt.Errorf("could not parse overtime rate: %w", err)
		}

		records = append(records, record)
	}
	return records, rows.Err()
}
