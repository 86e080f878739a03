package project

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

var ErrProjectNotFound = errors.New("project does not exist")

type Repo interface {
	Store(ctx context.Context, userId int, project Project) (int, error)
	Get(ctx context.Context, userId int, projectId int) (Project, error)
	GetAll(ctx context.Context, userId int) ([]Project, error)
	Update(ctx context.Context, userId int, project Project) (bool, error)
	Delete(ctx context.Context, userId int, projectId int) (bool, error)
	// ReplaceBudget atomically swaps the whole budget of a project for the
	// given categories.
	ReplaceBudget(ctx context.Context, userId int, projectId int, categories []BudgetCategory) error
	GetBudget(ctx context.Context, userId int, projectId int) ([]BudgetCategory, error)
}

type RepoImpl struct {
	db *database.DB
}

func NewProjectRepo(db *database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, project Project) (int, error) {
	query := r.db.Rebind(`INSERT INTO project (name, notes, start_date, status, user_id)
				VALUES (?, ?, ?, ?, ?) RETURNING id`)

	var id int
	err := r.db.QueryRowContext(ctx, query,
		project.Name,
		project.Notes,
		project.StartDate.String(),
		string(project.Status),
		userId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store project: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, userId int, projectId int) (Project, error) {
	query := r.db.Rebind(`SELECT id, name, notes, start_date, status
				FROM project WHERE id = ? AND user_id = ?`)
	row := r.db.QueryRowContext(ctx, query, projectId, userId)

	project, err := scanProject(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrProjectNotFound
	} else if err != nil {
		log.Errorf("could not get project %d: %v", projectId, err)
		return Project{}, err
	}
	return project, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Project, error) {
	query := r.db.Rebind(`SELECT id, name, notes, start_date, status
				FROM project WHERE user_id = ? ORDER BY name`)
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		project, err := scanProject(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan project: %w", err)
			log.Error(err)
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *RepoImpl) Update(ctx context.Context, userId int, project Project) (bool, error) {
	query := r.db.Rebind(`UPDATE project SET name = ?, notes = ?, start_date = ?, status = ?
				WHERE id = ? AND user_id = ?`)
	result, err := r.db.ExecContext(ctx, query,
		project.Name,
		project.Notes,
		project.StartDate.String(),
		string(project.Status),
		project.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update project: %w", err)
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

func (r *RepoImpl) Delete(ctx context.Context, userId int, projectId int) (bool, error) {
	query := r.db.Rebind(`DELETE FROM project WHERE id = ? AND user_id = ?`)
	result, err := r.db.ExecContext(ctx, query, projectId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete project: %w", err)
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

func (r *RepoImpl) ReplaceBudget(ctx context.Context, userId int, projectId int, categories []BudgetCategory) error {
	if _, err := r.Get(ctx, userId, projectId); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback()

	deleteQuery := r.db.Rebind(`DELETE FROM budget_category WHERE project_id = ?`)
	if _, err := tx.ExecContext(ctx, deleteQuery, projectId); err != nil {
		err := fmt.Errorf("could not clear project budget: %w", err)
		log.Error(err)
		return err
	}

	insertQuery := r.db.Rebind(`INSERT INTO budget_category (project_id, name, amount) VALUES (?, ?, ?)`)
	for _, category := range categories {
		if _, err := tx.ExecContext(ctx, insertQuery, projectId, category.Name, category.Amount.String()); err != nil {
			err := fmt.Errorf("could not store budget category %q: %w", category.Name, err)
			log.Error(err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit budget replacement: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) GetBudget(ctx context.Context, userId int, projectId int) ([]BudgetCategory, error) {
	if _, err := r.Get(ctx, userId, projectId); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT id, name, amount FROM budget_category WHERE project_id = ? ORDER BY name`)
	rows, err := r.db.QueryContext(ctx, query, projectId)
	if err != nil {
		err := fmt.Errorf("could not query budget categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []BudgetCategory
	for rows.Next() {
		var category BudgetCategory
		var amount string
		if err := rows.Scan(&category.ID, &category.Name, &amount); err != nil {
			err := fmt.Errorf("could not scan budget category: %w", err)
			log.Error(err)
			return nil, err
		}
		if category.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("could not parse budget amount: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func scanProject(scan func(dest ...any) error) (Project, error) {
	var project Project
	var startDate, status string

	if err := scan(
		&project.ID,
		&project.Name,
		&project.Notes,
		&startDate,
		&status,
	); err != nil {
		return Project{}, err
	}

	start, err := utils.ParseDate(startDate)
	if err != nil {
		return Project{}, fmt.Errorf("could not parse start date: %w", err)
	}
	project.StartDate = start
	project.Status = Status(status)

	return project, nil
}
