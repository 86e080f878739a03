package project

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/farmledger/farmledger/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrDuplicateCategory = errors.New("duplicate budget category name")
	ErrInvalidCategory   = errors.New("invalid budget category")
)

type Service interface {
	Create(ctx context.Context, project Project) (Project, error)
	Get(ctx context.Context, projectId int) (Project, error)
	GetAll(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, project Project) (bool, error)
	Delete(ctx context.Context, projectId int) (bool, error)
	// SetBudget replaces the project budget as a whole; partial updates of
	// single categories are not supported.
	SetBudget(ctx context.Context, projectId int, categories []BudgetCategory) ([]BudgetCategory, error)
	GetBudget(ctx context.Context, projectId int) ([]BudgetCategory, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewProjectService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, project Project) (Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if project.Status == "" {
		project.Status = StatusActive
	}

	id, err := s.repo.Store(ctx, userId, project)
	if err != nil {
		return Project{}, err
	}
	project.ID = id
	return project, nil
}

func (s *ServiceImpl) Get(ctx context.Context, projectId int) (Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, projectId)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Update(ctx context.Context, project Project) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	updated, err := s.repo.Update(ctx, userId, project)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("project not updated, probably because it does not exist (%d) or the user (%d) is not the owner", project.ID, userId)
		return false, nil
	}
	return true, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, projectId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, projectId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("project not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", projectId, userId)
		return false, nil
	}
	return true, nil
}

func (s *ServiceImpl) SetBudget(ctx context.Context, projectId int, categories []BudgetCategory) ([]BudgetCategory, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	seen := make(map[string]bool, len(categories))
	for _, category := range categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category name is required", ErrInvalidCategory)
		}
		if category.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount of %q must not be negative", ErrInvalidCategory, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCategory, name)
		}
		seen[name] = true
	}

	if err := s.repo.ReplaceBudget(ctx, userId, projectId, categories); err != nil {
		return nil, err
	}
	return s.repo.GetBudget(ctx, userId, projectId)
}

func (s *ServiceImpl) GetBudget(ctx context.Context, projectId int) ([]BudgetCategory, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetBudget(ctx, userId, projectId)
}
