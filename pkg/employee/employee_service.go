package employee

import (
	"context"
	"fmt"

	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	Get(ctx context.Context, employeeId int) (Employee, error)
	GetAll(ctx context.Context, status Status) ([]Employee, error)
	Update(ctx context.Context, employee Employee) (bool, error)
	Delete(ctx context.Context, employeeId int) (bool, error)
}

type ServiceImpl struct {
	repo  Repo
	clock utils.Clock
}

func NewEmployeeService(repo Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, employee Employee) (Employee, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Employee{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if employee.Uid == "" {
		employee.Uid = uuid.NewString()
	}
	id, err := s.repo.Store(ctx, userId, employee)
	if err != nil {
		return Employee{}, err
	}
	employee.ID = id
	return employee, nil
}

func (s *ServiceImpl) Get(ctx context.Context, employeeId int) (Employee, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Employee{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, employeeId)
}

// GetAll lists employees, optionally narrowed to the active or past
// partition as of today (UTC calendar day). An empty status returns all.
func (s *ServiceImpl) GetAll(ctx context.Context, status Status) ([]Employee, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	employees, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return employees, nil
	}

	today := utils.DateOf(s.clock.Now())
	filtered := make([]Employee, 0, len(employees))
	for _, e := range employees {
		if e.StatusOn(today) == status {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (s *ServiceImpl) Update(ctx context.Context, employee Employee) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	updated, err := s.repo.Update(ctx, userId, employee)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("employee not updated, probably because it does not exist (%d) or the user (%d) is not the owner", employee.ID, userId)
		return false, fmt.Errorf("employee not updated")
	}
	return true, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, employeeId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, employeeId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("employee not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", employeeId, userId)
		return false, fmt.Errorf("employee not deleted")
	}
	return true, nil
}
