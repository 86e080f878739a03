package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/farmledger/farmledger/internal/event_bus"
	"github.com/farmledger/farmledger/pkg/period"
	"github.com/farmledger/farmledger/pkg/user"
	log "github.com/sirupsen/logrus"

	"github.com/farmledger/farmledger/internal/utils"
)

var ErrInvalidStatus = errors.New("invalid attendance status")

type Service interface {
	// Record upserts an attendance record; a second record for the same
	// (employee, date) overwrites the first.
	Record(ctx context.Context, record Record) (Record, error)
	GetForMonth(ctx context.Context, employeeId int, reference utils.Date) ([]Record, error)
}

type ServiceImpl struct {
	repo Repo
	bus  *event_bus.EventBus
}

func NewAttendanceService(repo Repo, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

func (s *ServiceImpl) Record(ctx context.Context, record Record) (Record, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !record.Status.Valid() {
		return Record{}, fmt.Errorf("%w: %q", ErrInvalidStatus, record.Status)
	}
	if record.Date.IsZero() {
		return Record{}, fmt.Errorf("%w: attendance date is required", utils.ErrInvalidDate)
	}

	id, err := s.repo.Upsert(ctx, userId, record)
	if err != nil {
		return Record{}, err
	}
	record.ID = id

	if s.bus != nil {
		event := event_bus.NewEvent(ctx, event_bus.AttendanceRecordedType, event_bus.AttendanceRecorded{
			EmployeeId: record.EmployeeID,
			Date:       record.Date,
			Status:     string(record.Status),
		})
		if err := s.bus.Publish(event); err != nil {
			log.Warnf("failed to publish attendance event: %v", err)
		}
	}

	return record, nil
}

func (s *ServiceImpl) GetForMonth(ctx context.Context, employeeId int, reference utils.Date) ([]Record, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	month := period.MonthOf(reference)
	return s.repo.GetRange(ctx, userId, employeeId, month.Start, month.End)
}
