package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/farmledger/farmledger/internal/event_bus"
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (Service, context.Context, *StubAttendanceRepo, *event_bus.EventBus, func()) {
	repo := NewStubAttendanceRepo()
	bus := event_bus.NewEventBus()
	service := NewAttendanceService(repo, bus)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "test-user"})
	return service, ctx, repo, bus, func() {
		repo.Cleanup()
	}
}

func TestServiceImpl_Record(t *testing.T) {
	service, ctx, _, _, teardown := setup(t)
	defer teardown()

	// given
	record := Record{
		EmployeeID:    7,
		Date:          utils.NewDate(2024, time.March, 4),
		Status:        StatusFullDay,
		OvertimeHours: decimal.NewFromInt(2),
		OvertimeRate:  decimal.RequireFromString("12.50"),
	}

	// when
	saved, err := service.Record(ctx, record)

	// then
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.True(t, decimal.NewFromInt(25).Equal(saved.OvertimePay()))
}

func TestServiceImpl_Record_NoUser(t *testing.T) {
	service, _, _, _, teardown := setup(t)
	defer teardown()

	_, err := service.Record(context.Background(), Record{
		EmployeeID: 7,
		Date:       utils.NewDate(2024, time.March, 4),
		Status:     StatusAbsent,
	})

	assert.ErrorIs(t, err, user.ErrNoUser)
}

func TestServiceImpl_Record_InvalidStatus(t *testing.T) {
	service, ctx, _, _, teardown := setup(t)
	defer teardown()

	_, err := service.Record(ctx, Record{
		EmployeeID: 7,
		Date:       utils.NewDate(2024, time.March, 4),
		Status:     "on_vacation",
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestServiceImpl_Record_MissingDate(t *testing.T) {
	service, ctx, _, _, teardown := setup(t)
	defer teardown()

	_, err := service.Record(ctx, Record{EmployeeID: 7, Status: StatusFullDay})

	assert.ErrorIs(t, err, utils.ErrInvalidDate)
}

func TestServiceImpl_Record_OverwritesSameDay(t *testing.T) {
	service, ctx, _, _, teardown := setup(t)
	defer teardown()

	// given an existing record for the day
	day := utils.NewDate(2024, time.March, 4)
	first, err := service.Record(ctx, Record{EmployeeID: 7, Date: day, Status: StatusFullDay})
	require.NoError(t, err)

	// when the same day is recorded again
	second, err := service.Record(ctx, Record{EmployeeID: 7, Date: day, Status: StatusAbsent})
	require.NoError(t, err)

	// then the later record replaces the earlier one whole
	assert.Equal(t, first.ID, second.ID)
	records, err := service.GetForMonth(ctx, 7, day)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, StatusAbsent, records[0].Status)
}

func TestServiceImpl_Record_PublishesEvent(t *testing.T) {
	service, ctx, _, bus, teardown := setup(t)
	defer teardown()

	var received []event_bus.AttendanceRecorded
	unsubscribe := event_bus.SubscribeTyped(bus, event_bus.AttendanceRecordedType,
		func(e event_bus.EventT[event_bus.AttendanceRecorded]) error {
			received = append(received, e.Data)
			return nil
		})
	defer unsubscribe()

	_, err := service.Record(ctx, Record{
		EmployeeID: 7,
		Date:       utils.NewDate(2024, time.March, 4),
		Status:     StatusHalfDay,
	})

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, 7, received[0].EmployeeId)
	assert.Equal(t, "half_day", received[0].Status)
}

func TestServiceImpl_GetForMonth_BoundsAreInclusive(t *testing.T) {
	service, ctx, _, _, teardown := setup(t)
	defer teardown()

	// given records on both month boundaries and just outside them
	days := []utils.Date{
		utils.NewDate(2024, time.February, 29),
		utils.NewDate(2024, time.March, 1),
		utils.NewDate(2024, time.March, 31),
		utils.NewDate(2024, time.April, 1),
	}
	for _, day := range days {
		_, err := service.Record(ctx, Record{EmployeeID: 7, Date: day, Status: StatusFullDay})
		require.NoError(t, err)
	}

	// when
	records, err := service.GetForMonth(ctx, 7, utils.NewDate(2024, time.March, 15))

	// then only the March records are returned
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, time.March, r.Date.Time().Month())
	}
}
