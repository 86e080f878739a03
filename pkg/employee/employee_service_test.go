package employee

import (
	"context"
	"testing"
	"time"

	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = &utils.MockClock{FixedNow: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)}

func setup(t *testing.T) (Service, context.Context, *StubEmployeeRepo, func()) {
	repo := NewStubEmployeeRepo()
	service := NewEmployeeService(repo, clock)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "test-user"})
	return service, ctx, repo, func() {
		repo.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	// given
	employee := Employee{
		Name:      "Anna Kowalska",
		Role:      "pond technician",
		DailyWage: decimal.NewFromInt(120),
		StartDate: utils.NewDate(2024, time.January, 8),
	}

	// when
	created, err := service.Create(ctx, employee)

	// then
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.Uid)
	assert.Equal(t, "Anna Kowalska", created.Name)
}

func TestServiceImpl_Create_NoUser(t *testing.T) {
	service, _, _, teardown := setup(t)
	defer teardown()

	_, err := service.Create(context.Background(), Employee{Name: "nobody"})

	assert.ErrorIs(t, err, user.ErrNoUser)
}

func TestServiceImpl_GetAll_StatusPartition(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	// given: one current employee, one whose engagement ends today, one past
	_, err := service.Create(ctx, Employee{
		Name:      "Current",
		StartDate: utils.NewDate(2024, time.January, 1),
	})
	require.NoError(t, err)
	_, err = service.Create(ctx, Employee{
		Name:      "EndsToday",
		StartDate: utils.NewDate(2024, time.January, 1),
		EndDate:   utils.NewDate(2024, time.March, 15),
	})
	require.NoError(t, err)
	_, err = service.Create(ctx, Employee{
		Name:      "Past",
		StartDate: utils.NewDate(2023, time.June, 1),
		EndDate:   utils.NewDate(2024, time.February, 29),
	})
	require.NoError(t, err)

	// when
	active, err := service.GetAll(ctx, StatusActive)
	require.NoError(t, err)
	past, err := service.GetAll(ctx, StatusPast)
	require.NoError(t, err)
	all, err := service.GetAll(ctx, "")
	require.NoError(t, err)

	// then: end date is inclusive, so EndsToday is still active
	assert.Len(t, active, 2)
	assert.Len(t, past, 1)
	assert.Equal(t, "Past", past[0].Name)
	assert.Len(t, all, 3)
}

func TestEmployee_StatusOn(t *testing.T) {
	employee := Employee{
		Name:      "Seasonal",
		StartDate: utils.NewDate(2024, time.January, 1),
		EndDate:   utils.NewDate(2024, time.March, 31),
	}

	assert.Equal(t, StatusActive, employee.StatusOn(utils.NewDate(2024, time.March, 31)))
	assert.Equal(t, StatusPast, employee.StatusOn(utils.NewDate(2024, time.April, 1)))
}
