package project

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

func setup(t *testing.T) (Service, context.Context, *StubProjectRepo, func()) {
	repo := NewStubProjectRepo()
	service := NewProjectService(repo)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "test-user"})
	return service, ctx, repo, func() {
		repo.Cleanup()
	}
}

func TestServiceImpl_Create_DefaultsToActive(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	created, err := service.Create(ctx, Project{
		Name:      "Cycle 2024-A",
		StartDate: utils.NewDate(2024, time.February, 1),
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, StatusActive, created.Status)
}

func TestServiceImpl_Create_NoUser(t *testing.T) {
	service, _, _, teardown := setup(t)
	defer teardown()

	_, err := service.Create(context.Background(), Project{Name: "nobody"})

	assert.ErrorIs(t, err, user.ErrNoUser)
}

func TestServiceImpl_SetBudget_ReplacesWholeBudget(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	// given a project with an existing budget
	created, err := service.Create(ctx, Project{
		Name:      "Cycle 2024-A",
		StartDate: utils.NewDate(2024, time.February, 1),
	})
	require.NoError(t, err)
	_, err = service.SetBudget(ctx, created.ID, []BudgetCategory{
		{Name: "feed", Amount: decimal.NewFromInt(1000)},
		{Name: "labor", Amount: decimal.NewFromInt(500)},
	})
	require.NoError(t, err)

	// when the budget is set again with a different category list
	stored, err := service.SetBudget(ctx, created.ID, []BudgetCategory{
		{Name: "feed", Amount: decimal.NewFromInt(1200)},
	})

	// then the old categories are gone, not merged
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "feed", stored[0].Name)
	assert.True(t, decimal.NewFromInt(1200).Equal(stored[0].Amount))
}

func TestServiceImpl_SetBudget_RejectsDuplicateNames(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	created, err := service.Create(ctx, Project{Name: "Cycle"})
	require.NoError(t, err)

	_, err = service.SetBudget(ctx, created.ID, []BudgetCategory{
		{Name: "feed", Amount: decimal.NewFromInt(1000)},
		{Name: "feed", Amount: decimal.NewFromInt(200)},
	})

	assert.ErrorIs(t, err, ErrDuplicateCategory)
}

func TestServiceImpl_SetBudget_RejectsNegativeAmount(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	created, err := service.Create(ctx, Project{Name: "Cycle"})
	require.NoError(t, err)

	_, err = service.SetBudget(ctx, created.ID, []BudgetCategory{
		{Name: "feed", Amount: decimal.NewFromInt(-5)},
	})

	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestServiceImpl_SetBudget_UnknownProject(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	_, err := service.SetBudget(ctx, 42, []BudgetCategory{
		{Name: "feed", Amount: decimal.NewFromInt(1000)},
	})

	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestServiceImpl_Get_OtherUsersProjectIsInvisible(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	created, err := service.Create(ctx, Project{Name: "Cycle"})
	require.NoError(t, err)

	otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Username: "other"})
	_, err = service.Get(otherCtx, created.ID)

	assert.ErrorIs(t, err, ErrProjectNotFound)
}
