package transaction

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

func setup(t *testing.T) (Service, context.Context, *event_bus.EventBus, func()) {
	repo := NewStubTransactionRepo()
	bus := event_bus.NewEventBus()
	service := NewTransactionService(repo, bus)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "test-user"})
	return service, ctx, bus, func() {
		repo.Cleanup()
	}
}

func TestServiceImpl_Record(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	recorded, err := service.Record(ctx, Transaction{
		ProjectID: 3,
		Category:  "feed",
		Amount:    decimal.RequireFromString("245.80"),
		Date:      utils.NewDate(2024, time.March, 10),
		Note:      "pellet delivery",
	})

	require.NoError(t, err)
	assert.NotZero(t, recorded.ID)
}

func TestServiceImpl_Record_Validation(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	tests := []struct {
		name        string
		transaction Transaction
		wantErr     error
	}{
		{
			name:        "missing category",
			transaction: Transaction{ProjectID: 3, Amount: decimal.NewFromInt(10), Date: utils.NewDate(2024, time.March, 10)},
			wantErr:     ErrInvalidTransaction,
		},
		{
			name:        "negative amount",
			transaction: Transaction{ProjectID: 3, Category: "feed", Amount: decimal.NewFromInt(-10), Date: utils.NewDate(2024, time.March, 10)},
			wantErr:     ErrInvalidTransaction,
		},
		{
			name:        "missing date",
			transaction: Transaction{ProjectID: 3, Category: "feed", Amount: decimal.NewFromInt(10)},
			wantErr:     utils.ErrInvalidDate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Record(ctx, tt.transaction)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestServiceImpl_Record_PublishesEvent(t *testing.T) {
	service, ctx, bus, teardown := setup(t)
	defer teardown()

	var received []event_bus.TransactionRecorded
	unsubscribe := event_bus.SubscribeTyped(bus, event_bus.TransactionRecordedType,
		func(e event_bus.EventT[event_bus.TransactionRecorded]) error {
			received = append(received, e.Data)
			return nil
		})
	defer unsubscribe()

	recorded, err := service.Record(ctx, Transaction{
		ProjectID: 3,
		Category:  "feed",
		Amount:    decimal.NewFromInt(100),
		Date:      utils.NewDate(2024, time.March, 10),
	})

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, recorded.ID, received[0].TransactionId)
	assert.Equal(t, "feed", received[0].Category)
}

func TestServiceImpl_GetForMonth(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	// given transactions inside and outside March, and in another project
	inMarch := []utils.Date{
		utils.NewDate(2024, time.March, 1),
		utils.NewDate(2024, time.March, 31),
	}
	for _, day := range inMarch {
		_, err := service.Record(ctx, Transaction{ProjectID: 3, Category: "feed", Amount: decimal.NewFromInt(10), Date: day})
		require.NoError(t, err)
	}
	_, err := service.Record(ctx, Transaction{ProjectID: 3, Category: "feed", Amount: decimal.NewFromInt(10), Date: utils.NewDate(2024, time.February, 29)})
	require.NoError(t, err)
	_, err = service.Record(ctx, Transaction{ProjectID: 9, Category: "feed", Amount: decimal.NewFromInt(10), Date: utils.NewDate(2024, time.March, 15)})
	require.NoError(t, err)

	// when
	transactions, err := service.GetForMonth(ctx, 3, utils.NewDate(2024, time.March, 15))

	// then both boundary days are included and other projects are not
	require.NoError(t, err)
	assert.Len(t, transactions, 2)
}

func TestServiceImpl_Delete_OtherUsersTransaction(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	recorded, err := service.Record(ctx, Transaction{
		ProjectID: 3,
		Category:  "feed",
		Amount:    decimal.NewFromInt(100),
		Date:      utils.NewDate(2024, time.March, 10),
	})
	require.NoError(t, err)

	otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Username: "other"})
	ok, err := service.Delete(otherCtx, recorded.ID)

	require.NoError(t, err)
	assert.False(t, ok)
}
