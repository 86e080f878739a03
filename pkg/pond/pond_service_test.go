package pond

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

var clock = &utils.MockClock{FixedNow: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)}

func setup(t *testing.T) (Service, context.Context, *event_bus.EventBus, func()) {
	repo := NewStubPondRepo()
	bus := event_bus.NewEventBus()
	service := NewPondService(repo, bus, clock)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "test-user"})
	return service, ctx, bus, func() {
		repo.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	created, err := service.Create(ctx, Pond{
		Name:            "North pond",
		AreaM2:          decimal.NewFromInt(2500),
		StockingDensity: decimal.NewFromInt(40),
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestServiceImpl_Create_RequiresName(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	_, err := service.Create(ctx, Pond{AreaM2: decimal.NewFromInt(2500)})

	assert.ErrorIs(t, err, ErrInvalidPond)
}

func TestServiceImpl_RecordReading_DefaultsTimeToNow(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	created, err := service.Create(ctx, Pond{Name: "North pond"})
	require.NoError(t, err)

	// when recorded without an explicit reading time
	recorded, err := service.RecordReading(ctx, WaterReading{
		PondID: created.ID,
		PH:     decimal.RequireFromString("7.8"),
	})

	require.NoError(t, err)
	assert.Equal(t, clock.Now().UTC(), recorded.ReadingTime)
}

func TestServiceImpl_RecordReading_UnknownPond(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	_, err := service.RecordReading(ctx, WaterReading{PondID: 42})

	assert.ErrorIs(t, err, ErrPondNotFound)
}

func TestServiceImpl_RecordReading_PublishesEvent(t *testing.T) {
	service, ctx, bus, teardown := setup(t)
	defer teardown()

	created, err := service.Create(ctx, Pond{Name: "North pond"})
	require.NoError(t, err)

	var received []event_bus.WaterReadingRecorded
	unsubscribe := event_bus.SubscribeTyped(bus, event_bus.WaterReadingRecordedType,
		func(e event_bus.EventT[event_bus.WaterReadingRecorded]) error {
			received = append(received, e.Data)
			return nil
		})
	defer unsubscribe()

	_, err = service.RecordReading(ctx, WaterReading{
		PondID:          created.ID,
		PH:              decimal.RequireFromString("7.8"),
		DissolvedOxygen: decimal.RequireFromString("5.2"),
	})

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, created.ID, received[0].PondId)
}

func TestServiceImpl_LatestReading(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	created, err := service.Create(ctx, Pond{Name: "North pond"})
	require.NoError(t, err)

	_, err = service.RecordReading(ctx, WaterReading{
		PondID:      created.ID,
		ReadingTime: time.Date(2024, time.March, 14, 8, 0, 0, 0, time.UTC),
		PH:          decimal.RequireFromString("7.2"),
	})
	require.NoError(t, err)
	_, err = service.RecordReading(ctx, WaterReading{
		PondID:      created.ID,
		ReadingTime: time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC),
		PH:          decimal.RequireFromString("7.9"),
	})
	require.NoError(t, err)

	latest, err := service.LatestReading(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, "7.9", latest.PH.String())
}

func TestServiceImpl_LatestReading_NoReadings(t *testing.T) {
	service, ctx, _, teardown := setup(t)
	defer teardown()

	created, err := service.Create(ctx, Pond{Name: "North pond"})
	require.NoError(t, err)

	_, err = service.LatestReading(ctx, created.ID)

	assert.ErrorIs(t, err, ErrNoReadings)
}
