package feed

import (
	"context"
	"testing"

	"github.com/farmledger/farmledger/internal/event_bus"
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/pond"
	"github.com/farmledger/farmledger/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedRatePercent(t *testing.T) {
	tests := []struct {
		bodyWeight string
		wantRate   string
	}{
		{"0.5", "10"},
		{"1", "10"},
		{"2", "7"},
		{"8", "4"},
		{"25", "2.4"},
		{"30", "2"},
	}
	for _, tt := range tests {
		t.Run(tt.bodyWeight+"g", func(t *testing.T) {
			rate := FeedRatePercent(decimal.RequireFromString(tt.bodyWeight))
			assert.True(t, decimal.RequireFromString(tt.wantRate).Equal(rate),
				"expected %s%%, got %s%%", tt.wantRate, rate)
		})
	}
}

func TestDailyRationKg(t *testing.T) {
	// 100000 animals at 10 g = 1000 kg biomass, fed at 4% = 40 kg/day
	biomass := Biomass(decimal.NewFromInt(100000), decimal.NewFromInt(10))
	require.True(t, decimal.NewFromInt(1000).Equal(biomass))

	ration := DailyRationKg(biomass, decimal.NewFromInt(10))

	assert.True(t, decimal.NewFromInt(40).Equal(ration))
}

func TestChart(t *testing.T) {
	rows := Chart(decimal.NewFromInt(100000), decimal.NewFromInt(1), 4)

	require.Len(t, rows, 4)
	assert.Equal(t, 1, rows[0].Week)
	assert.True(t, decimal.NewFromInt(1).Equal(rows[0].BodyWeightG))
	// weight grows week over week, feeding rate falls
	assert.True(t, rows[3].BodyWeightG.GreaterThan(rows[0].BodyWeightG))
	assert.True(t, rows[3].RatePercent.LessThan(rows[0].RatePercent))
	// weekly ration is seven daily rations
	assert.True(t, rows[0].DailyRationKg.Mul(decimal.NewFromInt(7)).Equal(rows[0].WeeklyRationKg))
}

func TestServiceImpl_ChartForPond(t *testing.T) {
	repo := pond.NewStubPondRepo()
	defer repo.Cleanup()
	clock := &utils.MockClock{}
	pondService := pond.NewPondService(repo, event_bus.NewEventBus(), clock)
	service := NewFeedService(pondService)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "test-user"})

	created, err := pondService.Create(ctx, pond.Pond{
		Name:            "North pond",
		AreaM2:          decimal.NewFromInt(2500),
		StockingDensity: decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	rows, err := service.ChartForPond(ctx, created.ID, decimal.NewFromInt(5), 6)

	require.NoError(t, err)
	require.Len(t, rows, 6)
	// 2500 m2 x 40 per m2 = 100000 animals at 5 g = 500 kg biomass
	assert.True(t, decimal.NewFromInt(500).Equal(rows[0].BiomassKg))
}

func TestServiceImpl_ChartForPond_EmptyPond(t *testing.T) {
	repo := pond.NewStubPondRepo()
	defer repo.Cleanup()
	clock := &utils.MockClock{}
	pondService := pond.NewPondService(repo, event_bus.NewEventBus(), clock)
	service := NewFeedService(pondService)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "test-user"})

	created, err := pondService.Create(ctx, pond.Pond{Name: "Empty pond"})
	require.NoError(t, err)

	_, err = service.ChartForPond(ctx, created.ID, decimal.NewFromInt(5), 6)

	assert.ErrorIs(t, err, ErrInvalidChartRequest)
}
