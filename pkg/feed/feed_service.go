package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/farmledger/farmledger/pkg/pond"
	"github.com/shopspring/decimal"
)

var ErrInvalidChartRequest = errors.New("invalid feed chart request")

type Service interface {
	// ChartForPond projects a feed chart for the pond's current stock. The
	// population is derived from the pond's area and stocking density.
	ChartForPond(ctx context.Context, pondId int, startWeightG decimal.Decimal, weeks int) ([]ChartRow, error)
}

type ServiceImpl struct {
	pondService pond.Service
}

func NewFeedService(pondService pond.Service) *ServiceImpl {
	return &ServiceImpl{pondService: pondService}
}

func (s *ServiceImpl) ChartForPond(ctx context.Context, pondId int, startWeightG decimal.Decimal, weeks int) ([]ChartRow, error) {
	if weeks < 1 || weeks > 52 {
		return nil, fmt.Errorf("%w: weeks must be between 1 and 52", ErrInvalidChartRequest)
	}
	if !startWeightG.IsPositive() {
		return nil, fmt.Errorf("%w: start weight must be positive", ErrInvalidChartRequest)
	}

	p, err := s.pondService.Get(ctx, pondId)
	if err != nil {
		return nil, err
	}

	population := p.AreaM2.Mul(p.StockingDensity)
	if !population.IsPositive() {
		return nil, fmt.Errorf("%w: pond has no stock (area or stocking density is zero)", ErrInvalidChartRequest)
	}

	return Chart(population, startWeightG, weeks), nil
}
