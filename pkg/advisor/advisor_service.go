package advisor

import (
	"context"
	"errors"

	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/pond"
	"github.com/farmledger/farmledger/pkg/report"
	"github.com/shopspring/decimal"
)

// Request is one advisory query. PondId and ProjectId are optional; absent
// sources simply contribute no conditions. Production metrics arrive from the
// caller because they are not tracked per pond.
type Request struct {
	PondId          int
	ProjectId       int
	Reference       utils.Date
	FCR             *decimal.Decimal
	GrowthRateGWeek *decimal.Decimal
	SurvivalRatePct *decimal.Decimal
}

type Service interface {
	Recommendations(ctx context.Context, request Request) ([]Recommendation, error)
}

type ServiceImpl struct {
	pondService   pond.Service
	reportService report.Service
}

func NewAdvisorService(pondService pond.Service, reportService report.Service) *ServiceImpl {
	return &ServiceImpl{pondService: pondService, reportService: reportService}
}

func (s *ServiceImpl) Recommendations(ctx context.Context, request Request) ([]Recommendation, error) {
	conditions := Conditions{
		FCR:             request.FCR,
		GrowthRateGWeek: request.GrowthRateGWeek,
		SurvivalRatePct: request.SurvivalRatePct,
	}

	if request.PondId != 0 {
		reading, err := s.pondService.LatestReading(ctx, request.PondId)
		if err != nil && !errors.Is(err, pond.ErrNoReadings) {
			return nil, err
		}
		if err == nil {
			conditions.PH = &reading.PH
			conditions.DissolvedOxygen = &reading.DissolvedOxygen
			conditions.TemperatureC = &reading.TemperatureC
			conditions.AmmoniaMgL = &reading.AmmoniaMgL
		}
	}

	if request.ProjectId != 0 {
		budgetReport, err := s.reportService.BudgetReport(ctx, request.ProjectId, request.Reference)
		if err != nil {
			return nil, err
		}
		overspent := map[string]decimal.Decimal{}
		for _, line := range budgetReport.Lines {
			if line.Delta.IsNegative() {
				overspent[line.Category] = line.Delta.Neg()
			}
		}
		if len(overspent) > 0 {
			conditions.OverspentCategories = overspent
		}
	}

	return Evaluate(conditions), nil
}
