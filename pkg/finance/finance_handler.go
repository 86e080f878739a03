package finance

import (
	"encoding/json"
	"net/http"

	"github.com/farmledger/farmledger/internal/rest"
	"github.com/shopspring/decimal"
)

type AnalysisRequestDTO struct {
	FixedCosts struct {
		PondLease       string `json:"pondLease,omitempty"`
		Equipment       string `json:"equipment,omitempty"`
		Infrastructure  string `json:"infrastructure,omitempty"`
		PermitsLicenses string `json:"permitsLicenses,omitempty"`
		Insurance       string `json:"insurance,omitempty"`
		Depreciation    string `json:"depreciation,omitempty"`
	} `json:"fixedCosts"`
	VariableCosts struct {
		Postlarvae     string `json:"postlarvae,omitempty"`
		Feed           string `json:"feed,omitempty"`
		Labor          string `json:"labor,omitempty"`
		Electricity    string `json:"electricity,omitempty"`
		Fuel           string `json:"fuel,omitempty"`
		Medication     string `json:"medication,omitempty"`
		WaterTreatment string `json:"waterTreatment,omitempty"`
		Maintenance    string `json:"maintenance,omitempty"`
		Miscellaneous  string `json:"miscellaneous,omitempty"`
	} `json:"variableCosts"`
	Production struct {
		PondAreaHa         string `json:"pondAreaHa"`
		StockingDensity    string `json:"stockingDensity"`
		AverageBodyWeightG string `json:"averageBodyWeightG"`
		SurvivalRatePct    string `json:"survivalRatePct"`
		FCR                string `json:"fcr,omitempty"`
		CulturePeriodD     int    `json:"culturePeriodD"`
		MarketPricePerKg   string `json:"marketPricePerKg"`
	} `json:"production"`
}

type AnalysisResultDTO struct {
	TotalInvestment string `json:"totalInvestment"`
	TotalCosts      string `json:"totalCosts"`
	TotalRevenue    string `json:"totalRevenue"`
	NetProfit       string `json:"netProfit"`
	ROIPct          string `json:"roiPct"`
	ProfitMarginPct string `json:"profitMarginPct"`

	BreakEvenPrice string `json:"breakEvenPrice"`
	BreakEvenYield string `json:"breakEvenYield"`
	BreakEvenDays  int    `json:"breakEvenDays"`

	TotalYieldKg string `json:"totalYieldKg"`
	CostPerKg    string `json:"costPerKg"`
	RevenuePerKg string `json:"revenuePerKg"`
	ProfitPerKg  string `json:"profitPerKg"`

	BenefitCostRatio    string `json:"benefitCostRatio"`
	PaybackPeriodMonths string `json:"paybackPeriodMonths"`

	RiskScore       int      `json:"riskScore"`
	RiskFactors     []string `json:"riskFactors"`
	Recommendations []string `json:"recommendations"`
}

type Handler struct {
}

func NewHandler() *Handler {
	return &Handler{}
}

// Analyze runs the cycle analysis over the request body. The computation is
// pure; nothing is persisted.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto AnalysisRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	parser := &decimalParser{}
	fixed := FixedCosts{
		PondLease:       parser.parse(dto.FixedCosts.PondLease),
		Equipment:       parser.parse(dto.FixedCosts.Equipment),
		Infrastructure:  parser.parse(dto.FixedCosts.Infrastructure),
		PermitsLicenses: parser.parse(dto.FixedCosts.PermitsLicenses),
		Insurance:       parser.parse(dto.FixedCosts.Insurance),
		Depreciation:    parser.parse(dto.FixedCosts.Depreciation),
	}
	variable := VariableCosts{
		Postlarvae:     parser.parse(dto.VariableCosts.Postlarvae),
		Feed:           parser.parse(dto.VariableCosts.Feed),
		Labor:          parser.parse(dto.VariableCosts.Labor),
		Electricity:    parser.parse(dto.VariableCosts.Electricity),
		Fuel:           parser.parse(dto.VariableCosts.Fuel),
		Medication:     parser.parse(dto.VariableCosts.Medication),
		WaterTreatment: parser.parse(dto.VariableCosts.WaterTreatment),
		Maintenance:    parser.parse(dto.VariableCosts.Maintenance),
		Miscellaneous:  parser.parse(dto.VariableCosts.Miscellaneous),
	}
	metrics := ProductionMetrics{
		PondAreaHa:         parser.parse(dto.Production.PondAreaHa),
		StockingDensity:    parser.parse(dto.Production.StockingDensity),
		AverageBodyWeightG: parser.parse(dto.Production.AverageBodyWeightG),
		SurvivalRatePct:    parser.parse(dto.Production.SurvivalRatePct),
		FCR:                parser.parse(dto.Production.FCR),
		CulturePeriodD:     dto.Production.CulturePeriodD,
		MarketPricePerKg:   parser.parse(dto.Production.MarketPricePerKg),
	}
	if parser.err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "invalid decimal value: " + parser.err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	result := Analyze(fixed, variable, metrics)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resultToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// decimalParser collects the first parsing error instead of failing on each
// field separately.
type decimalParser struct {
	err error
}

func (p *decimalParser) parse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return decimal.Zero
	}
	return parsed
}

func resultToDTO(result AnalysisResult) AnalysisResultDTO {
	riskFactors := result.RiskFactors
	if riskFactors == nil {
		riskFactors = []string{}
	}
	recs := result.Recommendations
	if recs == nil {
		recs = []string{}
	}
	return AnalysisResultDTO{
		TotalInvestment:     result.TotalInvestment.String(),
		TotalCosts:          result.TotalCosts.String(),
		TotalRevenue:        result.TotalRevenue.String(),
		NetProfit:           result.NetProfit.String(),
		ROIPct:              result.ROIPct.String(),
		ProfitMarginPct:     result.ProfitMarginPct.String(),
		BreakEvenPrice:      result.BreakEvenPrice.String(),
		BreakEvenYield:      result.BreakEvenYield.String(),
		BreakEvenDays:       result.BreakEvenDays,
		TotalYieldKg:        result.TotalYieldKg.String(),
		CostPerKg:           result.CostPerKg.String(),
		RevenuePerKg:        result.RevenuePerKg.String(),
		ProfitPerKg:         result.ProfitPerKg.String(),
		BenefitCostRatio:    result.BenefitCostRatio.String(),
		PaybackPeriodMonths: result.PaybackPeriodMonths.String(),
		RiskScore:           result.RiskScore,
		RiskFactors:         riskFactors,
		Recommendations:     recs,
	}
}
