package pond

import (
	"time"

	"github.com/shopspring/decimal"
)

type Pond struct {
	ID   int
	Name string
	// AreaM2 is the water surface in square meters.
	AreaM2 decimal.Decimal
	// StockingDensity is the number of animals stocked per square meter.
	StockingDensity decimal.Decimal
}

// WaterReading is a point-in-time measurement of a pond's water quality.
type WaterReading struct {
	ID              int
	PondID          int
	ReadingTime     time.Time
	PH              decimal.Decimal
	DissolvedOxygen decimal.Decimal
	TemperatureC    decimal.Decimal
	SalinityPpt     decimal.Decimal
	AmmoniaMgL      decimal.Decimal
}
