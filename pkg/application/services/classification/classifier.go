// Package classification derives ABC/XYZ matrix cells from demand history.
//
// ABC ranks SKUs by annual consumption value (average weekly shipments x 52
// x unit cost) and cuts the ranking at cumulative Pareto thresholds. XYZ
// measures demand stability as the coefficient of variation of monthly
// outbound quantity. The two letters combine into the nine-cell matrix the
// policy grid keys on.
package classification

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cwaltman/replen/pkg/domain/entities"
)

// ABCClass buckets SKUs by share of annual consumption value
type ABCClass int

const (
	ClassA ABCClass = iota
	ClassB
	ClassC
)

// String method for ABCClass enum
func (c ABCClass) String() string {
	switch c {
	case ClassA:
		return "A"
	case ClassB:
		return "B"
	case ClassC:
		return "C"
	default:
		return "Unknown"
	}
}

// XYZClass buckets SKUs by demand variability
type XYZClass int

const (
	ClassX XYZClass = iota
	ClassY
	ClassZ
)

// String method for XYZClass enum
func (c XYZClass) String() string {
	switch c {
	case ClassX:
		return "X"
	case ClassY:
		return "Y"
	case ClassZ:
		return "Z"
	default:
		return "Unknown"
	}
}

// DemandHistory is one SKU's observed demand, aggregated upstream from
// warehouse activity with adjustments and internal moves already filtered out.
type DemandHistory struct {
	SKUCode            entities.SKUCode
	AvgWeeklyShipments float64
	UnitCost           decimal.NullDecimal
	// MonthlyOutbound keys months as "2006-01". Months with no outbound
	// activity are simply absent.
	MonthlyOutbound map[string]float64
}

// Classification is the derived placement of one SKU in the matrix
type Classification struct {
	SKUCode     entities.SKUCode    `json:"skuCode"`
	ABC         ABCClass            `json:"-"`
	XYZ         XYZClass            `json:"-"`
	Cell        entities.MatrixCell `json:"cell"`
	AnnualValue decimal.Decimal     `json:"annualValue"`
	// CV is the coefficient of variation of monthly demand. Infinite when
	// the SKU shows no demand at all.
	CV          float64 `json:"cv"`
	CVEstimated bool    `json:"cvEstimated"`
}

// Config holds the classification thresholds
type Config struct {
	// Cumulative value share boundaries for the Pareto cut
	ABCThresholdA float64
	ABCThresholdB float64
	// CV boundaries between stable, moderate and erratic demand
	XYZThresholdX float64
	XYZThresholdY float64
	// Months of history required before CV is computed rather than estimated
	MinMonthsForCV int
}

// DefaultConfig returns the standard 80/96 Pareto cut with 0.5/1.0 CV bands
func DefaultConfig() Config {
	return Config{
		ABCThresholdA:  0.80,
		ABCThresholdB:  0.96,
		XYZThresholdX:  0.5,
		XYZThresholdY:  1.0,
		MinMonthsForCV: 6,
	}
}

// Classifier computes matrix cells for a population of SKUs
type Classifier struct {
	config Config
}

// NewClassifier creates a classifier with the default thresholds
func NewClassifier() *Classifier {
	return &Classifier{config: DefaultConfig()}
}

// NewClassifierWithConfig creates a classifier with custom thresholds
func NewClassifierWithConfig(config Config) *Classifier {
	return &Classifier{config: config}
}

// Classify places every SKU in the matrix. ABC is relative, so the whole
// population must be classified in one call; results come back sorted by
// annual value descending.
func (c *Classifier) Classify(histories []DemandHistory) []Classification {
	results := make([]Classification, 0, len(histories))
	for _, h := range histories {
		cv, estimated := c.coefficientOfVariation(h)
		results = append(results, Classification{
			SKUCode:     h.SKUCode,
			AnnualValue: annualValue(h),
			CV:          cv,
			CVEstimated: estimated,
			XYZ:         c.classifyXYZ(cv),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AnnualValue.GreaterThan(results[j].AnnualValue)
	})

	c.assignABC(results)

	for i := range results {
		results[i].Cell = entities.ParseMatrixCell(
			results[i].ABC.String() + results[i].XYZ.String(),
		)
	}
	return results
}

// annualValue is average weekly shipments annualized at cost. SKUs with no
// recorded cost contribute zero value and fall through to class C.
func annualValue(h DemandHistory) decimal.Decimal {
	if !h.UnitCost.Valid {
		return decimal.Zero
	}
	return decimal.NewFromFloat(h.AvgWeeklyShipments * 52).Mul(h.UnitCost.Decimal)
}

// assignABC cuts the value-sorted population at the cumulative thresholds.
// With no value in the population at all there is nothing to rank, so
// everything lands in C.
func (c *Classifier) assignABC(sorted []Classification) {
	total := decimal.Zero
	for _, r := range sorted {
		total = total.Add(r.AnnualValue)
	}

	if !total.IsPositive() {
		for i := range sorted {
			sorted[i].ABC = ClassC
		}
		return
	}

	thresholdA := decimal.NewFromFloat(c.config.ABCThresholdA)
	thresholdB := decimal.NewFromFloat(c.config.ABCThresholdB)

	cumulative := decimal.Zero
	aCount := 0
	for i := range sorted {
		cumulative = cumulative.Add(sorted[i].AnnualValue)
		share := cumulative.Div(total)
		switch {
		case share.LessThanOrEqual(thresholdA):
			sorted[i].ABC = ClassA
			aCount++
		case share.LessThanOrEqual(thresholdB):
			sorted[i].ABC = ClassB
		default:
			sorted[i].ABC = ClassC
		}
	}

	// A single dominant SKU can overshoot the A threshold on its own row.
	// The top of the ranking is an A by definition.
	if aCount == 0 && len(sorted) > 0 {
		sorted[0].ABC = ClassA
	}
}

// coefficientOfVariation computes CV from monthly history, or estimates it
// from shipment volume when the history is too short. Low-volume SKUs tend
// toward erratic demand, so the estimate scales inversely with volume.
func (c *Classifier) coefficientOfVariation(h DemandHistory) (cv float64, estimated bool) {
	if len(h.MonthlyOutbound) >= c.config.MinMonthsForCV {
		values := make([]float64, 0, len(h.MonthlyOutbound))
		for _, qty := range h.MonthlyOutbound {
			values = append(values, qty)
		}
		mean := meanOf(values)
		if mean <= 0 {
			return math.Inf(1), false
		}
		return stddevOf(values, mean) / mean, false
	}

	switch {
	case h.AvgWeeklyShipments >= 10:
		return 0.6, true
	case h.AvgWeeklyShipments >= 1:
		return 0.8, true
	case h.AvgWeeklyShipments > 0:
		return 1.2, true
	default:
		return math.Inf(1), true
	}
}

func (c *Classifier) classifyXYZ(cv float64) XYZClass {
	switch {
	case cv < c.config.XYZThresholdX:
		return ClassX
	case cv < c.config.XYZThresholdY:
		return ClassY
	default:
		return ClassZ
	}
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddevOf is the sample standard deviation; a single observation has none
func stddevOf(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}
