package entities

import (
	"fmt"
	"strings"
)

// MatrixCell represents a cell of the ABC/XYZ classification grid.
// The grid is closed: nine cells plus CellUnknown for SKUs that have not
// been classified yet.
type MatrixCell int

const (
	CellUnknown MatrixCell = iota
	CellAX
	CellAY
	CellAZ
	CellBX
	CellBY
	CellBZ
	CellCX
	CellCY
	CellCZ
)

// AllMatrixCells lists the nine classified cells in grid order
var AllMatrixCells = []MatrixCell{
	CellAX, CellAY, CellAZ,
	CellBX, CellBY, CellBZ,
	CellCX, CellCY, CellCZ,
}

// String method for MatrixCell enum
func (c MatrixCell) String() string {
	switch c {
	case CellAX:
		return "AX"
	case CellAY:
		return "AY"
	case CellAZ:
		return "AZ"
	case CellBX:
		return "BX"
	case CellBY:
		return "BY"
	case CellBZ:
		return "BZ"
	case CellCX:
		return "CX"
	case CellCY:
		return "CY"
	case CellCZ:
		return "CZ"
	default:
		return "Unknown"
	}
}

// MarshalText makes matrix cells serialize as their grid label
func (c MatrixCell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a grid label into a MatrixCell
func (c *MatrixCell) UnmarshalText(text []byte) error {
	*c = ParseMatrixCell(string(text))
	return nil
}

// ParseMatrixCell maps a two-letter grid label to its cell.
// Anything outside the nine-cell grid maps to CellUnknown.
func ParseMatrixCell(s string) MatrixCell {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AX":
		return CellAX
	case "AY":
		return CellAY
	case "AZ":
		return CellAZ
	case "BX":
		return CellBX
	case "BY":
		return CellBY
	case "BZ":
		return CellBZ
	case "CX":
		return CellCX
	case "CY":
		return CellCY
	case "CZ":
		return CellCZ
	default:
		return CellUnknown
	}
}

// ReviewFrequency represents how often a cell's SKUs are reviewed
type ReviewFrequency int

const (
	ReviewWeekly ReviewFrequency = iota
	ReviewBiweekly
	ReviewMonthly
)

// String method for ReviewFrequency enum
func (f ReviewFrequency) String() string {
	switch f {
	case ReviewWeekly:
		return "weekly"
	case ReviewBiweekly:
		return "biweekly"
	case ReviewMonthly:
		return "monthly"
	default:
		return "Unknown"
	}
}

// MarshalText makes review frequencies serialize as their label
func (f ReviewFrequency) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ParseReviewFrequency maps a label to its ReviewFrequency, defaulting to monthly
func ParseReviewFrequency(s string) ReviewFrequency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly":
		return ReviewWeekly
	case "biweekly":
		return ReviewBiweekly
	default:
		return ReviewMonthly
	}
}

// ReplenishmentMethod represents how orders for a cell are placed
type ReplenishmentMethod int

const (
	MethodAuto ReplenishmentMethod = iota
	MethodManual
	MethodOnDemand
)

// String method for ReplenishmentMethod enum
func (m ReplenishmentMethod) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodManual:
		return "manual"
	case MethodOnDemand:
		return "on_demand"
	default:
		return "Unknown"
	}
}

// MarshalText makes replenishment methods serialize as their label
func (m ReplenishmentMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseReplenishmentMethod maps a label to its method, defaulting to manual.
// "manual_review" is the label the WMS policy export uses for manual.
func ParseReplenishmentMethod(s string) ReplenishmentMethod {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return MethodAuto
	case "on_demand":
		return MethodOnDemand
	default:
		return MethodManual
	}
}

// RequiresReview reports whether suggestions under this method need a human
// sign-off before ordering
func (m ReplenishmentMethod) RequiresReview() bool {
	return m != MethodAuto
}

// ClassificationPolicy represents the effective replenishment policy for one
// matrix cell. At most one active policy exists per cell within a run.
type ClassificationPolicy struct {
	MatrixCell            MatrixCell          `json:"matrixCell"`
	ServiceLevel          float64             `json:"serviceLevel"`
	TargetWOH             float64             `json:"targetWoh"`
	ReviewFrequency       ReviewFrequency     `json:"reviewFrequency"`
	Method                ReplenishmentMethod `json:"replenishmentMethod"`
	SafetyStockMultiplier float64             `json:"safetyStockMultiplier"`
	Notes                 string              `json:"notes,omitempty"`
}

// NewClassificationPolicy creates a validated policy
func NewClassificationPolicy(
	cell MatrixCell,
	serviceLevel, targetWOH float64,
	frequency ReviewFrequency,
	method ReplenishmentMethod,
	safetyMultiplier float64,
	notes string,
) (*ClassificationPolicy, error) {
	if serviceLevel <= 0 || serviceLevel > 1 {
		return nil, fmt.Errorf("service level must be in (0,1], got %g", serviceLevel)
	}
	if targetWOH <= 0 {
		return nil, fmt.Errorf("target weeks on hand must be positive, got %g", targetWOH)
	}
	if safetyMultiplier <= 0 {
		return nil, fmt.Errorf("safety stock multiplier must be positive, got %g", safetyMultiplier)
	}

	return &ClassificationPolicy{
		MatrixCell:            cell,
		ServiceLevel:          serviceLevel,
		TargetWOH:             targetWOH,
		ReviewFrequency:       frequency,
		Method:                method,
		SafetyStockMultiplier: safetyMultiplier,
		Notes:                 notes,
	}, nil
}

// DefaultPolicy returns the conservative fallback applied when a SKU's cell
// has no registered policy: manual ordering with a minimal two-week floor.
func DefaultPolicy(cell MatrixCell) ClassificationPolicy {
	return ClassificationPolicy{
		MatrixCell:            cell,
		ServiceLevel:          0.85,
		TargetWOH:             2,
		ReviewFrequency:       ReviewMonthly,
		Method:                MethodManual,
		SafetyStockMultiplier: 1.0,
		Notes:                 "fallback policy for unregistered cell",
	}
}

// DefaultPolicies returns the recommended nine-grid policy set used to seed
// a fresh policy store.
func DefaultPolicies() []ClassificationPolicy {
	return []ClassificationPolicy{
		{MatrixCell: CellAX, ServiceLevel: 0.97, TargetWOH: 4, ReviewFrequency: ReviewWeekly, Method: MethodAuto, SafetyStockMultiplier: 1.0, Notes: "High value + stable: tight control, auto replenish"},
		{MatrixCell: CellAY, ServiceLevel: 0.95, TargetWOH: 5, ReviewFrequency: ReviewWeekly, Method: MethodAuto, SafetyStockMultiplier: 1.0, Notes: "High value + moderate: buffer slightly more"},
		{MatrixCell: CellAZ, ServiceLevel: 0.93, TargetWOH: 6, ReviewFrequency: ReviewWeekly, Method: MethodManual, SafetyStockMultiplier: 1.0, Notes: "High value + erratic: human review before ordering"},
		{MatrixCell: CellBX, ServiceLevel: 0.95, TargetWOH: 5, ReviewFrequency: ReviewBiweekly, Method: MethodAuto, SafetyStockMultiplier: 1.0, Notes: "Medium value + stable: standard auto"},
		{MatrixCell: CellBY, ServiceLevel: 0.93, TargetWOH: 6, ReviewFrequency: ReviewBiweekly, Method: MethodAuto, SafetyStockMultiplier: 1.0, Notes: "Medium value + moderate: moderate buffer"},
		{MatrixCell: CellBZ, ServiceLevel: 0.90, TargetWOH: 8, ReviewFrequency: ReviewBiweekly, Method: MethodManual, SafetyStockMultiplier: 1.0, Notes: "Medium value + erratic: review before ordering"},
		{MatrixCell: CellCX, ServiceLevel: 0.92, TargetWOH: 6, ReviewFrequency: ReviewMonthly, Method: MethodAuto, SafetyStockMultiplier: 1.0, Notes: "Low value + stable: less frequent review"},
		{MatrixCell: CellCY, ServiceLevel: 0.90, TargetWOH: 8, ReviewFrequency: ReviewMonthly, Method: MethodAuto, SafetyStockMultiplier: 1.0, Notes: "Low value + moderate: bulk order"},
		{MatrixCell: CellCZ, ServiceLevel: 0.85, TargetWOH: 10, ReviewFrequency: ReviewMonthly, Method: MethodOnDemand, SafetyStockMultiplier: 1.0, Notes: "Low value + erratic: order only when needed"},
	}
}
