package planning

import "fmt"

// InvalidHorizonError rejects a run whose horizon is not a positive number
// of weeks. This is a contract violation and fails the whole call; per-SKU
// faults never produce it.
type InvalidHorizonError struct {
	Horizon int
}

func (e *InvalidHorizonError) Error() string {
	return fmt.Sprintf("invalid projection horizon: %d weeks, must be positive", e.Horizon)
}
