package recommendation

import "fmt"

// BudgetError is returned for an unusable budget window. It is raised before
// any vectorization work happens.
type BudgetError struct {
	Min    float64
	Max    float64
	Reason string
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("invalid budget [%.2f, %.2f]: %s", e.Min, e.Max, e.Reason)
}
