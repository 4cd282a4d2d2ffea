package domain

import "fmt"

// ConfigurationError is fatal and raised before any period is processed.
// TierOrdinal is 0 when the error concerns the settings as a whole rather
// than a single tier.
type ConfigurationError struct {
	TierOrdinal int
	Reason      string
}

func (e *ConfigurationError) Error() string {
	if e.TierOrdinal > 0 {
		return fmt.Sprintf("configuration error (tier %d): %s", e.TierOrdinal, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// InputDataError is fatal and raised at the offending period.
type InputDataError struct {
	PeriodIndex int
	Reason      string
}

func (e *InputDataError) Error() string {
	return fmt.Sprintf("input data error (period %d): %s", e.PeriodIndex, e.Reason)
}
