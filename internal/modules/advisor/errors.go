package advisor

import "errors"

// Configuration errors are fatal: the caller gets a typed error instead of a
// silently empty recommendation. Partial price data is never fatal; it is
// degraded per fund inside the discount calculator.
var (
	// ErrNoTargetModel - the portfolio has no target-allocation model at all.
	ErrNoTargetModel = errors.New("no target model available")
	// ErrNoWeights - neither scoring weight is configured.
	ErrNoWeights = errors.New("no scoring weights configured")
	// ErrInvalidConfig - a configuration field is out of range.
	ErrInvalidConfig = errors.New("invalid advisor configuration")
)
