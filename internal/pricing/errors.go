package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownUnit is returned for a unit outside KiB/MiB/GiB/TiB.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrUnreachablePricingRange is returned for a byte count above the
	// combined tier-1 and tier-2 capacity that does not exceed the tier-3
	// threshold. The schedule assigns no tier to that range.
	ErrUnreachablePricingRange = errors.New("unreachable pricing range")

	// ErrInvalidSize is returned when a size string cannot be parsed.
	ErrInvalidSize = errors.New("invalid size")
)

// UnitError reports an unrecognized unit identifier.
type UnitError struct {
	Unit string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s %q (want KiB, MiB, GiB or TiB)", ErrUnknownUnit, e.Unit)
}

func (e *UnitError) Unwrap() error { return ErrUnknownUnit }

// RangeError reports a byte count that falls in the gap between the tier-2
// ceiling and the tier-3 threshold.
type RangeError struct {
	Bytes     float64
	Floor     float64 // tier-1 + tier-2 capacity
	Threshold float64 // tier-3 minimum
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %.0f bytes is above the tier-2 ceiling of %.0f bytes but not above the tier-3 threshold of %.0f bytes",
		ErrUnreachablePricingRange, e.Bytes, e.Floor, e.Threshold)
}

func (e *RangeError) Unwrap() error { return ErrUnreachablePricingRange }

// SizeError reports a malformed size string.
type SizeError struct {
	Input string
	Err   error
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrInvalidSize, e.Input, e.Err)
}

func (e *SizeError) Unwrap() []error { return []error{ErrInvalidSize, e.Err} }
