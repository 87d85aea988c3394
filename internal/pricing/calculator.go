// Package pricing estimates monthly storage costs.
//
// S3 Standard storage is billed marginally over three tiers: the first 50 TiB
// at the tier-1 rate, the next 450 TiB at the tier-2 rate and usage past the
// 500 TiB threshold at the tier-3 rate. Container registries are billed at a
// flat per-GB rate (see FlatMonthlyCost).
package pricing

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

type schedule struct {
	tiers [tierCount]tierSpec
}

func (s schedule) capacity(t Tier) float64 {
	return s.tiers[t].sizeTiB * unitBytes[TiB]
}

func (s schedule) cost(bytes float64, t Tier) float64 {
	return bytes / unitBytes[GiB] * s.tiers[t].costPerGiB
}

func (s schedule) total(bytes float64) (float64, error) {
	cap1 := s.capacity(Tier1)
	cap2 := s.capacity(Tier2)
	threshold3 := s.capacity(Tier3)

	switch {
	case bytes <= cap1:
		return s.cost(bytes, Tier1), nil
	case bytes <= cap1+cap2:
		return s.cost(cap1, Tier1) + s.cost(bytes-cap1, Tier2), nil
	case bytes > threshold3:
		return s.cost(cap1, Tier1) + s.cost(cap2, Tier2) + s.cost(bytes-cap1-cap2, Tier3), nil
	default:
		return 0, &RangeError{Bytes: bytes, Floor: cap1 + cap2, Threshold: threshold3}
	}
}

// TotalCost returns the monthly USD cost of totalBytes of S3 Standard
// storage. It fails with ErrUnreachablePricingRange when totalBytes lies
// between the tier-2 ceiling and the tier-3 threshold.
func TotalCost(totalBytes float64) (float64, error) {
	return standard.total(totalBytes)
}

// PriceForTotalBytes is TotalCost formatted with FormatUSD.
func PriceForTotalBytes(totalBytes float64) (string, error) {
	p, err := TotalCost(totalBytes)
	if err != nil {
		return "", err
	}
	return FormatUSD(p), nil
}

// FormatUSD formats f as dollars with thousands separators and two
// decimals, e.g. "$1,177.60".
func FormatUSD(f float64) string {
	return "$" + humanize.FormatFloat("#,###.##", f)
}

// Validate checks the tier table against known price points. A failure
// means the table was edited or the provider prices changed.
func Validate() error {
	checks := []struct {
		what string
		got  string
		want string
	}{
		{"tier 1 capacity", fmt.Sprintf("%.1f", TierCapacityBytes(Tier1)), "54975581388800.0"},
		{"tier 2 capacity", fmt.Sprintf("%.1f", TierCapacityBytes(Tier2)), "494780232499200.0"},
		{"tier 1 max cost", FormatUSD(MaxTierCost(Tier1)), "$1,177.60"},
		{"tier 2 max cost", FormatUSD(MaxTierCost(Tier2)), "$10,137.60"},
	}
	for _, c := range checks {
		if c.got != c.want {
			return fmt.Errorf("%s = %s, want %s: price table error or prices have changed", c.what, c.got, c.want)
		}
	}
	return nil
}
