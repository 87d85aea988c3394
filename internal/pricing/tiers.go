package pricing

// Tier identifies an S3 Standard storage pricing bracket. Tiers are
// consumed in declaration order.
type Tier int

const (
	Tier1 Tier = iota
	Tier2
	Tier3

	tierCount = iota
)

// tierSpec is one row of the pricing table. For the last tier sizeTiB is a
// minimum usage threshold rather than a capacity.
type tierSpec struct {
	name       string
	sizeTiB    float64
	costPerGiB float64 // USD per GiB-month
}

// S3 Standard, first 50 TB / next 450 TB / over 500 TB.
var standard = schedule{
	tiers: [tierCount]tierSpec{
		Tier1: {name: "standard_tier_1", sizeTiB: 50, costPerGiB: 0.023},
		Tier2: {name: "standard_tier_2", sizeTiB: 450, costPerGiB: 0.022},
		Tier3: {name: "standard_tier_3", sizeTiB: 500, costPerGiB: 0.021},
	},
}

// Tiers returns all tiers in consumption order.
func Tiers() []Tier {
	return []Tier{Tier1, Tier2, Tier3}
}

// String returns the tier name, e.g. "standard_tier_1".
func (t Tier) String() string {
	return standard.tiers[t].name
}

// UnitCost returns the tier's USD cost per GiB-month.
func (t Tier) UnitCost() float64 {
	return standard.tiers[t].costPerGiB
}

// CapacityTiB returns the tier size in TiB as listed in the price table.
func (t Tier) CapacityTiB() float64 {
	return standard.tiers[t].sizeTiB
}

// TierCapacityBytes returns the tier size in bytes. For Tier3 this is the
// minimum total usage at which the tier-3 rate applies.
func TierCapacityBytes(t Tier) float64 {
	return standard.capacity(t)
}

// CostForTier returns the monthly USD cost of storing bytes at t's rate.
func CostForTier(bytes float64, t Tier) float64 {
	return standard.cost(bytes, t)
}

// MaxTierCost returns the cost of a fully consumed tier.
func MaxTierCost(t Tier) float64 {
	return standard.cost(standard.capacity(t), t)
}
