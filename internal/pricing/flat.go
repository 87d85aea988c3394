package pricing

// flatRates maps provider and region to per-GB monthly storage cost in USD.
// ECR: $0.10/GB/month in all regions.
// GCP Artifact Registry: $0.10/GB/month (us/europe/asia single-region),
// varies by multi-region location.
var flatRates = map[string]map[string]float64{
	"ecr": {
		"default": 0.10,
	},
	"artifactregistry": {
		"us":              0.10,
		"europe":          0.10,
		"asia":            0.10,
		"us-central1":     0.10,
		"us-east1":        0.10,
		"us-east4":        0.10,
		"us-west1":        0.10,
		"us-west2":        0.10,
		"europe-west1":    0.10,
		"europe-west2":    0.10,
		"europe-west4":    0.10,
		"asia-east1":      0.10,
		"asia-southeast1": 0.10,
		"default":         0.10,
	},
}

// FlatMonthlyCost returns the monthly cost of a registry storing sizeBytes.
// Registries are not tiered, so every GiB costs the same.
func FlatMonthlyCost(provider, region string, sizeBytes int64) float64 {
	return float64(sizeBytes) / unitBytes[GiB] * FlatRate(provider, region)
}

// FlatRate returns the per-GiB monthly rate for a provider and region,
// falling back to the provider default and then to the ECR rate.
func FlatRate(provider, region string) float64 {
	rates, ok := flatRates[provider]
	if !ok {
		return flatRates["ecr"]["default"]
	}
	if r, ok := rates[region]; ok {
		return r
	}
	return rates["default"]
}
