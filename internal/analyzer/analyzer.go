package analyzer

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/s3spectre/internal/inventory"
	"github.com/ppiankov/s3spectre/internal/pricing"
)

// Analyze filters items by minimum cost and computes aggregated summary statistics.
// Items without a price are always kept so that pricing failures stay visible.
func Analyze(result *inventory.Result, cfg AnalyzerConfig) *AnalysisResult {
	var filtered []inventory.Item
	for _, it := range result.Items {
		if !it.Priced() || it.MonthlyCost >= cfg.MinMonthlyCost {
			filtered = append(filtered, it)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].MonthlyCost > filtered[j].MonthlyCost
	})

	summary := Summary{
		TotalResourcesScanned: result.ResourcesScanned,
		TotalItems:            len(filtered),
		ByProvider:            make(map[string]int),
	}
	errs := append([]string(nil), result.Errors...)

	totalBytes := decimal.Zero
	totalCost := decimal.Zero
	s3Bytes := decimal.Zero
	s3Count := 0
	for _, it := range filtered {
		size := decimal.NewFromFloat(it.SizeBytes)
		totalBytes = totalBytes.Add(size)
		summary.ByProvider[string(it.Provider)]++
		if it.Provider == inventory.ProviderS3 {
			s3Bytes = s3Bytes.Add(size)
			s3Count++
		}
		if !it.Priced() {
			summary.Unpriced++
			continue
		}
		totalCost = totalCost.Add(decimal.NewFromFloat(it.MonthlyCost))
	}

	summary.TotalBytes = totalBytes.InexactFloat64()
	summary.TotalReadable = pricing.BytesToReadable(summary.TotalBytes)
	summary.TotalMonthlyCost = totalCost.Round(2).InexactFloat64()

	if s3Count > 0 {
		summary.S3AccountBytes = s3Bytes.InexactFloat64()
		price, err := pricing.PriceForTotalBytes(summary.S3AccountBytes)
		if err != nil {
			errs = append(errs, fmt.Sprintf("s3 account total: %v", err))
		} else {
			summary.S3AccountPrice = price
		}
	}

	return &AnalysisResult{
		Items:   filtered,
		Summary: summary,
		Errors:  errs,
	}
}
