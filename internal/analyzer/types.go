package analyzer

import (
	"github.com/ppiankov/s3spectre/internal/inventory"
)

// Summary holds aggregated statistics about collected storage.
type Summary struct {
	TotalResourcesScanned int            `json:"total_resources_scanned"`
	TotalItems            int            `json:"total_items"`
	TotalBytes            float64        `json:"total_bytes"`
	TotalReadable         string         `json:"total_readable"`
	TotalMonthlyCost      float64        `json:"total_monthly_cost"`
	Unpriced              int            `json:"unpriced"`
	ByProvider            map[string]int `json:"by_provider"`
	// S3AccountBytes and S3AccountPrice price every reported bucket as one
	// account, since S3 tiers apply to the account's combined storage.
	S3AccountBytes float64 `json:"s3_account_bytes,omitempty"`
	S3AccountPrice string  `json:"s3_account_price,omitempty"`
}

// AnalysisResult holds filtered items and computed summary.
type AnalysisResult struct {
	Items   []inventory.Item `json:"items"`
	Summary Summary          `json:"summary"`
	Errors  []string         `json:"errors,omitempty"`
}

// AnalyzerConfig controls analysis behavior.
type AnalyzerConfig struct {
	MinMonthlyCost float64
}
