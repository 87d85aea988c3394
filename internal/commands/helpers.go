package commands

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/s3spectre/internal/analyzer"
	"github.com/ppiankov/s3spectre/internal/config"
	"github.com/ppiankov/s3spectre/internal/inventory"
	"github.com/ppiankov/s3spectre/internal/pricing"
	"github.com/ppiankov/s3spectre/internal/report"
)

// enhanceError wraps an error with context and suggestions for common cloud issues.
func enhanceError(action string, err error) error {
	msg := err.Error()

	var hint string
	switch {
	case errors.Is(err, pricing.ErrUnreachablePricingRange):
		hint = "The tier schedule leaves this size without a price. Check the tier capacities against the tier-3 threshold"
	case errors.Is(err, pricing.ErrUnknownUnit):
		hint = "Units are case sensitive: use KiB, MiB, GiB or TiB"
	case errors.Is(err, pricing.ErrInvalidSize):
		hint = `Sizes look like "50TiB", "1.5 GiB" or a plain byte count`
	case strings.Contains(msg, "NoCredentialProviders"):
		hint = "Configure AWS credentials: set AWS_PROFILE, AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY, or run 'aws configure'"
	case strings.Contains(msg, "ExpiredToken"):
		hint = "AWS session token expired. Refresh credentials or run 'aws sso login'"
	case strings.Contains(msg, "AccessDenied") || strings.Contains(msg, "UnauthorizedAccess"):
		hint = "Insufficient permissions. Apply the IAM policy from 's3spectre init' to your role/user"
	case strings.Contains(msg, "RequestExpired"):
		hint = "Request expired. Check system clock synchronization"
	case strings.Contains(msg, "Throttling"):
		hint = "API rate limit hit. Retry with a lower --concurrency or increase timeout"
	case strings.Contains(msg, "GOOGLE_APPLICATION_CREDENTIALS"):
		hint = "Configure GCP credentials: set GOOGLE_APPLICATION_CREDENTIALS or run 'gcloud auth application-default login'"
	case strings.Contains(msg, "could not find default credentials"):
		hint = "Configure GCP credentials: run 'gcloud auth application-default login'"
	}

	if hint != "" {
		return fmt.Errorf("%s: %w\n  hint: %s", action, err, hint)
	}
	return fmt.Errorf("%s: %w", action, err)
}

// computeTargetHash generates a SHA256 hash for the target URI.
func computeTargetHash(provider string, regions []string, project string) string {
	input := fmt.Sprintf("provider:%s,regions:%s,project:%s", provider, strings.Join(regions, ","), project)
	h := sha256.Sum256([]byte(input))
	return fmt.Sprintf("sha256:%x", h)
}

func selectReporter(format, outputFile string) (report.Reporter, error) {
	w := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, fmt.Errorf("create output file: %w", err)
		}
		w = f
	}

	switch format {
	case "json":
		return &report.JSONReporter{Writer: w}, nil
	case "text":
		return &report.TextReporter{Writer: w}, nil
	case "tsv":
		return &report.TSVReporter{Writer: w}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text, json, or tsv)", format)
	}
}

func parseExcludeTags(configTags, flagTags []string) map[string]string {
	tags := make(map[string]string)
	for _, s := range append(append([]string(nil), configTags...), flagTags...) {
		if k, v, ok := strings.Cut(s, "="); ok {
			tags[k] = v
		} else {
			tags[s] = ""
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// collectConfig builds exclusion rules from the config file and --exclude-tags.
func collectConfig(cfg config.Config, flagTags []string) inventory.CollectConfig {
	excludeIDs := make(map[string]bool, len(cfg.Exclude.ResourceIDs))
	for _, id := range cfg.Exclude.ResourceIDs {
		excludeIDs[id] = true
	}
	return inventory.CollectConfig{
		Exclude: inventory.ExcludeConfig{
			ResourceIDs: excludeIDs,
			Tags:        parseExcludeTags(cfg.Exclude.Tags, flagTags),
		},
	}
}

func progressPrinter(noProgress bool) func(inventory.Progress) {
	if noProgress {
		return nil
	}
	return func(p inventory.Progress) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", p.Region, p.Message)
	}
}

// reportTarget describes what a run collected, for the report header.
type reportTarget struct {
	targetType string
	provider   string
	project    string
	regions    []string
	minCost    float64
}

func buildReportData(t reportTarget, analysis *analyzer.AnalysisResult) report.Data {
	return report.Data{
		Tool:      "s3spectre",
		Version:   version,
		Timestamp: time.Now().UTC(),
		Target: report.Target{
			Type:    t.targetType,
			URIHash: computeTargetHash(t.provider, t.regions, t.project),
		},
		Config: report.ReportConfig{
			Provider:       t.provider,
			Regions:        t.regions,
			MinMonthlyCost: t.minCost,
		},
		Items:   analysis.Items,
		Summary: analysis.Summary,
		Errors:  analysis.Errors,
	}
}
