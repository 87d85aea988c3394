package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/s3spectre/internal/analyzer"
	"github.com/ppiankov/s3spectre/internal/artifactregistry"
	"github.com/ppiankov/s3spectre/internal/config"
	"github.com/spf13/cobra"
)

var gcpFlags struct {
	project        string
	locations      []string
	format         string
	outputFile     string
	minMonthlyCost float64
	noProgress     bool
	timeout        time.Duration
	excludeTags    []string
}

var gcpCmd = &cobra.Command{
	Use:   "gcp",
	Short: "Price GCP Artifact Registry repository storage",
	Long: `Read the stored size of every Artifact Registry repository in the given
locations of a GCP project and price it at the flat Artifact Registry rate.
Repositories of every format (Docker, Maven, npm, Python and others) are included.`,
	RunE: runGCP,
}

func init() {
	gcpCmd.Flags().StringVar(&gcpFlags.project, "project", "", "GCP project ID (required)")
	gcpCmd.Flags().StringSliceVar(&gcpFlags.locations, "locations", nil, "Comma-separated locations (e.g., us-central1,europe-west1)")
	gcpCmd.Flags().StringVar(&gcpFlags.format, "format", "text", "Output format: text, json, tsv")
	gcpCmd.Flags().StringVarP(&gcpFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	gcpCmd.Flags().Float64Var(&gcpFlags.minMonthlyCost, "min-monthly-cost", 0.10, "Minimum monthly cost to report ($)")
	gcpCmd.Flags().BoolVar(&gcpFlags.noProgress, "no-progress", false, "Disable progress output")
	gcpCmd.Flags().DurationVar(&gcpFlags.timeout, "timeout", 10*time.Minute, "Collection timeout")
	gcpCmd.Flags().StringSliceVar(&gcpFlags.excludeTags, "exclude-tags", nil, "Exclude repositories by label (Key=Value, comma-separated)")
}

func runGCP(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		slog.Warn("Failed to load config file", "error", err)
	}
	applyGCPConfigDefaults(cfg)

	if gcpFlags.project == "" {
		return fmt.Errorf("--project is required for GCP collection")
	}

	locations := gcpFlags.locations
	if len(locations) == 0 {
		locations = cfg.Locations
	}
	if len(locations) == 0 {
		locations = cfg.Regions
	}
	if len(locations) == 0 {
		return fmt.Errorf("--locations is required (e.g., us-central1,europe-west1)")
	}

	ctx := cmd.Context()
	if gcpFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gcpFlags.timeout)
		defer cancel()
	}

	slog.Info("Collecting Artifact Registry repositories", "project", gcpFlags.project, "locations", locations)

	client, err := artifactregistry.NewClient(ctx)
	if err != nil {
		return enhanceError("initialize GCP client", err)
	}
	defer func() { _ = client.Close() }()

	collector := artifactregistry.NewRepositoryCollector(client, gcpFlags.project, locations)
	result := collector.Collect(ctx, collectConfig(cfg, gcpFlags.excludeTags), progressPrinter(gcpFlags.noProgress))

	analysis := analyzer.Analyze(result, analyzer.AnalyzerConfig{
		MinMonthlyCost: gcpFlags.minMonthlyCost,
	})
	data := buildReportData(reportTarget{
		targetType: "artifact-registry",
		provider:   "gcp",
		project:    gcpFlags.project,
		regions:    locations,
		minCost:    gcpFlags.minMonthlyCost,
	}, analysis)

	reporter, err := selectReporter(gcpFlags.format, gcpFlags.outputFile)
	if err != nil {
		return err
	}
	return reporter.Generate(data)
}

func applyGCPConfigDefaults(cfg config.Config) {
	if gcpFlags.format == "text" && cfg.Format != "" {
		gcpFlags.format = cfg.Format
	}
	if gcpFlags.minMonthlyCost == 0.10 && cfg.MinMonthlyCost > 0 {
		gcpFlags.minMonthlyCost = cfg.MinMonthlyCost
	}
	if gcpFlags.project == "" && cfg.Project != "" {
		gcpFlags.project = cfg.Project
	}
}
