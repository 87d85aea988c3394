package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/s3spectre/internal/analyzer"
	"github.com/ppiankov/s3spectre/internal/awsclient"
	"github.com/ppiankov/s3spectre/internal/config"
	"github.com/ppiankov/s3spectre/internal/ecr"
	"github.com/spf13/cobra"
)

var ecrFlags struct {
	region         string
	profile        string
	format         string
	outputFile     string
	minMonthlyCost float64
	noProgress     bool
	timeout        time.Duration
	excludeTags    []string
}

var ecrCmd = &cobra.Command{
	Use:   "ecr",
	Short: "Price ECR repository storage",
	Long: `Sum the image sizes of every ECR repository in a region and price them at the
flat ECR storage rate ($0.10 per GB-month).`,
	RunE: runECR,
}

func init() {
	ecrCmd.Flags().StringVar(&ecrFlags.region, "region", "", "AWS region (default: from AWS config)")
	ecrCmd.Flags().StringVar(&ecrFlags.profile, "profile", "", "AWS profile name")
	ecrCmd.Flags().StringVar(&ecrFlags.format, "format", "text", "Output format: text, json, tsv")
	ecrCmd.Flags().StringVarP(&ecrFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	ecrCmd.Flags().Float64Var(&ecrFlags.minMonthlyCost, "min-monthly-cost", 0.10, "Minimum monthly cost to report ($)")
	ecrCmd.Flags().BoolVar(&ecrFlags.noProgress, "no-progress", false, "Disable progress output")
	ecrCmd.Flags().DurationVar(&ecrFlags.timeout, "timeout", 10*time.Minute, "Collection timeout")
	ecrCmd.Flags().StringSliceVar(&ecrFlags.excludeTags, "exclude-tags", nil, "Exclude repositories by tag (Key=Value, comma-separated)")
}

func runECR(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ecrFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ecrFlags.timeout)
		defer cancel()
	}

	cfg, err := config.Load(".")
	if err != nil {
		slog.Warn("Failed to load config file", "error", err)
	}
	applyECRConfigDefaults(cfg)

	profile := ecrFlags.profile
	if profile == "" {
		profile = cfg.Profile
	}
	region := ecrFlags.region
	if region == "" && len(cfg.Regions) > 0 {
		region = cfg.Regions[0]
	}

	client, err := awsclient.NewClient(ctx, profile, region)
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}
	resolvedRegion := client.Region()
	if resolvedRegion == "" {
		return fmt.Errorf("no AWS region configured; use --region or set AWS_REGION")
	}
	slog.Info("Collecting ECR repositories", "region", resolvedRegion)

	collector := ecr.NewRepositoryCollector(ecr.NewECRClient(client.Config()), resolvedRegion)
	result := collector.Collect(ctx, collectConfig(cfg, ecrFlags.excludeTags), progressPrinter(ecrFlags.noProgress))

	analysis := analyzer.Analyze(result, analyzer.AnalyzerConfig{
		MinMonthlyCost: ecrFlags.minMonthlyCost,
	})
	data := buildReportData(reportTarget{
		targetType: "ecr",
		provider:   "aws",
		project:    profile,
		regions:    []string{resolvedRegion},
		minCost:    ecrFlags.minMonthlyCost,
	}, analysis)

	reporter, err := selectReporter(ecrFlags.format, ecrFlags.outputFile)
	if err != nil {
		return err
	}
	return reporter.Generate(data)
}

func applyECRConfigDefaults(cfg config.Config) {
	if ecrFlags.format == "text" && cfg.Format != "" {
		ecrFlags.format = cfg.Format
	}
	if ecrFlags.minMonthlyCost == 0.10 && cfg.MinMonthlyCost > 0 {
		ecrFlags.minMonthlyCost = cfg.MinMonthlyCost
	}
}
