package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/s3spectre/internal/analyzer"
	"github.com/ppiankov/s3spectre/internal/awsclient"
	"github.com/ppiankov/s3spectre/internal/config"
	"github.com/ppiankov/s3spectre/internal/s3"
	"github.com/spf13/cobra"
)

const defaultConcurrency = 10

var s3Flags struct {
	region         string
	profile        string
	format         string
	outputFile     string
	minMonthlyCost float64
	concurrency    int
	noProgress     bool
	timeout        time.Duration
	excludeTags    []string
}

var s3Cmd = &cobra.Command{
	Use:   "s3",
	Short: "Price S3 buckets on the Standard storage tiers",
	Long: `List every S3 bucket in an AWS account, read its Standard storage size from
CloudWatch and price it on the S3 Standard tiers (first 50 TiB, next 450 TiB,
over 500 TiB). The summary also prices all reported buckets together, since
tiers apply to the account's combined usage.

Bucket sizes come from the daily BucketSizeBytes metric, which lags by about
two days. Buckets without a datapoint are reported as empty.`,
	RunE: runS3,
}

func init() {
	s3Cmd.Flags().StringVar(&s3Flags.region, "region", "", "AWS region for buckets that report none (default: from AWS config)")
	s3Cmd.Flags().StringVar(&s3Flags.profile, "profile", "", "AWS profile name")
	s3Cmd.Flags().StringVar(&s3Flags.format, "format", "text", "Output format: text, json, tsv")
	s3Cmd.Flags().StringVarP(&s3Flags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	s3Cmd.Flags().Float64Var(&s3Flags.minMonthlyCost, "min-monthly-cost", 0, "Minimum monthly cost to report ($)")
	s3Cmd.Flags().IntVar(&s3Flags.concurrency, "concurrency", defaultConcurrency, "Maximum concurrent API requests")
	s3Cmd.Flags().BoolVar(&s3Flags.noProgress, "no-progress", false, "Disable progress output")
	s3Cmd.Flags().DurationVar(&s3Flags.timeout, "timeout", 10*time.Minute, "Collection timeout")
	s3Cmd.Flags().StringSliceVar(&s3Flags.excludeTags, "exclude-tags", nil, "Exclude buckets by tag (Key=Value, comma-separated)")
}

func runS3(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(".")
	if err != nil {
		slog.Warn("Failed to load config file", "error", err)
	}
	applyS3ConfigDefaults(cfg)

	if s3Flags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s3Flags.timeout)
		defer cancel()
	}

	profile := s3Flags.profile
	if profile == "" {
		profile = cfg.Profile
	}
	region := s3Flags.region
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
	slog.Info("Collecting S3 buckets", "region", resolvedRegion, "concurrency", s3Flags.concurrency)

	collector := s3.NewBucketCollector(
		s3.NewS3Client(client.Config()),
		s3.NewCloudWatchFactory(client.Config()),
		resolvedRegion,
		s3Flags.concurrency,
	)
	result := collector.Collect(ctx, collectConfig(cfg, s3Flags.excludeTags), progressPrinter(s3Flags.noProgress))

	analysis := analyzer.Analyze(result, analyzer.AnalyzerConfig{
		MinMonthlyCost: s3Flags.minMonthlyCost,
	})
	data := buildReportData(reportTarget{
		targetType: "s3",
		provider:   "aws",
		project:    profile,
		regions:    []string{resolvedRegion},
		minCost:    s3Flags.minMonthlyCost,
	}, analysis)

	reporter, err := selectReporter(s3Flags.format, s3Flags.outputFile)
	if err != nil {
		return err
	}
	return reporter.Generate(data)
}

func applyS3ConfigDefaults(cfg config.Config) {
	if s3Flags.format == "text" && cfg.Format != "" {
		s3Flags.format = cfg.Format
	}
	if s3Flags.minMonthlyCost == 0 && cfg.MinMonthlyCost > 0 {
		s3Flags.minMonthlyCost = cfg.MinMonthlyCost
	}
	if s3Flags.concurrency == defaultConcurrency && cfg.Concurrency > 0 {
		s3Flags.concurrency = cfg.Concurrency
	}
	if s3Flags.timeout == 10*time.Minute && cfg.TimeoutDuration() > 0 {
		s3Flags.timeout = cfg.TimeoutDuration()
	}
}
