package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and IAM policy",
	Long:  `Creates a sample .s3spectre.yaml config file and an IAM policy file for read-only access.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath := ".s3spectre.yaml"
	policyPath := "s3spectre-policy.json"

	if err := writeIfNotExists(configPath, sampleConfig, initFlags.force); err != nil {
		return err
	}
	if err := writeIfNotExists(policyPath, sampleIAMPolicy, initFlags.force); err != nil {
		return err
	}

	fmt.Printf("Created %s and %s\n", configPath, policyPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit .s3spectre.yaml to set profile, regions and exclusions")
	fmt.Println("  2. For AWS: apply s3spectre-policy.json to your IAM role/user")
	fmt.Println("  3. For GCP: ensure Artifact Registry Reader role on your service account")
	fmt.Println("  4. Run: s3spectre s3  OR  s3spectre ecr  OR  s3spectre gcp --project=PROJECT_ID")
	return nil
}

func writeIfNotExists(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return nil
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

const sampleConfig = `# s3spectre configuration
# See: https://github.com/ppiankov/s3spectre

# Cloud provider: aws or gcp
# provider: aws

# AWS profile (or set AWS_PROFILE env var)
# profile: default

# First entry is used for buckets that report no region
# regions:
#   - us-east-1

# GCP project and Artifact Registry locations (gcp command)
# project: my-project-id
# locations:
#   - us-central1

# Minimum monthly cost to report ($). Unpriced resources are always shown.
min_monthly_cost: 0

# Output format: text, json, or tsv
format: text

# Collection timeout
timeout: 10m

# Maximum concurrent CloudWatch and S3 requests
concurrency: 10

# Resources to exclude
# exclude:
#   resource_ids:
#     - terraform-state-bucket
#   tags:
#     - "env=sandbox"
`

const sampleIAMPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Sid": "S3SpectreReadOnly",
      "Effect": "Allow",
      "Action": [
        "s3:ListAllMyBuckets",
        "s3:GetBucketTagging",
        "cloudwatch:GetMetricData",
        "ecr:DescribeRepositories",
        "ecr:DescribeImages",
        "ecr:ListTagsForResource",
        "sts:GetCallerIdentity"
      ],
      "Resource": "*"
    }
  ]
}
`
