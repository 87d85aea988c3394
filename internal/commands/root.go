package commands

import (
	"github.com/ppiankov/s3spectre/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	version string
	commit  string
	date    string
)

var rootCmd = &cobra.Command{
	Use:   "s3spectre",
	Short: "s3spectre: storage cost estimator for S3 and container registries",
	Long: `s3spectre prices cloud storage. It reads bucket sizes from CloudWatch and
prices them on the tiered S3 Standard schedule, and prices ECR and GCP Artifact
Registry repositories at their flat storage rates.

The price and convert commands work offline.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(verbose)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.AddCommand(s3Cmd)
	rootCmd.AddCommand(ecrCmd)
	rootCmd.AddCommand(gcpCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
