package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ppiankov/s3spectre/internal/pricing"
)

var priceFlags struct {
	tiers bool
	total bool
}

var priceCmd = &cobra.Command{
	Use:   "price [size]...",
	Short: "Price storage sizes on the S3 Standard tiers",
	Long: `Compute the monthly S3 Standard storage price of one or more sizes without
calling AWS. Sizes are a number with an optional binary unit: "50TiB",
"1.5 GiB", "512MiB" or a plain byte count.

Example:
  s3spectre price 50TiB 120TiB 2199023255552`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 && !priceFlags.tiers {
			return errors.New("requires at least one size (or --tiers)")
		}
		return nil
	},
	RunE: runPrice,
}

func init() {
	priceCmd.Flags().BoolVar(&priceFlags.tiers, "tiers", false, "Print the tier table")
	priceCmd.Flags().BoolVar(&priceFlags.total, "total", false, "Also price the sum of all sizes as one account")
}

func runPrice(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if priceFlags.tiers {
		if err := pricing.Validate(); err != nil {
			slog.Warn("Tier table failed self-check", "error", err)
		}
		if err := writeTierTable(out); err != nil {
			return err
		}
		if len(args) == 0 {
			return nil
		}
		fmt.Fprintln(out)
	}

	sizes := make([]float64, len(args))
	for i, arg := range args {
		b, err := pricing.ParseSize(arg)
		if err != nil {
			return enhanceError(fmt.Sprintf("parse size %q", arg), err)
		}
		sizes[i] = b
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	w := &lineWriter{w: tw}
	w.printf("SIZE\tBYTES\tREADABLE\tPRICE/MO\n")

	var sum float64
	for i, b := range sizes {
		price, err := pricing.PriceForTotalBytes(b)
		if err != nil {
			_ = tw.Flush()
			return enhanceError(fmt.Sprintf("price %s", args[i]), err)
		}
		w.printf("%s\t%s\t%s\t%s\n", args[i], humanize.Commaf(b), pricing.BytesToReadable(b), price)
		sum += b
	}

	if priceFlags.total && len(sizes) > 1 {
		price, err := pricing.PriceForTotalBytes(sum)
		if err != nil {
			_ = tw.Flush()
			return enhanceError("price total", err)
		}
		w.printf("total\t%s\t%s\t%s\n", humanize.Commaf(sum), pricing.BytesToReadable(sum), price)
	}

	if w.err != nil {
		return w.err
	}
	return tw.Flush()
}

func writeTierTable(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	w := &lineWriter{w: tw}
	w.printf("TIER\tCAPACITY\tBYTES\t$/GiB-MONTH\tFULL TIER COST\n")

	last := len(pricing.Tiers()) - 1
	for i, t := range pricing.Tiers() {
		capacity := fmt.Sprintf("%g TiB", t.CapacityTiB())
		maxCost := pricing.FormatUSD(pricing.MaxTierCost(t))
		if i == last {
			capacity = "over " + capacity
			maxCost = "-"
		}
		w.printf("%s\t%s\t%s\t%g\t%s\n",
			t, capacity, humanize.Commaf(pricing.TierCapacityBytes(t)), t.UnitCost(), maxCost)
	}

	if w.err != nil {
		return w.err
	}
	return tw.Flush()
}

// lineWriter wraps an io.Writer and captures the first error.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) printf(format string, args ...any) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format, args...)
}
