package commands

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ppiankov/s3spectre/internal/pricing"
)

var convertCmd = &cobra.Command{
	Use:   "convert <quantity> <from-unit> [to-unit]",
	Short: "Convert between bytes and binary size units",
	Long: `Convert a quantity in KiB, MiB, GiB or TiB to bytes, or to another unit.

Examples:
  s3spectre convert 50 TiB
  s3spectre convert 1536 MiB GiB`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return enhanceError("parse quantity", &pricing.SizeError{Input: args[0], Err: err})
	}
	from, err := pricing.ParseUnit(args[1])
	if err != nil {
		return enhanceError("convert", err)
	}
	bytes, err := pricing.QuantityToBytes(x, from)
	if err != nil {
		return enhanceError("convert", err)
	}

	out := cmd.OutOrStdout()
	if len(args) == 2 {
		_, err = fmt.Fprintf(out, "%s %s = %s bytes (%s)\n",
			args[0], from, humanize.Commaf(bytes), pricing.BytesToReadable(bytes))
		return err
	}

	to, err := pricing.ParseUnit(args[2])
	if err != nil {
		return enhanceError("convert", err)
	}
	y, err := pricing.BytesToUnit(bytes, to)
	if err != nil {
		return enhanceError("convert", err)
	}
	_, err = fmt.Fprintf(out, "%s %s = %s %s\n", args[0], from, strconv.FormatFloat(y, 'f', -1, 64), to)
	return err
}
