package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/ppiankov/s3spectre/internal/inventory"
)

const unpricedCell = "n/a"

// Generate writes human-readable terminal output.
func (r *TextReporter) Generate(data Data) error {
	tw := tabwriter.NewWriter(r.Writer, 0, 4, 2, ' ', 0)
	w := &errWriter{w: r.Writer}

	w.println("s3spectre: Storage Cost Report")
	w.println(strings.Repeat("=", 30))
	w.println("")

	if len(data.Items) == 0 {
		w.println("No storage resources matched.")
		w.println("")
		writeTextSummary(w, data)
		return w.err
	}

	w.printf("Priced %d resources holding %s for an estimated $%.2f per month\n\n",
		data.Summary.TotalItems, data.Summary.TotalReadable, data.Summary.TotalMonthlyCost)

	tw2 := &errWriter{w: tw}
	tw2.printf("PROVIDER\tRESOURCE\tREGION\tPROJECT\tENV\tOWNER\tSIZE\tCOST/MO\n")
	tw2.printf("--------\t--------\t------\t-------\t---\t-----\t----\t-------\n")

	for _, it := range data.Items {
		price := it.Price
		if !it.Priced() {
			price = unpricedCell
		}
		tw2.printf("%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.Provider, it.ID, it.Region,
			it.Tag("project"), it.Tag("env"), it.Tag("owner"),
			it.SizeReadable, price)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	w.println("")
	writeTextSummary(w, data)
	return w.err
}

func writeTextSummary(w *errWriter, data Data) {
	w.println("Summary")
	w.println("-------")
	w.printf("Resources scanned:      %d\n", data.Summary.TotalResourcesScanned)
	w.printf("Resources reported:     %d\n", data.Summary.TotalItems)
	w.printf("Total size:             %s\n", data.Summary.TotalReadable)
	w.printf("Estimated monthly cost: $%.2f\n", data.Summary.TotalMonthlyCost)
	if data.Summary.S3AccountPrice != "" {
		w.printf("S3 account-wide price:  %s\n", data.Summary.S3AccountPrice)
	}
	if data.Summary.Unpriced > 0 {
		w.printf("Unpriced resources:     %d\n", data.Summary.Unpriced)
	}

	if len(data.Summary.ByProvider) > 0 {
		parts := formatMapSorted(data.Summary.ByProvider)
		w.printf("By provider:            %s\n", strings.Join(parts, ", "))
	}

	if len(data.Errors) > 0 {
		w.printf("\nWarnings (%d):\n", len(data.Errors))
		for _, e := range data.Errors {
			w.printf("  - %s\n", e)
		}
	}
}

// summaryTagCells returns the report columns for an item's summary tags.
func summaryTagCells(it inventory.Item) []string {
	cells := make([]string, len(inventory.SummaryTags))
	for i, k := range inventory.SummaryTags {
		cells[i] = it.Tag(k)
	}
	return cells
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func formatMapSorted(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return parts
}
