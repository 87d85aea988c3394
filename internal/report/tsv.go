package report

import (
	"encoding/csv"
	"strconv"
)

var tsvHeader = []string{
	"name",
	"project tag",
	"env tag",
	"owner tag",
	"size in bytes",
	"readable size",
	"estimated monthly cost",
}

// Generate writes a header row followed by one row per item.
func (r *TSVReporter) Generate(data Data) error {
	w := csv.NewWriter(r.Writer)
	w.Comma = '\t'

	if err := w.Write(tsvHeader); err != nil {
		return err
	}
	for _, it := range data.Items {
		price := it.Price
		if !it.Priced() {
			price = unpricedCell
		}
		row := append([]string{it.ID}, summaryTagCells(it)...)
		row = append(row,
			strconv.FormatFloat(it.SizeBytes, 'f', 0, 64),
			it.SizeReadable,
			price,
		)
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
