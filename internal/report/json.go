package report

import (
	"encoding/json"

	"github.com/ppiankov/s3spectre/internal/inventory"
)

const schemaVersion = "spectre/v1"

type jsonEnvelope struct {
	Schema string `json:"$schema"`
	Data
}

// Generate writes the report as a spectre/v1 JSON document.
func (r *JSONReporter) Generate(data Data) error {
	if data.Items == nil {
		data.Items = []inventory.Item{}
	}
	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonEnvelope{Schema: schemaVersion, Data: data})
}
