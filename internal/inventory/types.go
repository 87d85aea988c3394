package inventory

import "time"

// Provider identifies the storage service an item was collected from.
type Provider string

const (
	ProviderS3               Provider = "s3"
	ProviderECR              Provider = "ecr"
	ProviderArtifactRegistry Provider = "artifactregistry"
)

// Kind identifies the storage resource being priced.
type Kind string

const (
	KindBucket     Kind = "bucket"
	KindRepository Kind = "repository"
)

// UnassignedTag is reported for a summary tag the resource does not carry.
const UnassignedTag = "-"

// SummaryTags are the tags surfaced as report columns.
var SummaryTags = []string{"project", "env", "owner"}

// Item is a single priced storage resource.
type Item struct {
	Provider     Provider          `json:"provider"`
	Kind         Kind              `json:"kind"`
	ID           string            `json:"id"`
	Name         string            `json:"name,omitempty"`
	Region       string            `json:"region"`
	Tags         map[string]string `json:"tags,omitempty"`
	SizeBytes    float64           `json:"size_bytes"`
	SizeReadable string            `json:"size_readable"`
	MonthlyCost  float64           `json:"monthly_cost"`
	// Price is the formatted monthly cost. It is empty when the size could not be priced.
	Price    string         `json:"price"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Priced reports whether the item carries a price.
func (i Item) Priced() bool {
	return i.Price != ""
}

// Tag returns the value of tag key, or UnassignedTag.
func (i Item) Tag(key string) string {
	if v, ok := i.Tags[key]; ok {
		return v
	}
	return UnassignedTag
}

// Result holds all items from collecting a set of resources.
type Result struct {
	Items            []Item   `json:"items"`
	Errors           []string `json:"errors,omitempty"`
	ResourcesScanned int      `json:"resources_scanned"`
}

// CollectConfig holds parameters that control collection.
type CollectConfig struct {
	Exclude ExcludeConfig
}

// ExcludeConfig holds resource exclusion rules.
type ExcludeConfig struct {
	ResourceIDs map[string]bool
	Tags        map[string]string
}

// Excluded reports whether a resource with the given ID and tags should be
// skipped. A tag rule with an empty value matches any value for that key.
func (e ExcludeConfig) Excluded(id string, tags map[string]string) bool {
	if e.ResourceIDs[id] {
		return true
	}
	for k, want := range e.Tags {
		got, ok := tags[k]
		if ok && (want == "" || want == got) {
			return true
		}
	}
	return false
}

// Progress reports collection progress to callers.
type Progress struct {
	Region    string
	Collector string
	Message   string
	Timestamp time.Time
}
