package artifactregistry

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/s3spectre/internal/inventory"
	"github.com/ppiankov/s3spectre/internal/pricing"
)

// RepositoryCollector prices the storage of Artifact Registry repositories.
type RepositoryCollector struct {
	client    ARAPI
	project   string
	locations []string
}

// NewRepositoryCollector creates a collector over the given locations of a project.
func NewRepositoryCollector(client ARAPI, project string, locations []string) *RepositoryCollector {
	return &RepositoryCollector{
		client:    client,
		project:   project,
		locations: locations,
	}
}

// Collect implements inventory.Collector.
func (c *RepositoryCollector) Collect(ctx context.Context, cfg inventory.CollectConfig, progress func(inventory.Progress)) *inventory.Result {
	result := &inventory.Result{}

	for _, location := range c.locations {
		c.reportProgress(progress, location, fmt.Sprintf("Listing location %s", location))

		repos, err := c.client.ListRepositories(ctx, c.project, location)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", location, err))
			continue
		}
		c.reportProgress(progress, location, fmt.Sprintf("Found %d repositories", len(repos)))

		for _, repo := range repos {
			if cfg.Exclude.Excluded(repo.RepoID, repo.Labels) {
				continue
			}
			result.ResourcesScanned++
			result.Items = append(result.Items, repositoryItem(repo))
		}
	}

	return result
}

func repositoryItem(repo Repository) inventory.Item {
	cost := pricing.FlatMonthlyCost(string(inventory.ProviderArtifactRegistry), repo.Location, repo.SizeBytes)
	item := inventory.Item{
		Provider:     inventory.ProviderArtifactRegistry,
		Kind:         inventory.KindRepository,
		ID:           repo.RepoID,
		Name:         repo.Name,
		Region:       repo.Location,
		Tags:         repo.Labels,
		SizeBytes:    float64(repo.SizeBytes),
		SizeReadable: pricing.BytesToReadable(float64(repo.SizeBytes)),
		MonthlyCost:  cost,
		Price:        pricing.FormatUSD(cost),
		Metadata: map[string]any{
			"format": repo.Format,
		},
	}
	if !repo.CreateTime.IsZero() {
		item.Metadata["created"] = repo.CreateTime.Format(time.RFC3339)
	}
	return item
}

func (c *RepositoryCollector) reportProgress(progress func(inventory.Progress), location, msg string) {
	if progress != nil {
		progress(inventory.Progress{
			Region:    location,
			Collector: "artifactregistry",
			Message:   msg,
			Timestamp: time.Now(),
		})
	}
}
