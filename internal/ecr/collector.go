package ecr

import (
	"context"
	"fmt"
	"time"

	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"

	"github.com/ppiankov/s3spectre/internal/inventory"
	"github.com/ppiankov/s3spectre/internal/pricing"
)

// RepositoryCollector prices the image storage of ECR repositories.
type RepositoryCollector struct {
	client ECRAPI
	region string
}

// NewRepositoryCollector creates a collector for the given ECR client and region.
func NewRepositoryCollector(client ECRAPI, region string) *RepositoryCollector {
	return &RepositoryCollector{
		client: client,
		region: region,
	}
}

// Collect implements inventory.Collector.
func (c *RepositoryCollector) Collect(ctx context.Context, cfg inventory.CollectConfig, progress func(inventory.Progress)) *inventory.Result {
	result := &inventory.Result{}

	repos, err := ListRepositories(ctx, c.client)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", c.region, err))
		return result
	}
	c.reportProgress(progress, fmt.Sprintf("Found %d repositories", len(repos)))

	for _, repo := range repos {
		repoName := deref(repo.RepositoryName)
		if cfg.Exclude.ResourceIDs[repoName] {
			continue
		}
		c.collectRepository(ctx, cfg, repo, result, progress)
	}

	return result
}

func (c *RepositoryCollector) collectRepository(ctx context.Context, cfg inventory.CollectConfig, repo ecrtypes.Repository, result *inventory.Result, progress func(inventory.Progress)) {
	repoName := deref(repo.RepositoryName)
	c.reportProgress(progress, fmt.Sprintf("Sizing %s", repoName))

	var tags map[string]string
	if arn := deref(repo.RepositoryArn); arn != "" {
		t, err := RepositoryTags(ctx, c.client, arn)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s/%s tags: %v", c.region, repoName, err))
		} else {
			tags = t
		}
	}
	if cfg.Exclude.Excluded(repoName, tags) {
		return
	}

	images, err := ListImages(ctx, c.client, repoName)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s/%s: %v", c.region, repoName, err))
		return
	}
	result.ResourcesScanned++

	var sizeBytes int64
	untagged := 0
	var lastPush time.Time
	for _, img := range images {
		sizeBytes += derefInt64(img.ImageSizeInBytes)
		if len(img.ImageTags) == 0 {
			untagged++
		}
		if img.ImagePushedAt != nil && img.ImagePushedAt.After(lastPush) {
			lastPush = *img.ImagePushedAt
		}
	}

	cost := pricing.FlatMonthlyCost(string(inventory.ProviderECR), c.region, sizeBytes)
	item := inventory.Item{
		Provider:     inventory.ProviderECR,
		Kind:         inventory.KindRepository,
		ID:           repoName,
		Name:         deref(repo.RepositoryUri),
		Region:       c.region,
		Tags:         tags,
		SizeBytes:    float64(sizeBytes),
		SizeReadable: pricing.BytesToReadable(float64(sizeBytes)),
		MonthlyCost:  cost,
		Price:        pricing.FormatUSD(cost),
		Metadata: map[string]any{
			"image_count":     len(images),
			"untagged_images": untagged,
		},
	}
	if !lastPush.IsZero() {
		item.Metadata["last_pushed"] = lastPush.Format(time.RFC3339)
	}
	result.Items = append(result.Items, item)
}

func (c *RepositoryCollector) reportProgress(progress func(inventory.Progress), msg string) {
	if progress != nil {
		progress(inventory.Progress{
			Region:    c.region,
			Collector: "ecr",
			Message:   msg,
			Timestamp: time.Now(),
		})
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
