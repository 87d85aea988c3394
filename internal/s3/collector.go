package s3

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/s3spectre/internal/inventory"
	"github.com/ppiankov/s3spectre/internal/pricing"
)

// BucketCollector prices every S3 bucket in an account.
type BucketCollector struct {
	client      S3API
	cloudwatch  CloudWatchFactory
	region      string // used for buckets that report no region
	concurrency int
	now         time.Time // injectable for testing
}

// NewBucketCollector creates a collector for the given clients.
func NewBucketCollector(client S3API, cloudwatch CloudWatchFactory, region string, concurrency int) *BucketCollector {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BucketCollector{
		client:      client,
		cloudwatch:  cloudwatch,
		region:      region,
		concurrency: concurrency,
		now:         time.Now(),
	}
}

// Collect implements inventory.Collector.
func (c *BucketCollector) Collect(ctx context.Context, cfg inventory.CollectConfig, progress func(inventory.Progress)) *inventory.Result {
	result := &inventory.Result{}

	buckets, err := ListBuckets(ctx, c.client)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", c.region, err))
		return result
	}
	c.reportProgress(progress, c.region, fmt.Sprintf("Found %d buckets", len(buckets)))

	var candidates []Bucket
	for _, b := range buckets {
		if !cfg.Exclude.ResourceIDs[b.Name] {
			candidates = append(candidates, b)
		}
	}

	tags := c.fetchTags(ctx, candidates, result)

	byRegion := make(map[string][]string)
	var kept []Bucket
	for _, b := range candidates {
		if cfg.Exclude.Excluded(b.Name, tags[b.Name]) {
			continue
		}
		region := c.bucketRegion(b)
		byRegion[region] = append(byRegion[region], b.Name)
		kept = append(kept, b)
	}

	sizes := make(map[string]float64, len(kept))
	for _, region := range sortedKeys(byRegion) {
		names := byRegion[region]
		c.reportProgress(progress, region, fmt.Sprintf("Reading sizes of %d buckets", len(names)))

		fetcher := NewSizeFetcher(c.cloudwatch(region), c.concurrency)
		fetcher.now = c.now
		got, err := fetcher.BucketSizes(ctx, names)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: bucket sizes: %v", region, err))
			continue
		}
		for name, v := range got {
			sizes[name] = v
		}
	}

	for _, b := range kept {
		size, ok := sizes[b.Name]
		if !ok {
			continue
		}
		result.ResourcesScanned++
		item, err := bucketItem(b, c.bucketRegion(b), tags[b.Name], size)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", b.Name, err))
		}
		result.Items = append(result.Items, item)
	}

	return result
}

// fetchTags reads bucket tags concurrently. A bucket whose tags cannot be
// read is still priced, with an error recorded.
func (c *BucketCollector) fetchTags(ctx context.Context, buckets []Bucket, result *inventory.Result) map[string]map[string]string {
	tags := make(map[string]map[string]string, len(buckets))
	var errs []string
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for _, b := range buckets {
		g.Go(func() error {
			t, err := BucketTags(ctx, c.client, b.Name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", b.Name, err))
				return nil
			}
			tags[b.Name] = t
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(errs)
	result.Errors = append(result.Errors, errs...)
	return tags
}

func (c *BucketCollector) bucketRegion(b Bucket) string {
	if b.Region != "" {
		return b.Region
	}
	return c.region
}

// bucketItem prices a bucket on the S3 Standard tiers. On a pricing error
// the item is returned without a price.
func bucketItem(b Bucket, region string, tags map[string]string, size float64) (inventory.Item, error) {
	item := inventory.Item{
		Provider:     inventory.ProviderS3,
		Kind:         inventory.KindBucket,
		ID:           b.Name,
		Region:       region,
		Tags:         tags,
		SizeBytes:    size,
		SizeReadable: pricing.BytesToReadable(size),
		Metadata: map[string]any{
			"storage_type": storageType,
		},
	}
	if !b.CreationDate.IsZero() {
		item.Metadata["created"] = b.CreationDate.Format(time.RFC3339)
	}

	cost, err := pricing.TotalCost(size)
	if err != nil {
		return item, err
	}
	item.MonthlyCost = cost
	item.Price = pricing.FormatUSD(cost)
	return item, nil
}

func (c *BucketCollector) reportProgress(progress func(inventory.Progress), region, msg string) {
	if progress != nil {
		progress(inventory.Progress{
			Region:    region,
			Collector: "s3",
			Message:   msg,
			Timestamp: time.Now(),
		})
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
