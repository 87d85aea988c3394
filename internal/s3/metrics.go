package s3

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"golang.org/x/sync/errgroup"
)

const (
	// GetMetricData accepts at most 500 queries per request.
	maxQueriesPerRequest = 500

	metricNamespace     = "AWS/S3"
	metricName          = "BucketSizeBytes"
	storageType         = "StandardStorage"
	metricPeriodSeconds = 60 * 60 * 24
	queryIDPrefix       = "bucket_num_"
)

// MetricWindow returns the query window for daily bucket size metrics.
// CloudWatch S3 storage metrics lag by about 48 hours, so the window is the
// day ending two days before now.
func MetricWindow(now time.Time) (start, end time.Time) {
	return now.AddDate(0, 0, -3), now.AddDate(0, 0, -2)
}

// BucketSizeQueries builds one BucketSizeBytes query per bucket. Query IDs
// are numbered from offset so that they stay unique across batches.
func BucketSizeQueries(names []string, offset int) []cwtypes.MetricDataQuery {
	queries := make([]cwtypes.MetricDataQuery, 0, len(names))
	for i, name := range names {
		queries = append(queries, cwtypes.MetricDataQuery{
			Id:    aws.String(queryIDPrefix + strconv.Itoa(offset+i)),
			Label: aws.String(name),
			MetricStat: &cwtypes.MetricStat{
				Period: aws.Int32(metricPeriodSeconds),
				Stat:   aws.String("Average"),
				Metric: &cwtypes.Metric{
					Namespace:  aws.String(metricNamespace),
					MetricName: aws.String(metricName),
					Dimensions: []cwtypes.Dimension{
						{Name: aws.String("BucketName"), Value: aws.String(name)},
						{Name: aws.String("StorageType"), Value: aws.String(storageType)},
					},
				},
			},
		})
	}
	return queries
}

// SizeFetcher reads bucket sizes from CloudWatch.
type SizeFetcher struct {
	client      CloudWatchAPI
	concurrency int
	now         time.Time // injectable for testing
}

// NewSizeFetcher creates a fetcher issuing at most concurrency requests at once.
func NewSizeFetcher(client CloudWatchAPI, concurrency int) *SizeFetcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &SizeFetcher{
		client:      client,
		concurrency: concurrency,
		now:         time.Now(),
	}
}

// TotalStoredBytes returns the Standard storage size of one bucket.
func (f *SizeFetcher) TotalStoredBytes(ctx context.Context, bucket string) (float64, error) {
	sizes, err := f.BucketSizes(ctx, []string{bucket})
	if err != nil {
		return 0, err
	}
	return sizes[bucket], nil
}

// BucketSizes returns the latest daily average size in bytes of each bucket.
// Buckets without a datapoint in the window (empty or new buckets) map to 0.
func (f *SizeFetcher) BucketSizes(ctx context.Context, names []string) (map[string]float64, error) {
	sizes := make(map[string]float64, len(names))
	for _, n := range names {
		sizes[n] = 0
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	for offset := 0; offset < len(names); offset += maxQueriesPerRequest {
		batch := names[offset:min(offset+maxQueriesPerRequest, len(names))]
		g.Go(func() error {
			got, err := f.fetchBatch(gctx, batch, offset)
			if err != nil {
				return err
			}
			mu.Lock()
			for name, v := range got {
				sizes[name] = v
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	slog.Debug("Fetched bucket sizes", "count", len(names))
	return sizes, nil
}

func (f *SizeFetcher) fetchBatch(ctx context.Context, names []string, offset int) (map[string]float64, error) {
	start, end := MetricWindow(f.now)
	input := &cloudwatch.GetMetricDataInput{
		MetricDataQueries: BucketSizeQueries(names, offset),
		StartTime:         aws.Time(start),
		EndTime:           aws.Time(end),
		ScanBy:            cwtypes.ScanByTimestampDescending,
	}

	got := make(map[string]float64, len(names))
	for {
		out, err := f.client.GetMetricData(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("get metric data for %d buckets: %w", len(names), err)
		}
		for _, r := range out.MetricDataResults {
			i, ok := queryIndex(aws.ToString(r.Id), offset, len(names))
			if !ok || len(r.Values) == 0 {
				continue
			}
			// Newest first, so the first page carrying a value wins.
			if _, seen := got[names[i]]; !seen {
				got[names[i]] = r.Values[0]
			}
		}
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}
	return got, nil
}

// queryIndex maps a query ID back to its position in the batch.
func queryIndex(id string, offset, n int) (int, bool) {
	s, ok := strings.CutPrefix(id, queryIDPrefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < offset || i >= offset+n {
		return 0, false
	}
	return i - offset, true
}
