package s3

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// mockS3Client implements S3API for testing.
type mockS3Client struct {
	buckets  []s3types.Bucket
	tags     map[string][]s3types.Tag // buckets without an entry have no tag set
	tagErr   map[string]error
	listErr  error
	pageSize int // 0 returns all buckets in one page
}

func newMockS3() *mockS3Client {
	return &mockS3Client{
		tags:   make(map[string][]s3types.Tag),
		tagErr: make(map[string]error),
	}
}

func (m *mockS3Client) ListBuckets(_ context.Context, input *awss3.ListBucketsInput, _ ...func(*awss3.Options)) (*awss3.ListBucketsOutput, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if m.pageSize == 0 {
		return &awss3.ListBucketsOutput{Buckets: m.buckets}, nil
	}
	start := 0
	if input.ContinuationToken != nil {
		start, _ = strconv.Atoi(*input.ContinuationToken)
	}
	end := min(start+m.pageSize, len(m.buckets))
	out := &awss3.ListBucketsOutput{Buckets: m.buckets[start:end]}
	if end < len(m.buckets) {
		out.ContinuationToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

func (m *mockS3Client) GetBucketTagging(_ context.Context, input *awss3.GetBucketTaggingInput, _ ...func(*awss3.Options)) (*awss3.GetBucketTaggingOutput, error) {
	name := aws.ToString(input.Bucket)
	if err, ok := m.tagErr[name]; ok {
		return nil, err
	}
	tags, ok := m.tags[name]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchTagSet", Message: "The TagSet does not exist"}
	}
	return &awss3.GetBucketTaggingOutput{TagSet: tags}, nil
}

// mockCloudWatch implements CloudWatchAPI for testing. It is safe for concurrent use.
type mockCloudWatch struct {
	mu         sync.Mutex
	sizes      map[string]float64 // buckets without an entry have no datapoint
	err        error
	pageSize   int // results per page; 0 returns all results at once
	calls      int
	maxQueries int
	lastInput  *cloudwatch.GetMetricDataInput
}

func newMockCloudWatch() *mockCloudWatch {
	return &mockCloudWatch{sizes: make(map[string]float64)}
}

func (m *mockCloudWatch) GetMetricData(_ context.Context, input *cloudwatch.GetMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricDataOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.maxQueries = max(m.maxQueries, len(input.MetricDataQueries))
	m.lastInput = input
	if m.err != nil {
		return nil, m.err
	}

	results := make([]cwtypes.MetricDataResult, 0, len(input.MetricDataQueries))
	for _, q := range input.MetricDataQueries {
		r := cwtypes.MetricDataResult{Id: q.Id, Label: q.Label}
		if v, ok := m.sizes[bucketDimension(q)]; ok {
			r.Values = []float64{v}
			r.Timestamps = []time.Time{aws.ToTime(input.StartTime)}
		}
		results = append(results, r)
	}

	if m.pageSize == 0 {
		return &cloudwatch.GetMetricDataOutput{MetricDataResults: results}, nil
	}
	start := 0
	if input.NextToken != nil {
		start, _ = strconv.Atoi(*input.NextToken)
	}
	end := min(start+m.pageSize, len(results))
	out := &cloudwatch.GetMetricDataOutput{MetricDataResults: results[start:end]}
	if end < len(results) {
		out.NextToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

func bucketDimension(q cwtypes.MetricDataQuery) string {
	for _, d := range q.MetricStat.Metric.Dimensions {
		if aws.ToString(d.Name) == "BucketName" {
			return aws.ToString(d.Value)
		}
	}
	return ""
}

func makeBucket(name, region string) s3types.Bucket {
	b := s3types.Bucket{
		Name:         aws.String(name),
		CreationDate: aws.Time(time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)),
	}
	if region != "" {
		b.BucketRegion = aws.String(region)
	}
	return b
}

func makeTags(kv ...string) []s3types.Tag {
	var tags []s3types.Tag
	for i := 0; i+1 < len(kv); i += 2 {
		tags = append(tags, s3types.Tag{Key: aws.String(kv[i]), Value: aws.String(kv[i+1])})
	}
	return tags
}
