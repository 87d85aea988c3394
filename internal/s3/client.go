package s3

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3API defines the subset of the S3 API used by the collector.
type S3API interface {
	ListBuckets(ctx context.Context, input *awss3.ListBucketsInput, opts ...func(*awss3.Options)) (*awss3.ListBucketsOutput, error)
	GetBucketTagging(ctx context.Context, input *awss3.GetBucketTaggingInput, opts ...func(*awss3.Options)) (*awss3.GetBucketTaggingOutput, error)
}

// CloudWatchAPI defines the subset of the CloudWatch API used to read bucket sizes.
type CloudWatchAPI interface {
	GetMetricData(ctx context.Context, input *cloudwatch.GetMetricDataInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricDataOutput, error)
}

// NewS3Client creates an S3 service client.
func NewS3Client(cfg aws.Config) S3API {
	return awss3.NewFromConfig(cfg)
}

// CloudWatchFactory returns a CloudWatch client for a region. S3 storage
// metrics are published in the bucket's own region.
type CloudWatchFactory func(region string) CloudWatchAPI

// NewCloudWatchFactory creates CloudWatch clients from cfg, overriding the region per call.
func NewCloudWatchFactory(cfg aws.Config) CloudWatchFactory {
	return func(region string) CloudWatchAPI {
		return cloudwatch.NewFromConfig(cfg, func(o *cloudwatch.Options) {
			if region != "" {
				o.Region = region
			}
		})
	}
}

// Bucket is an S3 bucket as returned by ListBuckets.
type Bucket struct {
	Name         string
	Region       string
	CreationDate time.Time
}

// ListBuckets returns all buckets in the account using pagination.
func ListBuckets(ctx context.Context, client S3API) ([]Bucket, error) {
	var buckets []Bucket
	input := &awss3.ListBucketsInput{}

	for {
		out, err := client.ListBuckets(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("list buckets: %w", err)
		}
		for _, b := range out.Buckets {
			buckets = append(buckets, Bucket{
				Name:         aws.ToString(b.Name),
				Region:       aws.ToString(b.BucketRegion),
				CreationDate: aws.ToTime(b.CreationDate),
			})
		}
		if out.ContinuationToken == nil {
			break
		}
		input.ContinuationToken = out.ContinuationToken
	}

	slog.Debug("Listed S3 buckets", "count", len(buckets))
	return buckets, nil
}

// BucketTags returns the tag set of a bucket. A bucket without tags
// returns an empty map.
func BucketTags(ctx context.Context, client S3API, name string) (map[string]string, error) {
	out, err := client.GetBucketTagging(ctx, &awss3.GetBucketTaggingInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchTagSet" {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("get bucket tagging for %s: %w", name, err)
	}

	tags := make(map[string]string, len(out.TagSet))
	for _, t := range out.TagSet {
		tags[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return tags, nil
}
