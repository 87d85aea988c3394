package ecr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
)

// ECRAPI defines the subset of the ECR API used by the collector.
type ECRAPI interface {
	DescribeRepositories(ctx context.Context, input *ecr.DescribeRepositoriesInput, opts ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error)
	DescribeImages(ctx context.Context, input *ecr.DescribeImagesInput, opts ...func(*ecr.Options)) (*ecr.DescribeImagesOutput, error)
	ListTagsForResource(ctx context.Context, input *ecr.ListTagsForResourceInput, opts ...func(*ecr.Options)) (*ecr.ListTagsForResourceOutput, error)
}

// NewECRClient creates an ECR service client.
func NewECRClient(cfg aws.Config) ECRAPI {
	return ecr.NewFromConfig(cfg)
}

// ListRepositories returns all ECR repositories using pagination.
func ListRepositories(ctx context.Context, client ECRAPI) ([]ecrtypes.Repository, error) {
	var repos []ecrtypes.Repository
	input := &ecr.DescribeRepositoriesInput{}

	for {
		out, err := client.DescribeRepositories(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("describe repositories: %w", err)
		}
		repos = append(repos, out.Repositories...)
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}

	slog.Debug("Listed ECR repositories", "count", len(repos))
	return repos, nil
}

// ListImages returns all image details for a given repository using pagination.
func ListImages(ctx context.Context, client ECRAPI, repoName string) ([]ecrtypes.ImageDetail, error) {
	var images []ecrtypes.ImageDetail
	input := &ecr.DescribeImagesInput{
		RepositoryName: aws.String(repoName),
	}

	for {
		out, err := client.DescribeImages(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("describe images for %s: %w", repoName, err)
		}
		images = append(images, out.ImageDetails...)
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}

	return images, nil
}

// RepositoryTags returns the resource tags of a repository.
func RepositoryTags(ctx context.Context, client ECRAPI, arn string) (map[string]string, error) {
	out, err := client.ListTagsForResource(ctx, &ecr.ListTagsForResourceInput{
		ResourceArn: aws.String(arn),
	})
	if err != nil {
		return nil, fmt.Errorf("list tags for %s: %w", arn, err)
	}
	tags := make(map[string]string, len(out.Tags))
	for _, t := range out.Tags {
		tags[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return tags, nil
}
