package ecr

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
)

// mockECRClient implements ECRAPI for testing.
type mockECRClient struct {
	repos         []ecrtypes.Repository
	images        map[string][]ecrtypes.ImageDetail
	tags          map[string][]ecrtypes.Tag // keyed by repository ARN
	descRepoErr   error
	descImagesErr map[string]error
	tagsErr       map[string]error
	imagePageSize int // 0 returns all images in one page
}

func newMockClient() *mockECRClient {
	return &mockECRClient{
		images:        make(map[string][]ecrtypes.ImageDetail),
		tags:          make(map[string][]ecrtypes.Tag),
		descImagesErr: make(map[string]error),
		tagsErr:       make(map[string]error),
	}
}

func (m *mockECRClient) DescribeRepositories(_ context.Context, _ *ecr.DescribeRepositoriesInput, _ ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error) {
	if m.descRepoErr != nil {
		return nil, m.descRepoErr
	}
	return &ecr.DescribeRepositoriesOutput{Repositories: m.repos}, nil
}

func (m *mockECRClient) DescribeImages(_ context.Context, input *ecr.DescribeImagesInput, _ ...func(*ecr.Options)) (*ecr.DescribeImagesOutput, error) {
	repo := aws.ToString(input.RepositoryName)
	if err, ok := m.descImagesErr[repo]; ok {
		return nil, err
	}
	images := m.images[repo]
	if m.imagePageSize == 0 {
		return &ecr.DescribeImagesOutput{ImageDetails: images}, nil
	}
	start := 0
	if input.NextToken != nil {
		start, _ = strconv.Atoi(*input.NextToken)
	}
	end := min(start+m.imagePageSize, len(images))
	out := &ecr.DescribeImagesOutput{ImageDetails: images[start:end]}
	if end < len(images) {
		out.NextToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

func (m *mockECRClient) ListTagsForResource(_ context.Context, input *ecr.ListTagsForResourceInput, _ ...func(*ecr.Options)) (*ecr.ListTagsForResourceOutput, error) {
	arn := aws.ToString(input.ResourceArn)
	if err, ok := m.tagsErr[arn]; ok {
		return nil, err
	}
	return &ecr.ListTagsForResourceOutput{Tags: m.tags[arn]}, nil
}

// Test helper to create an image detail.
func makeImage(digest string, tags []string, sizeBytes int64, pushedAt time.Time) ecrtypes.ImageDetail {
	return ecrtypes.ImageDetail{
		ImageDigest:      aws.String(digest),
		ImageSizeInBytes: aws.Int64(sizeBytes),
		ImagePushedAt:    aws.Time(pushedAt),
		ImageTags:        tags,
	}
}

func makeRepo(name string) ecrtypes.Repository {
	return ecrtypes.Repository{
		RepositoryName: aws.String(name),
		RepositoryArn:  aws.String(repoARN(name)),
		RepositoryUri:  aws.String("123456789012.dkr.ecr.us-east-1.amazonaws.com/" + name),
	}
}

func repoARN(name string) string {
	return "arn:aws:ecr:us-east-1:123456789012:repository/" + name
}
