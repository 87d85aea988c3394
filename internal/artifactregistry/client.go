package artifactregistry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ar "cloud.google.com/go/artifactregistry/apiv1"
	arpb "cloud.google.com/go/artifactregistry/apiv1/artifactregistrypb"
	"google.golang.org/api/iterator"
)

// Repository represents a GCP Artifact Registry repository.
type Repository struct {
	Name       string // full resource name
	Location   string
	RepoID     string
	Format     string
	SizeBytes  int64
	Labels     map[string]string
	CreateTime time.Time
}

// ARAPI defines the subset of the Artifact Registry API used by the collector.
type ARAPI interface {
	ListRepositories(ctx context.Context, project, location string) ([]Repository, error)
	Close() error
}

// Client implements ARAPI using the real GCP SDK.
type Client struct {
	inner *ar.Client
}

// NewClient creates a new Artifact Registry client.
func NewClient(ctx context.Context) (*Client, error) {
	c, err := ar.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create artifact registry client: %w", err)
	}
	return &Client{inner: c}, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.inner.Close()
}

// ListRepositories returns the repositories of every format in a given location.
func (c *Client) ListRepositories(ctx context.Context, project, location string) ([]Repository, error) {
	parent := fmt.Sprintf("projects/%s/locations/%s", project, location)
	it := c.inner.ListRepositories(ctx, &arpb.ListRepositoriesRequest{
		Parent: parent,
	})

	var repos []Repository
	for {
		repo, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list repositories in %s: %w", parent, err)
		}
		repos = append(repos, fromProto(repo, location))
	}

	slog.Debug("Listed AR repositories", "location", location, "count", len(repos))
	return repos, nil
}

func fromProto(repo *arpb.Repository, location string) Repository {
	r := Repository{
		Name:      repo.GetName(),
		Location:  location,
		RepoID:    extractRepoID(repo.GetName()),
		Format:    repo.GetFormat().String(),
		SizeBytes: repo.GetSizeBytes(),
		Labels:    repo.GetLabels(),
	}
	if repo.GetCreateTime() != nil {
		r.CreateTime = repo.GetCreateTime().AsTime()
	}
	return r
}

// extractRepoID extracts the repository ID from a full resource name.
// Format: projects/{project}/locations/{location}/repositories/{repo}
func extractRepoID(name string) string {
	return name[strings.LastIndex(name, "/")+1:]
}
