package artifactregistry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/s3spectre/internal/inventory"
)

const oneGiB = int64(1073741824)

func TestCollectPricesRepositories(t *testing.T) {
	mock := newMockClient()
	docker := makeRepo("proj", "us-central1", "images", "DOCKER", 10*oneGiB)
	docker.Labels = map[string]string{"project": "atlas", "owner": "team-a"}
	mock.repos["proj/us-central1"] = []Repository{
		docker,
		makeRepo("proj", "us-central1", "libs", "NPM", 0),
	}

	result := NewRepositoryCollector(mock, "proj", []string{"us-central1"}).Collect(context.Background(), inventory.CollectConfig{}, nil)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.ResourcesScanned != 2 || len(result.Items) != 2 {
		t.Fatalf("scanned=%d items=%d, want 2/2", result.ResourcesScanned, len(result.Items))
	}

	it := result.Items[0]
	if it.Price != "$1.00" {
		t.Errorf("Price = %q, want $1.00", it.Price)
	}
	if it.SizeReadable != "10.74 GB" {
		t.Errorf("SizeReadable = %q, want 10.74 GB", it.SizeReadable)
	}
	if it.Provider != inventory.ProviderArtifactRegistry || it.Region != "us-central1" {
		t.Errorf("provider/region = %s/%s", it.Provider, it.Region)
	}
	if it.Tag("project") != "atlas" || it.Tag("env") != "-" {
		t.Errorf("tags = %v", it.Tags)
	}
	if it.Metadata["format"] != "DOCKER" || it.Metadata["created"] != "2025-06-01T00:00:00Z" {
		t.Errorf("metadata = %v", it.Metadata)
	}

	if result.Items[1].Metadata["format"] != "NPM" || result.Items[1].Price != "$0.00" {
		t.Errorf("libs = %+v", result.Items[1])
	}
}

func TestCollectMultipleLocations(t *testing.T) {
	mock := newMockClient()
	mock.repos["proj/us"] = []Repository{makeRepo("proj", "us", "a", "DOCKER", oneGiB)}
	mock.repos["proj/europe"] = []Repository{makeRepo("proj", "europe", "b", "DOCKER", oneGiB)}

	result := NewRepositoryCollector(mock, "proj", []string{"us", "europe"}).Collect(context.Background(), inventory.CollectConfig{}, nil)

	if len(result.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(result.Items))
	}
	if result.Items[0].Region != "us" || result.Items[1].Region != "europe" {
		t.Errorf("regions = %s, %s", result.Items[0].Region, result.Items[1].Region)
	}
}

func TestCollectLocationError(t *testing.T) {
	mock := newMockClient()
	mock.listRepoErr["proj/asia"] = errors.New("permission denied")
	mock.repos["proj/us"] = []Repository{makeRepo("proj", "us", "a", "DOCKER", 0)}

	result := NewRepositoryCollector(mock, "proj", []string{"asia", "us"}).Collect(context.Background(), inventory.CollectConfig{}, nil)

	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], "asia: ") {
		t.Errorf("errors = %v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Errorf("items = %d, want 1", len(result.Items))
	}
}

func TestCollectExclude(t *testing.T) {
	mock := newMockClient()
	labelled := makeRepo("proj", "us", "scratch", "DOCKER", 0)
	labelled.Labels = map[string]string{"env": "dev"}
	mock.repos["proj/us"] = []Repository{
		makeRepo("proj", "us", "skip", "DOCKER", 0),
		labelled,
		makeRepo("proj", "us", "keep", "DOCKER", 0),
	}

	cfg := inventory.CollectConfig{Exclude: inventory.ExcludeConfig{
		ResourceIDs: map[string]bool{"skip": true},
		Tags:        map[string]string{"env": "dev"},
	}}
	result := NewRepositoryCollector(mock, "proj", []string{"us"}).Collect(context.Background(), cfg, nil)

	if len(result.Items) != 1 || result.Items[0].ID != "keep" {
		t.Errorf("items = %+v", result.Items)
	}
	if result.ResourcesScanned != 1 {
		t.Errorf("ResourcesScanned = %d, want 1", result.ResourcesScanned)
	}
}

func TestCollectProgress(t *testing.T) {
	mock := newMockClient()

	var count int
	NewRepositoryCollector(mock, "proj", []string{"us", "europe"}).Collect(context.Background(), inventory.CollectConfig{}, func(p inventory.Progress) {
		if p.Collector != "artifactregistry" {
			t.Errorf("Collector = %q", p.Collector)
		}
		count++
	})
	if count != 4 {
		t.Errorf("progress calls = %d, want 4", count)
	}
}

func TestMockClose(t *testing.T) {
	mock := newMockClient()
	var api ARAPI = mock
	if err := api.Close(); err != nil || !mock.closed {
		t.Errorf("Close() = %v, closed = %v", err, mock.closed)
	}
}
