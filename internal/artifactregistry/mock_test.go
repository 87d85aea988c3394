package artifactregistry

import (
	"context"
	"time"
)

// mockARClient implements ARAPI for testing.
type mockARClient struct {
	repos       map[string][]Repository // keyed by "project/location"
	listRepoErr map[string]error        // keyed by "project/location"
	closed      bool
}

func newMockClient() *mockARClient {
	return &mockARClient{
		repos:       make(map[string][]Repository),
		listRepoErr: make(map[string]error),
	}
}

func (m *mockARClient) ListRepositories(_ context.Context, project, location string) ([]Repository, error) {
	key := project + "/" + location
	if err, ok := m.listRepoErr[key]; ok {
		return nil, err
	}
	return m.repos[key], nil
}

func (m *mockARClient) Close() error {
	m.closed = true
	return nil
}

func makeRepo(project, location, repoID, format string, sizeBytes int64) Repository {
	return Repository{
		Name:       "projects/" + project + "/locations/" + location + "/repositories/" + repoID,
		Location:   location,
		RepoID:     repoID,
		Format:     format,
		SizeBytes:  sizeBytes,
		CreateTime: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}
