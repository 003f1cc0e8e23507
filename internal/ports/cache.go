package ports

import (
	"context"

	"debdepot/internal/types"
)

// PackageFinderPort is the narrow read surface the resolver needs.
type PackageFinderPort interface {
	FindPackages(ctx context.Context, profile types.Profile, names []string, mode types.MatchMode) ([]types.PackageRow, error)
}

type CacheStorePort interface {
	PackageFinderPort
	UpsertRepository(ctx context.Context, repo types.Repository) (int64, error)
	InsertPackages(ctx context.Context, repoID int64, records []types.PackageRecord) (int64, error)
	InsertContents(ctx context.Context, repoID int64, entries []types.ContentEntry) (int64, error)
	FindContents(ctx context.Context, profile types.Profile, fileSubstring string) ([]types.ContentEntry, error)
	ListRepositories(ctx context.Context, profile types.Profile) ([]types.RepositoryStatus, error)
	RecordUpdateRun(ctx context.Context, run types.UpdateRun) error
	ListUpdateRuns(ctx context.Context, limit int) ([]types.UpdateRun, error)
	Close() error
}
