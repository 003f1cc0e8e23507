package app

import "debdepot/internal/types"

// ProfileScope carries everything a caller can say about which
// (os, type, distro, component, arch) tuple an operation targets.
// Overrides holds values the user set explicitly on the command line
// and wins over a named profile entry; Defaults holds values from
// configuration or environment and loses to it.
type ProfileScope struct {
	Defaults     types.Profile
	Overrides    types.Profile
	ProfilesPath string
	ProfileName  string
}

type UpdateRequest struct {
	Scope       ProfileScope
	SourcesPath string
	RepoURLs    []string
}

type UpdateResult struct {
	Profile       types.Profile
	RunID         string
	ReposUpdated  int
	ReposSkipped  int
	ReposFailed   int
	PackagesAdded int64
	ContentsAdded int64
}

type SearchRequest struct {
	Scope ProfileScope
	Terms []string
}

type SearchResult struct {
	Profile types.Profile
	Rows    []types.PackageRow
}

type InfoRequest struct {
	Scope ProfileScope
	Names []string
}

type InfoResult struct {
	Profile types.Profile
	Rows    []types.PackageRow
	Missing []string
}

type DepsRequest struct {
	Scope ProfileScope
	Names []string
}

type DepsResult struct {
	Profile  types.Profile
	Packages []types.ResolvedPackage
	Missing  []string
}

type DownloadRequest struct {
	Scope ProfileScope
	Names []string
	Dir   string
	Force bool
}

type DownloadResult struct {
	Profile types.Profile
	Fetched []string
	Skipped []string
	Missing []string
	Failed  []string
}

type FilesRequest struct {
	Scope    ProfileScope
	Patterns []string
}

type FilesResult struct {
	Profile types.Profile
	Entries []types.ContentEntry
}

type StatusRequest struct {
	Scope    ProfileScope
	RunLimit int
}

type StatusResult struct {
	Profile      types.Profile
	Repositories []types.RepositoryStatus
	Runs         []types.UpdateRun
}
