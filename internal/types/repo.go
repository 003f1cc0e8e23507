package types

import "time"

// Profile scopes every package and content query to one
// (os, type, distro, component, arch) tuple. The cache may hold data
// for many profiles at once; queries never cross the boundary.
type Profile struct {
	OS        string
	Type      PackageType
	Distro    string
	Component string
	Arch      string
}

type SourceEntry struct {
	Type       PackageType
	URL        string
	Distro     string
	Components []string
}

type Repository struct {
	ID        int64
	OS        string
	Type      PackageType
	Distro    string
	Component string
	URL       string
}

type RepositoryStatus struct {
	Repository
	PackageCount int64
	ContentCount int64
}

type PackageRecord struct {
	Name        string
	Filename    string
	Version     string
	Arch        string
	Depends     string
	PreDepends  string
	Description string
	Section     string
	Priority    string
	Size        int64
}

// PackageRow is a package record joined with its owning repository's
// coordinates, as returned by cache queries.
type PackageRow struct {
	PackageRecord
	RepoType      PackageType
	RepoDistro    string
	RepoComponent string
	RepoURL       string
}

type ContentEntry struct {
	File     string
	Location string
	Arch     string
}

type UpdateRun struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	ReposUpdated  int
	ReposSkipped  int
	ReposFailed   int
	PackagesAdded int64
	ContentsAdded int64
}

type PlatformInfo struct {
	ID       string
	Codename string
}
