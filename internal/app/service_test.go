package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"debdepot/internal/adapters"
	"debdepot/internal/types"
)

type fakeIndexes struct {
	payloads map[string]string
	errs     map[string]error
	calls    []string
}

func (f *fakeIndexes) FetchText(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	if payload, ok := f.payloads[url]; ok {
		return payload, nil
	}
	return "", unavailableErr(url)
}

type fakeFiles struct {
	payloads map[string][]byte
	errs     map[string]error
	calls    []string
}

func (f *fakeFiles) FetchFile(_ context.Context, url string, dest string) (int64, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return 0, err
	}
	payload, ok := f.payloads[url]
	if !ok {
		return 0, unavailableErr(url)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(dest, payload, 0o644); err != nil {
		return 0, err
	}
	return int64(len(payload)), nil
}

type fakePlatform struct {
	info types.PlatformInfo
}

func (f fakePlatform) Detect() types.PlatformInfo {
	return f.info
}

func unavailableErr(url string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("repository unavailable: " + url)
}

// newTestService wires a service around a real SQLite cache in a temp
// directory and in-memory fetchers.
func newTestService(t *testing.T) (Service, *fakeIndexes, *fakeFiles, string) {
	t.Helper()
	cachePath := filepath.Join(t.TempDir(), "cache", "packages.db")
	indexes := &fakeIndexes{payloads: map[string]string{}, errs: map[string]error{}}
	files := &fakeFiles{payloads: map[string][]byte{}, errs: map[string]error{}}
	service := Service{
		Cache:     adapters.NewCacheStoreAdapter(cachePath),
		Indexes:   indexes,
		Files:     files,
		Sources:   adapters.NewSourcesFileAdapter(),
		Profiles:  adapters.NewProfilesFileAdapter(),
		Platform:  fakePlatform{info: types.PlatformInfo{ID: "debian", Codename: "bookworm"}},
		LocalDebs: adapters.NewLocalDebsAdapter(),
		Clock:     func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) },
		NewRunID:  func() string { return "run-fixed" },
	}
	t.Cleanup(func() { _ = service.Close() })
	return service, indexes, files, cachePath
}

func testScope() ProfileScope {
	return ProfileScope{Overrides: types.Profile{
		OS:     "debian",
		Distro: "bookworm",
		Arch:   "amd64",
	}}
}

func testProfile() types.Profile {
	return types.Profile{
		OS:        "debian",
		Type:      types.PackageTypeDeb,
		Distro:    "bookworm",
		Component: "main",
		Arch:      "amd64",
	}
}

func writeSourcesFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.list")
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// seedRepository pushes package rows straight into the cache, skipping
// the fetch pipeline.
func seedRepository(t *testing.T, service Service, url string, records ...types.PackageRecord) int64 {
	t.Helper()
	profile := testProfile()
	repoID, err := service.Cache.UpsertRepository(t.Context(), types.Repository{
		OS:        profile.OS,
		Type:      profile.Type,
		Distro:    profile.Distro,
		Component: profile.Component,
		URL:       url,
	})
	require.NoError(t, err)
	if len(records) > 0 {
		_, err = service.Cache.InsertPackages(t.Context(), repoID, records)
		require.NoError(t, err)
	}
	return repoID
}

func record(name, version, depends string) types.PackageRecord {
	return types.PackageRecord{
		Name:     name,
		Version:  version,
		Arch:     "amd64",
		Filename: fmt.Sprintf("pool/main/%s_%s_amd64.deb", name, version),
		Depends:  depends,
		Size:     int64(1000 + len(name)),
	}
}
