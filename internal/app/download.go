package app

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"debdepot/internal/core"
)

// Download resolves the closure of the requested names and fetches
// each resolved package's payload into dir. A payload already on disk
// with the cached size is skipped unless Force is set. Per-file
// failures do not stop the remaining downloads; the first one is
// returned at the end.
func (s Service) Download(ctx context.Context, req DownloadRequest) (DownloadResult, error) {
	profile, err := s.resolveProfile(ctx, req.Scope)
	if err != nil {
		return DownloadResult{}, err
	}
	names := cleanArgs(req.Names)
	if len(names) == 0 {
		return DownloadResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one package name is required")
	}
	dir := strings.TrimSpace(req.Dir)
	if dir == "" {
		return DownloadResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("download directory is required")
	}

	resolution, err := s.resolveClosure(ctx, profile, names)
	if err != nil {
		return DownloadResult{}, err
	}
	existing, err := s.LocalDebs.ListDebs(dir)
	if err != nil {
		return DownloadResult{}, err
	}

	result := DownloadResult{Profile: profile}
	result.Missing = append(result.Missing, resolution.Missing...)
	sort.Strings(result.Missing)

	resolved := resolution.Names()
	sort.Strings(resolved)

	var firstErr error
	fail := func(label string, err error) {
		result.Failed = append(result.Failed, label)
		if firstErr == nil {
			firstErr = err
		}
	}
	for _, name := range resolved {
		pkg := resolution.Packages[name]
		if pkg.Filename == "" {
			fail(name, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("package %q has no filename in the cache", name)))
			continue
		}
		base := path.Base(pkg.Filename)
		if size, ok := existing[base]; ok && !req.Force && pkg.Size > 0 && size == pkg.Size {
			log.Ctx(ctx).Debug().
				Str("file", base).
				Int64("size", size).
				Msg("payload already present, skipping")
			result.Skipped = append(result.Skipped, base)
			continue
		}
		url, err := core.PackageFileURL(pkg.RepoURL, pkg.Filename)
		if err != nil {
			fail(base, err)
			continue
		}
		written, err := s.Files.FetchFile(ctx, url, filepath.Join(dir, base))
		if err != nil {
			log.Ctx(ctx).Warn().
				Str("file", base).
				Str("url", url).
				Err(err).
				Msg("payload download failed")
			fail(base, err)
			continue
		}
		log.Ctx(ctx).Debug().
			Str("file", base).
			Int64("bytes", written).
			Msg("payload downloaded")
		result.Fetched = append(result.Fetched, base)
	}
	if firstErr != nil {
		return DownloadResult{}, firstErr
	}
	return result, nil
}
