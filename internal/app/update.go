package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"debdepot/internal/core"
	"debdepot/internal/types"
)

// repoOutcome is the per-repository result of one update pass. The
// failed error is remembered and reported once the whole run is over;
// storage errors abort the run instead and never land here.
type repoOutcome struct {
	packagesAdded     int64
	contentsAdded     int64
	packagesCommitted bool
	skipped           bool
	failed            error
}

// Update refreshes the cache for every repository the profile selects
// from the sources list (plus the extra repository URL, when given).
// Unavailable repositories are skipped, malformed ones fail without
// committing anything, and the remaining repositories still proceed;
// the first failure is returned after the audit row is recorded.
func (s Service) Update(ctx context.Context, req UpdateRequest) (UpdateResult, error) {
	profile, err := s.resolveProfile(ctx, req.Scope)
	if err != nil {
		return UpdateResult{}, err
	}
	repos, err := s.selectRepositories(ctx, profile, req)
	if err != nil {
		return UpdateResult{}, err
	}
	if len(repos) == 0 {
		return UpdateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("profile not found: no repositories match %s/%s %s %s %s",
				profile.OS, profile.Type, profile.Distro, profile.Component, profile.Arch))
	}

	started := s.now()
	result := UpdateResult{Profile: profile, RunID: s.runID()}
	var firstErr error
	for _, repo := range repos {
		outcome, err := s.updateRepository(ctx, profile, repo)
		if err != nil {
			return UpdateResult{}, err
		}
		result.PackagesAdded += outcome.packagesAdded
		result.ContentsAdded += outcome.contentsAdded
		switch {
		case outcome.skipped:
			result.ReposSkipped++
		case outcome.failed != nil && !outcome.packagesCommitted:
			result.ReposFailed++
		default:
			result.ReposUpdated++
		}
		if outcome.failed != nil && firstErr == nil {
			firstErr = outcome.failed
		}
	}

	run := types.UpdateRun{
		ID:            result.RunID,
		StartedAt:     started,
		FinishedAt:    s.now(),
		ReposUpdated:  result.ReposUpdated,
		ReposSkipped:  result.ReposSkipped,
		ReposFailed:   result.ReposFailed,
		PackagesAdded: result.PackagesAdded,
		ContentsAdded: result.ContentsAdded,
	}
	if err := s.Cache.RecordUpdateRun(ctx, run); err != nil {
		return UpdateResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("run_id", result.RunID).
		Int("updated", result.ReposUpdated).
		Int("skipped", result.ReposSkipped).
		Int("failed", result.ReposFailed).
		Int64("packages_added", result.PackagesAdded).
		Int64("contents_added", result.ContentsAdded).
		Msg("update run finished")
	if firstErr != nil {
		return UpdateResult{}, firstErr
	}
	return result, nil
}

// selectRepositories turns the sources list into the concrete set of
// repositories the profile covers. Entries are matched on type, distro
// and component (distro and component case-insensitively); extra
// repository URLs become synthetic entries for the active profile.
func (s Service) selectRepositories(ctx context.Context, profile types.Profile, req UpdateRequest) ([]types.Repository, error) {
	extraURLs := cleanArgs(req.RepoURLs)
	sourcesPath := strings.TrimSpace(req.SourcesPath)

	var entries []types.SourceEntry
	if sourcesPath != "" {
		loaded, err := s.Sources.Load(sourcesPath)
		if err != nil {
			// A missing sources list is tolerable when extra
			// repository URLs were given explicitly.
			if len(extraURLs) == 0 || errbuilder.CodeOf(err) != errbuilder.CodeNotFound {
				return nil, err
			}
			log.Ctx(ctx).Warn().
				Str("path", sourcesPath).
				Msg("sources list not found, using extra repositories only")
		}
		entries = loaded
	}

	var repos []types.Repository
	seen := map[string]bool{}
	add := func(url string) {
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		repos = append(repos, types.Repository{
			OS:        profile.OS,
			Type:      profile.Type,
			Distro:    profile.Distro,
			Component: profile.Component,
			URL:       url,
		})
	}
	for _, entry := range entries {
		if entry.Type != profile.Type {
			continue
		}
		if !strings.EqualFold(entry.Distro, profile.Distro) {
			continue
		}
		for _, component := range entry.Components {
			if strings.EqualFold(component, profile.Component) {
				add(entry.URL)
				break
			}
		}
	}
	for _, url := range extraURLs {
		add(url)
	}
	return repos, nil
}

func (s Service) updateRepository(ctx context.Context, profile types.Profile, repo types.Repository) (repoOutcome, error) {
	logger := log.Ctx(ctx).With().
		Str("url", repo.URL).
		Str("distro", repo.Distro).
		Str("component", repo.Component).
		Logger()

	repoID, err := s.Cache.UpsertRepository(ctx, repo)
	if err != nil {
		return repoOutcome{}, err
	}

	packagesURL, err := core.PackagesIndexURL(repo, profile.Arch)
	if err != nil {
		return repoOutcome{failed: err}, nil
	}
	text, err := s.Indexes.FetchText(ctx, packagesURL)
	if err != nil {
		if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
			logger.Warn().Err(err).Msg("packages index unavailable, skipping repository")
			return repoOutcome{skipped: true}, nil
		}
		logger.Warn().Err(err).Msg("packages index unusable")
		return repoOutcome{failed: err}, nil
	}
	records, err := parsePackageIndex(text)
	if err != nil {
		logger.Warn().Err(err).Msg("packages index malformed, nothing committed")
		return repoOutcome{failed: err}, nil
	}
	added, err := s.Cache.InsertPackages(ctx, repoID, records)
	if err != nil {
		return repoOutcome{}, err
	}
	outcome := repoOutcome{packagesAdded: added, packagesCommitted: true}
	logger.Info().
		Int("stanzas", len(records)).
		Int64("added", added).
		Msg("packages index updated")

	contentsURL, err := core.ContentsIndexURL(repo, profile.Arch)
	if err != nil {
		outcome.failed = err
		return outcome, nil
	}
	text, err = s.Indexes.FetchText(ctx, contentsURL)
	if err != nil {
		if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
			logger.Debug().Msg("contents index unavailable, packages kept")
			return outcome, nil
		}
		logger.Warn().Err(err).Msg("contents index unusable, packages kept")
		outcome.failed = err
		return outcome, nil
	}
	entries, err := parseContentsIndex(text, profile.Arch)
	if err != nil {
		logger.Warn().Err(err).Msg("contents index malformed, packages kept")
		outcome.failed = err
		return outcome, nil
	}
	contentsAdded, err := s.Cache.InsertContents(ctx, repoID, entries)
	if err != nil {
		return repoOutcome{}, err
	}
	outcome.contentsAdded = contentsAdded
	logger.Info().
		Int("entries", len(entries)).
		Int64("added", contentsAdded).
		Msg("contents index updated")
	return outcome, nil
}

// parsePackageIndex materializes every stanza of a packages index.
// Absent fields are stored empty; a garbled size stores as zero. The
// whole index is parsed before anything is returned so a malformed
// stanza anywhere leaves the caller with nothing to commit.
func parsePackageIndex(text string) ([]types.PackageRecord, error) {
	var records []types.PackageRecord
	scanner := core.NewStanzaScanner(strings.NewReader(text))
	for scanner.Scan() {
		stanza := scanner.Stanza()
		record := types.PackageRecord{
			Name:        stanza["Package"],
			Filename:    stanza["Filename"],
			Version:     stanza["Version"],
			Arch:        stanza["Architecture"],
			Depends:     stanza["Depends"],
			PreDepends:  stanza["Pre-Depends"],
			Description: stanza["Description"],
			Section:     stanza["Section"],
			Priority:    stanza["Priority"],
		}
		if raw, ok := stanza.Field("Size"); ok {
			if size, err := strconv.ParseInt(raw, 10, 64); err == nil {
				record.Size = size
			}
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func parseContentsIndex(text string, arch string) ([]types.ContentEntry, error) {
	var entries []types.ContentEntry
	scanner := core.NewContentScanner(strings.NewReader(text))
	for scanner.Scan() {
		entries = append(entries, types.ContentEntry{
			File:     scanner.File(),
			Location: scanner.Location(),
			Arch:     arch,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("malformed index: contents stream unreadable").
			WithCause(err)
	}
	return entries, nil
}
