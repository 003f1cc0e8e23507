package app

import (
	"context"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"debdepot/internal/types"
)

// SearchFiles answers "which package ships this file" by substring
// match over the cached contents index. Results from all patterns are
// merged and deduplicated.
func (s Service) SearchFiles(ctx context.Context, req FilesRequest) (FilesResult, error) {
	profile, err := s.resolveProfile(ctx, req.Scope)
	if err != nil {
		return FilesResult{}, err
	}
	patterns := cleanArgs(req.Patterns)
	if len(patterns) == 0 {
		return FilesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one file pattern is required")
	}

	seen := map[string]bool{}
	var entries []types.ContentEntry
	for _, pattern := range patterns {
		found, err := s.Cache.FindContents(ctx, profile, pattern)
		if err != nil {
			return FilesResult{}, err
		}
		for _, entry := range found {
			key := entry.File + "\x00" + entry.Location
			if seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].File != entries[j].File {
			return entries[i].File < entries[j].File
		}
		return entries[i].Location < entries[j].Location
	})
	return FilesResult{Profile: profile, Entries: entries}, nil
}
