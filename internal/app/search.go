package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"debdepot/internal/core"
	"debdepot/internal/types"
)

// Search matches package names by substring. Every matching row is
// returned, so a package cached for several versions or architectures
// shows up once per row, ordered by name and then descending version.
func (s Service) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	profile, err := s.resolveProfile(ctx, req.Scope)
	if err != nil {
		return SearchResult{}, err
	}
	rows, err := s.Cache.FindPackages(ctx, profile, cleanArgs(req.Terms), types.MatchSubstring)
	if err != nil {
		return SearchResult{}, err
	}
	core.SortPackageRows(rows)
	return SearchResult{Profile: profile, Rows: rows}, nil
}

// Info looks packages up by exact name and reports every stored row,
// plus the requested names that have no cached row at all.
func (s Service) Info(ctx context.Context, req InfoRequest) (InfoResult, error) {
	profile, err := s.resolveProfile(ctx, req.Scope)
	if err != nil {
		return InfoResult{}, err
	}
	names := cleanArgs(req.Names)
	if len(names) == 0 {
		return InfoResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one package name is required")
	}
	rows, err := s.Cache.FindPackages(ctx, profile, names, types.MatchExact)
	if err != nil {
		return InfoResult{}, err
	}
	core.SortPackageRows(rows)

	found := map[string]bool{}
	for _, row := range rows {
		found[row.Name] = true
	}
	var missing []string
	for _, name := range names {
		if !found[name] {
			missing = append(missing, name)
		}
	}
	return InfoResult{Profile: profile, Rows: rows, Missing: missing}, nil
}

// cleanArgs trims the raw argument list and drops blanks and
// duplicates, keeping first-seen order.
func cleanArgs(args []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" || seen[arg] {
			continue
		}
		seen[arg] = true
		out = append(out, arg)
	}
	return out
}
