package app

import (
	"context"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"debdepot/internal/core"
	"debdepot/internal/types"
)

// Deps computes the transitive dependency closure of the requested
// package names. Names the cache cannot satisfy are reported in
// Missing rather than failing the call.
func (s Service) Deps(ctx context.Context, req DepsRequest) (DepsResult, error) {
	profile, err := s.resolveProfile(ctx, req.Scope)
	if err != nil {
		return DepsResult{}, err
	}
	names := cleanArgs(req.Names)
	if len(names) == 0 {
		return DepsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one package name is required")
	}
	resolution, err := s.resolveClosure(ctx, profile, names)
	if err != nil {
		return DepsResult{}, err
	}
	packages := make([]types.ResolvedPackage, 0, len(resolution.Packages))
	for _, pkg := range resolution.Packages {
		packages = append(packages, pkg)
	}
	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Name < packages[j].Name
	})
	missing := append([]string(nil), resolution.Missing...)
	sort.Strings(missing)
	return DepsResult{Profile: profile, Packages: packages, Missing: missing}, nil
}

// resolveClosure runs the worklist resolver with one bare clause per
// requested name.
func (s Service) resolveClosure(ctx context.Context, profile types.Profile, names []string) (types.Resolution, error) {
	clauses := make([]types.Clause, 0, len(names))
	for _, name := range names {
		clauses = append(clauses, types.Clause{Name: name})
	}
	return core.NewResolver(s.Cache).Resolve(ctx, profile, clauses)
}
