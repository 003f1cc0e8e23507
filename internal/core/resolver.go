package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"debdepot/internal/ports"
	"debdepot/internal/types"
)

// Resolver computes the transitive dependency closure of a set of root
// clauses against the cache. Version constraints are carried through to
// the result for reporting but never restrict which candidate is
// chosen, and there is no backtracking: each name is resolved at most
// once, which is also the sole cycle breaker.
type Resolver struct {
	finder ports.PackageFinderPort
}

func NewResolver(finder ports.PackageFinderPort) *Resolver {
	return &Resolver{finder: finder}
}

// Resolve walks the dependency graph rooted at clauses breadth first.
// Each wave of unresolved names is looked up in one exact-match cache
// query; for a name with several cached rows the highest Debian version
// wins and only that row's Depends value contributes further edges.
// Pre-Depends is carried on the record but never expanded. Names with
// no cached row are recorded as missing rather than failing the
// resolution, and a malformed Depends value skips only its unparseable
// elements. Depth is bounded only by the cached graph itself.
func (r *Resolver) Resolve(ctx context.Context, profile types.Profile, clauses []types.Clause) (types.Resolution, error) {
	assert.NotEmpty(ctx, profile.Distro, "profile distro must be set before resolving")
	assert.NotEmpty(ctx, profile.Arch, "profile arch must be set before resolving")

	resolution := types.Resolution{Packages: map[string]types.ResolvedPackage{}}
	requirements := map[string]types.Clause{}
	seen := map[string]bool{}

	var worklist []string
	enqueue := func(clause types.Clause) {
		if seen[clause.Name] {
			return
		}
		seen[clause.Name] = true
		requirements[clause.Name] = clause
		worklist = append(worklist, clause.Name)
	}
	for _, clause := range clauses {
		enqueue(clause)
	}

	for len(worklist) > 0 {
		wave := worklist
		worklist = nil

		rows, err := r.finder.FindPackages(ctx, profile, wave, types.MatchExact)
		if err != nil {
			return types.Resolution{}, err
		}
		byName := map[string][]types.PackageRow{}
		for _, row := range rows {
			byName[row.Name] = append(byName[row.Name], row)
		}

		for _, name := range wave {
			candidates := byName[name]
			if len(candidates) == 0 {
				resolution.Missing = append(resolution.Missing, name)
				continue
			}
			chosen := highestVersionRow(candidates)
			resolution.Packages[name] = types.ResolvedPackage{
				PackageRow:  chosen,
				Requirement: requirements[name],
			}
			next, err := ParseDependencies(chosen.Depends)
			if err != nil {
				log.Ctx(ctx).Warn().
					Str("package", name).
					Str("version", chosen.Version).
					Err(err).
					Msg("skipping unparseable dependency elements")
			}
			for _, clause := range next {
				enqueue(clause)
			}
		}
	}

	log.Ctx(ctx).Debug().
		Int("resolved", len(resolution.Packages)).
		Int("missing", len(resolution.Missing)).
		Msg("dependency closure complete")
	return resolution, nil
}
