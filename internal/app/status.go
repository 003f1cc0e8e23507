package app

import "context"

// Status reports the repositories cached for the profile, with row
// counts, and the most recent update runs.
func (s Service) Status(ctx context.Context, req StatusRequest) (StatusResult, error) {
	profile, err := s.resolveProfile(ctx, req.Scope)
	if err != nil {
		return StatusResult{}, err
	}
	repos, err := s.Cache.ListRepositories(ctx, profile)
	if err != nil {
		return StatusResult{}, err
	}
	limit := req.RunLimit
	if limit <= 0 {
		limit = 5
	}
	runs, err := s.Cache.ListUpdateRuns(ctx, limit)
	if err != nil {
		return StatusResult{}, err
	}
	return StatusResult{Profile: profile, Repositories: repos, Runs: runs}, nil
}
