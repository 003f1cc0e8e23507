package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"debdepot/internal/app"
)

func newUpdateCommand(scope *scopeOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Fetch repository indexes into the local cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd.Context(), cmd, scope)
		},
	}
}

func runUpdate(ctx context.Context, cmd *cobra.Command, scope *scopeOptions) error {
	ctx = log.Logger.WithContext(ctx)
	service := newAppService(cmd, scope)
	defer service.Close() //nolint:errcheck

	result, err := service.Update(ctx, app.UpdateRequest{
		Scope:       profileScope(cmd, scope),
		SourcesPath: resolveString(cmd, scope.Sources, "sources", "sources"),
		RepoURLs:    resolveStrings(cmd, scope.Repos, "repos", "repo"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("updated %d repositories (%d skipped, %d failed): %d packages, %d content entries added\n",
		result.ReposUpdated, result.ReposSkipped, result.ReposFailed,
		result.PackagesAdded, result.ContentsAdded)
	return nil
}
