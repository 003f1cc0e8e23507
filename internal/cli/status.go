package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"debdepot/internal/app"
)

func newStatusCommand(scope *scopeOptions) *cobra.Command {
	runs := 0
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show cached repositories and recent update runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context(), cmd, scope, runs)
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 5, "Update runs to show")
	_ = viper.BindPFlag("status_runs", cmd.Flags().Lookup("runs"))
	return cmd
}

func runStatus(ctx context.Context, cmd *cobra.Command, scope *scopeOptions, runs int) error {
	ctx = log.Logger.WithContext(ctx)
	service := newAppService(cmd, scope)
	defer service.Close() //nolint:errcheck

	result, err := service.Status(ctx, app.StatusRequest{
		Scope:    profileScope(cmd, scope),
		RunLimit: resolveInt(cmd, runs, "status_runs", "runs"),
	})
	if err != nil {
		return err
	}
	profile := result.Profile
	fmt.Printf("profile: %s %s %s %s %s\n",
		profile.OS, profile.Type, profile.Distro, profile.Component, profile.Arch)
	for _, repo := range result.Repositories {
		fmt.Printf("%s: %d packages, %d content entries\n",
			repo.URL, repo.PackageCount, repo.ContentCount)
	}
	for _, run := range result.Runs {
		fmt.Printf("run %s at %s: %d updated, %d skipped, %d failed, %d packages, %d contents\n",
			run.ID, run.StartedAt.Format(time.RFC3339), run.ReposUpdated, run.ReposSkipped,
			run.ReposFailed, run.PackagesAdded, run.ContentsAdded)
	}
	return nil
}
