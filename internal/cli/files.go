package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"debdepot/internal/app"
)

func newFilesCommand(scope *scopeOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "files <substring>...",
		Short: "Find which packages ship matching file paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(cmd.Context(), cmd, scope, args)
		},
	}
}

func runFiles(ctx context.Context, cmd *cobra.Command, scope *scopeOptions, patterns []string) error {
	ctx = log.Logger.WithContext(ctx)
	service := newAppService(cmd, scope)
	defer service.Close() //nolint:errcheck

	result, err := service.SearchFiles(ctx, app.FilesRequest{
		Scope:    profileScope(cmd, scope),
		Patterns: patterns,
	})
	if err != nil {
		return err
	}
	for _, entry := range result.Entries {
		fmt.Printf("%s %s\n", entry.File, entry.Location)
	}
	fmt.Printf("%d files\n", len(result.Entries))
	return nil
}
