package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"debdepot/internal/app"
)

func newSearchCommand(scope *scopeOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search [term]...",
		Short: "Search cached packages by name substring",
		Long:  "Search cached packages by name substring. Without a term, every package in the active profile is listed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, scope, args)
		},
	}
}

func runSearch(ctx context.Context, cmd *cobra.Command, scope *scopeOptions, terms []string) error {
	ctx = log.Logger.WithContext(ctx)
	service := newAppService(cmd, scope)
	defer service.Close() //nolint:errcheck

	result, err := service.Search(ctx, app.SearchRequest{
		Scope: profileScope(cmd, scope),
		Terms: terms,
	})
	if err != nil {
		return err
	}
	for _, row := range result.Rows {
		fmt.Printf("%s %s %s %s\n", row.Name, row.Version, row.Arch, row.Section)
	}
	fmt.Printf("%d packages\n", len(result.Rows))
	return nil
}
