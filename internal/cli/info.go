package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"debdepot/internal/app"
	"debdepot/internal/types"
)

func newInfoCommand(scope *scopeOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <name>...",
		Short: "Show every cached record for the named packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), cmd, scope, args)
		},
	}
}

func runInfo(ctx context.Context, cmd *cobra.Command, scope *scopeOptions, names []string) error {
	ctx = log.Logger.WithContext(ctx)
	service := newAppService(cmd, scope)
	defer service.Close() //nolint:errcheck

	result, err := service.Info(ctx, app.InfoRequest{
		Scope: profileScope(cmd, scope),
		Names: names,
	})
	if err != nil {
		return err
	}
	for i, row := range result.Rows {
		if i > 0 {
			fmt.Println()
		}
		printPackageRow(row)
	}
	for _, name := range result.Missing {
		fmt.Printf("not cached: %s\n", name)
	}
	return nil
}

func printPackageRow(row types.PackageRow) {
	fmt.Printf("Package: %s\n", row.Name)
	fmt.Printf("Version: %s\n", row.Version)
	fmt.Printf("Architecture: %s\n", row.Arch)
	if row.Section != "" {
		fmt.Printf("Section: %s\n", row.Section)
	}
	if row.Priority != "" {
		fmt.Printf("Priority: %s\n", row.Priority)
	}
	if row.Depends != "" {
		fmt.Printf("Depends: %s\n", row.Depends)
	}
	if row.PreDepends != "" {
		fmt.Printf("Pre-Depends: %s\n", row.PreDepends)
	}
	fmt.Printf("Filename: %s\n", row.Filename)
	fmt.Printf("Size: %d\n", row.Size)
	fmt.Printf("Repository: %s %s/%s\n", row.RepoURL, row.RepoDistro, row.RepoComponent)
	if row.Description != "" {
		fmt.Printf("Description: %s\n", row.Description)
	}
}
