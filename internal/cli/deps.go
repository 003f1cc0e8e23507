package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"debdepot/internal/app"
)

func newDepsCommand(scope *scopeOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deps <name>...",
		Short: "Resolve the transitive dependency closure of packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(cmd.Context(), cmd, scope, args)
		},
	}
}

func runDeps(ctx context.Context, cmd *cobra.Command, scope *scopeOptions, names []string) error {
	ctx = log.Logger.WithContext(ctx)
	service := newAppService(cmd, scope)
	defer service.Close() //nolint:errcheck

	result, err := service.Deps(ctx, app.DepsRequest{
		Scope: profileScope(cmd, scope),
		Names: names,
	})
	if err != nil {
		return err
	}
	for _, pkg := range result.Packages {
		fmt.Printf("%s %s %s %d (wanted: %s)\n",
			pkg.Name, pkg.Version, pkg.Arch, pkg.Size, pkg.Requirement)
	}
	for _, name := range result.Missing {
		fmt.Printf("missing: %s\n", name)
	}
	fmt.Printf("%d resolved, %d missing\n", len(result.Packages), len(result.Missing))
	return nil
}
