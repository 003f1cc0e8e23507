package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"debdepot/internal/app"
)

type downloadOptions struct {
	Dir   string
	Force bool
}

func newDownloadCommand(scope *scopeOptions) *cobra.Command {
	opts := downloadOptions{}
	cmd := &cobra.Command{
		Use:   "download <name>...",
		Short: "Download the dependency closure of packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd.Context(), cmd, scope, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "Download directory")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Refetch payloads already on disk")
	_ = viper.BindPFlag("download_dir", cmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("download_force", cmd.Flags().Lookup("force"))
	return cmd
}

func runDownload(ctx context.Context, cmd *cobra.Command, scope *scopeOptions, opts downloadOptions, names []string) error {
	ctx = log.Logger.WithContext(ctx)
	service := newAppService(cmd, scope)
	defer service.Close() //nolint:errcheck

	result, err := service.Download(ctx, app.DownloadRequest{
		Scope: profileScope(cmd, scope),
		Names: names,
		Dir:   resolveString(cmd, opts.Dir, "download_dir", "dir"),
		Force: resolveBool(cmd, opts.Force, "download_force", "force"),
	})
	if err != nil {
		return err
	}
	for _, file := range result.Fetched {
		fmt.Printf("fetched: %s\n", file)
	}
	for _, file := range result.Skipped {
		fmt.Printf("kept: %s\n", file)
	}
	for _, name := range result.Missing {
		fmt.Printf("missing: %s\n", name)
	}
	fmt.Printf("%d fetched, %d kept, %d missing\n",
		len(result.Fetched), len(result.Skipped), len(result.Missing))
	return nil
}
