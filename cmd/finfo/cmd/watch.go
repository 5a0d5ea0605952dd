package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gobeaver/finfo/jsonw"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(a *app) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch [-i OPLIST] [--filter GLOB] FILE...",
		Short: "Print a new report whenever a file changes",
		Long: `watch prints a report for the given files, then a fresh report each
time one of them changes. For directories, changes to entries whose
name matches --filter also count; a filter containing "**" covers
nested directories. Stops on interrupt.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, d, err := a.describer()
			if err != nil {
				return err
			}
			filter := a.cfg.WatchFilter

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("watching", zap.Strings("paths", args), zap.String("filter", filter))
			return d.Watch(ctx, jsonw.New(cmd.OutOrStdout()), args, table, filter)
		},
	}

	watchCmd.Flags().StringP("info", "i", "", "comma-separated operations (default from BEAVER_FINFO_INFO, else stat)")
	watchCmd.Flags().String("digest", "", "digest algorithm: md5, sha1, sha256, sha512, crc32, xxhash")
	watchCmd.Flags().String("filter", "*", "glob selecting directory entries whose changes count")

	return watchCmd
}
