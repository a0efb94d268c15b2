package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Options holds the command flags.
type Options struct {
	ConfigURL    string
	AssetBaseURL string
	TraceFile    string
}

// NewRootCommand creates the srtworker command. It reads one JSON request per
// line from stdin and writes one JSON response per line to stdout.
func NewRootCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "srtworker",
		Short: "Subtitle conversion dispatcher",
		Long: `Reads addFile and preloadDict requests as JSON lines from stdin and
writes one response per addFile to stdout, in completion order.

Example:
  echo '{"action":"addFile","id":1,"file":"/tmp/a.ass"}' | srtworker --assets file:///tmp/out`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			parentCtx := cmd.Context()
			if parentCtx == nil {
				parentCtx = context.Background()
			}
			ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return Serve(ctx, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.ConfigURL, "config", "", "YAML config URL (file path, file://, mem://, s3:// ...)")
	cmd.Flags().StringVar(&opts.AssetBaseURL, "assets", "", "base URL for converted outputs, overrides the config")
	cmd.Flags().StringVar(&opts.TraceFile, "trace", "", "write OpenTelemetry spans to this file")
	return cmd
}
