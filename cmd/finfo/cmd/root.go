package cmd

import (
	"fmt"

	"github.com/gobeaver/finfo"
	"github.com/gobeaver/finfo/driver/local"
	"github.com/gobeaver/finfo/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds state shared by all subcommands of one invocation.
type app struct {
	logLevel string
	logDev   bool

	cfg    *finfo.Config
	logger *zap.Logger
}

// NewRootCmd builds the finfo command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "finfo",
		Short: "Describe filesystem objects as JSON",
		Long: `finfo runs a selectable set of operations on each given path and
prints the answers as one JSON array. A failing operation is recorded
in its own slot and never affects the others.

Operations:
  stat      metadata, following symbolic links (default)
  lstat     metadata of the link itself
  readlink  symbolic link target
  ls        directory listing; ls:OP+OP runs OPs on every entry
  digest    hex digest of the content
  mime      content type sniffed from the leading bytes

The token "recursive" enables ls and applies the same operations at
every depth.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default from BEAVER_FINFO_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&a.logDev, "log-dev", false, "human-readable development logging")

	rootCmd.AddCommand(
		newDescribeCmd(a),
		newWatchCmd(a),
		newOpsCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the finfo command.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads configuration, lets flags override it, validates the result
// and builds the logger. Every setup error surfaces here, before any output
// is written.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := finfo.GetConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("log-dev") {
		cfg.LogDevelopment = a.logDev
	}
	if value, ok := changed(cmd, "info"); ok {
		cfg.Info = value
	}
	if value, ok := changed(cmd, "digest"); ok {
		cfg.DigestAlgorithm = value
	}
	if value, ok := changed(cmd, "filter"); ok {
		cfg.WatchFilter = value
	}

	logCfg := logging.DefaultConfig()
	if cfg.LogDevelopment {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}
	logCfg.Output = cmd.ErrOrStderr()
	logger, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logCfg.Level, err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// changed reports the value of a subcommand flag the user set explicitly.
func changed(cmd *cobra.Command, name string) (string, bool) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return "", false
	}
	return f.Value.String(), true
}

// describer builds a Describer over the host filesystem from the validated
// configuration, together with the parsed oplist.
func (a *app) describer() (*finfo.Table, *finfo.Describer, error) {
	table, err := finfo.ParseInfo(a.cfg.Info)
	if err != nil {
		return nil, nil, err
	}

	opts := append(a.cfg.Options(), finfo.WithLogger(a.logger))
	d := finfo.New(local.New(local.WithLogger(a.logger)), opts...)

	a.logger.Debug("describer ready",
		zap.Stringer("table", table),
		zap.String("digest", a.cfg.DigestAlgorithm),
		zap.Int("read_buffer_size", a.cfg.ReadBufferSize),
	)
	return table, d, nil
}
