package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"linkstats/internal/config"
	"linkstats/internal/logging"
)

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "linkstats",
		Short:         "Normalize link analytics payloads",
		Long:          `Reads analytics documents in any of the shapes the backend has produced and prints the normalized time series, breakdowns, hourly buckets, flow graph and recent visits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (defaults and LINKSTATS_* env otherwise)")

	root.AddCommand(
		newNormalizeCmd(a),
		newResolveCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logging.NewWithWriter(a.cfg, a.stderr)
	a.logger.Debug("Configuration loaded",
		slog.String("environment", a.cfg.Environment),
		slog.String("format", a.cfg.OutputFormat),
		slog.Int("workers", a.cfg.Workers))
	return nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the linkstats version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(a.stdout, "linkstats "+version+"\n")
			return err
		},
	}
}
