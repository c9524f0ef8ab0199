package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"linkstats/internal/analytics"
	"linkstats/internal/batch"
	"linkstats/internal/config"
	"linkstats/internal/enrich"
	"linkstats/internal/pkg/geoip"
)

// ErrUnknownView is returned for an --only value that names no extractor.
var ErrUnknownView = errors.New("unknown view")

type normalizeOptions struct {
	format string
	enrich bool
	only   string
}

// namedOutput is one entry of the output when several documents are normalized.
type namedOutput struct {
	Source string `json:"source" yaml:"source"`
	Output any    `json:"output" yaml:"output"`
}

func newNormalizeCmd(a *app) *cobra.Command {
	opts := &normalizeOptions{}

	cmd := &cobra.Command{
		Use:   "normalize [file...]",
		Short: "Normalize analytics documents",
		Long: `Normalizes each document and prints the resulting report. Reads stdin when no file
or "-" is given. Files ending in .yaml or .yml are read as YAML, everything else as JSON.`,
		Example: `  linkstats normalize stats.json
  curl -s $API/stats | linkstats normalize --only countries --enrich`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("enrich") {
				a.cfg.Enrich = opts.enrich
			}
			if cmd.Flags().Changed("format") {
				if opts.format != config.FormatJSON && opts.format != config.FormatYAML {
					return fmt.Errorf("%w: output format %q", config.ErrInvalidConfig, opts.format)
				}
				a.cfg.OutputFormat = opts.format
			}
			return a.runNormalize(cmd, args, opts.only)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", config.FormatJSON, "output format: json or yaml")
	cmd.Flags().BoolVar(&opts.enrich, "enrich", false, "add display names, GeoIP countries and referrer labels")
	cmd.Flags().StringVar(&opts.only, "only", "", "print a single view: "+strings.Join(analytics.Views, ", "))
	return cmd
}

func (a *app) runNormalize(cmd *cobra.Command, args []string, only string) error {
	if only != "" && !isView(only) {
		return fmt.Errorf("%w %q, expected one of %s", ErrUnknownView, only, strings.Join(analytics.Views, ", "))
	}
	if len(args) == 0 {
		args = []string{batch.Stdin}
	}

	inputs, err := batch.Load(args, a.stdin)
	if err != nil {
		return err
	}

	var enricher *enrich.Enricher
	if a.cfg.Enrich {
		locator := a.openLocator()
		defer locator.Close()
		enricher = enrich.New(locator, a.logger)
	}

	results := batch.Run(cmd.Context(), inputs, batch.Options{
		Workers:  a.cfg.Workers,
		Enricher: enricher,
		Logger:   a.logger,
	})

	outputs := make([]namedOutput, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			return res.Err
		}
		var out any = res.Report
		if only != "" {
			out, _ = res.Report.View(only)
		}
		outputs = append(outputs, namedOutput{Source: res.Name, Output: out})
	}

	a.logger.Info("Normalized documents", slog.Int("count", len(outputs)), slog.Bool("enriched", enricher != nil))

	if len(outputs) == 1 {
		return a.write(outputs[0].Output)
	}
	return a.write(outputs)
}

// openLocator returns nil, which is a valid Locator, when no database can be used.
func (a *app) openLocator() *geoip.Locator {
	if a.cfg.GeoDBPath == "" {
		return nil
	}
	locator, err := geoip.Open(a.cfg.GeoDBPath, a.logger)
	if err != nil {
		a.logger.Warn("GeoIP disabled", slog.Any("error", err))
		return nil
	}
	return locator
}

func isView(name string) bool {
	for _, v := range analytics.Views {
		if v == name {
			return true
		}
	}
	return false
}
