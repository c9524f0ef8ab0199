package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"linkstats/internal/analytics"
	"linkstats/internal/batch"
)

// ErrPathNotFound is returned when none of the paths resolve.
var ErrPathNotFound = errors.New("path not found")

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <file> <path...>",
		Short: "Print the raw value at the first path that resolves",
		Long: `Looks up dotted paths in a document the way the extractors do, unwrapping a "data"
envelope first. Numeric components index arrays. Use "-" to read stdin.`,
		Example: `  linkstats resolve stats.json data.countries.0 countries.0`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := batch.Load(args[:1], a.stdin)
			if err != nil {
				return err
			}

			paths := args[1:]
			value, ok := analytics.Resolve(inputs[0].Doc, paths...)
			if !ok {
				return fmt.Errorf("%w: %s", ErrPathNotFound, strings.Join(paths, ", "))
			}
			return a.write(value)
		},
	}
}
