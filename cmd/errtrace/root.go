package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/thanhminhmr/go-errtrace/configuration"
	"github.com/thanhminhmr/go-errtrace/stacktrace"
)

var (
	configFile string
	rootCmd    = &cobra.Command{
		Use:   "errtrace",
		Short: "Render Go errors as bounded stack traces",
		Long: `errtrace previews how errors are rendered into the stack_trace and
stack_hash fields of a log record, and serves a demo HTTP server whose
panics are logged the same way.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if configFile == "" {
				return nil
			}
			return configuration.LoadFile(configFile)
		},
	}
)

// evaluators can be referenced by name in STACKTRACE_OPTIONS or --options.
var evaluators = map[string]stacktrace.Evaluator{
	"canceled":   stacktrace.MatchError(context.Canceled),
	"belowError": stacktrace.BelowLevel(zerolog.ErrorLevel),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML file of STACKTRACE_* and HTTP_SERVER_* settings")
	rootCmd.AddCommand(renderCmd, serveCmd)
}
