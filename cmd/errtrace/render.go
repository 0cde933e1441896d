package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/thanhminhmr/go-errtrace/exception"
	"github.com/thanhminhmr/go-errtrace/log"
	"github.com/thanhminhmr/go-errtrace/stacktrace"
)

const (
	errLoadInvoice = exception.String("load invoice failed")
	errReadInvoice = exception.String("read invoice failed")
	errCloseStore  = exception.String("close store failed")
)

var (
	renderOptions []string
	renderJSON    bool
	renderLevel   string
	renderCmd     = &cobra.Command{
		Use:   "render",
		Short: "Render a sample error with the configured policy",
		Long: `render builds a sample error with a cause and a suppressed error and
prints its stack trace and stack hashes. The policy is read from the
STACKTRACE_* settings; --options overrides them, for example

	errtrace render --options short,full,2048,rootFirst,inlineHash`,
		Args: cobra.NoArgs,
		RunE: runRender,
	}
)

func init() {
	renderCmd.Flags().StringSliceVar(&renderOptions, "options", nil, "option list: depth, class name length, max length, then flags or exclusions")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "print the sample as a JSON log record")
	renderCmd.Flags().StringVar(&renderLevel, "level", "error", "log level of the sample event")
}

func runRender(cmd *cobra.Command, _ []string) error {
	level, err := zerolog.ParseLevel(renderLevel)
	if err != nil {
		return err
	}
	config, err := stacktrace.LoadConfig()
	if err != nil {
		return err
	}
	if len(renderOptions) > 0 {
		config.Options = renderOptions
	}
	sample := loadInvoice("INV-42")

	if renderJSON {
		renderer, err := log.NewRenderer(config, evaluators)
		if err != nil {
			return err
		}
		logger := log.NewJSONLogger(cmd.OutOrStdout(), nil)
		renderer.Log(logger, level, sample, "Sample error")
		return nil
	}

	policy, err := config.Policy(evaluators)
	if err != nil {
		return err
	}
	formatter := stacktrace.NewFormatter(policy)
	text := formatter.Format(stacktrace.Event{Level: level, Message: "Sample error", Error: sample})
	if text == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "(excluded by an evaluator)")
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	if policy.LineSeparator() != stacktrace.DefaultLineSeparator {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	hasher := stacktrace.NewHasher(stacktrace.DefaultFilter())
	for index, hash := range hasher.Hashes(formatter.Record(sample)) {
		fmt.Fprintf(cmd.OutOrStdout(), "stack hash %d: %s\n", index, hash)
	}
	return nil
}

// ========================================

func loadInvoice(id string) error {
	if err := readInvoice(id); err != nil {
		return errLoadInvoice.
			SetMessage("invoice %s", id).
			AddCause(err).
			AddSuppressed(closeStore()).
			FillStackTrace(0)
	}
	return nil
}

func readInvoice(id string) error {
	file, err := os.Open(filepath.Join(os.TempDir(), "errtrace-missing", id+".json"))
	if err != nil {
		return errReadInvoice.SetMessage("%s", id).AddCause(err).FillStackTrace(0)
	}
	return file.Close()
}

func closeStore() error {
	return errCloseStore.SetMessage("connection reset").FillStackTrace(0)
}
