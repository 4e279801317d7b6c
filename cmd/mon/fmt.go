package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mycel-lang/mon/mon"
)

var fmtIndent string

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print a document's canonical JSON projection",
		Args:  cobra.ExactArgs(1),
		RunE:  runFmt,
	}
	cmd.Flags().StringVar(&fmtIndent, "indent", "  ", "indent JSON output by this string (empty for compact)")
	return cmd
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := args[0]

	logger, cleanup, err := setupLogger(logLevel, logFile, effectiveRequestID())
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer cleanup()

	text, originPath, err := readSource(path)
	if err != nil {
		return err
	}

	opts := []mon.Option{
		mon.WithLogger(logger),
		mon.WithIndent(fmtIndent),
	}
	if root := canonicalModuleRoot(moduleRoot); root != "" {
		opts = append(opts, mon.WithModuleRoot(root))
	}

	doc, res, err := mon.Analyze(text, originPath, opts...)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", path, err)
	}
	if !res.OK() {
		printDiagnostics(cmd.ErrOrStderr(), res)
		return fmt.Errorf("%s: analysis failed", path)
	}

	out, err := doc.ToJSON()
	if err != nil {
		return fmt.Errorf("serialize %s: %w", path, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
