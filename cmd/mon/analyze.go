package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/mon"
)

var (
	analyzeIndent     string
	analyzeIssueLimit int
	analyzeQuiet      bool
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Parse, resolve, and type-validate a document, printing diagnostics and canonical JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	cmd.Flags().StringVar(&analyzeIndent, "indent", "", "indent JSON output by this string (default: compact)")
	cmd.Flags().IntVar(&analyzeIssueLimit, "issue-limit", 100, "maximum diagnostics to collect (0 for unlimited)")
	cmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false, "suppress JSON output, print only diagnostics")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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
		mon.WithIssueLimit(analyzeIssueLimit),
		mon.WithIndent(analyzeIndent),
	}
	if root := canonicalModuleRoot(moduleRoot); root != "" {
		opts = append(opts, mon.WithModuleRoot(root))
	}

	doc, res, err := mon.Analyze(text, originPath, opts...)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", path, err)
	}

	printDiagnostics(cmd.ErrOrStderr(), res)

	if !res.OK() {
		return fmt.Errorf("%s: analysis failed", path)
	}

	if analyzeQuiet {
		return nil
	}

	out, err := doc.ToJSON()
	if err != nil {
		return fmt.Errorf("serialize %s: %w", path, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// readSource reads path ("-" for stdin) and returns its content along with
// the origin path Analyze should use for diagnostics and default import
// resolution. Stdin input has no directory of its own, so relative imports
// from it require --module-root.
func readSource(path string) (text, originPath string, err error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin://-", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), path, nil
}

// printDiagnostics renders one line per issue plus a summary, in the order
// of res.IssuesSlice(): sorted by source position, then by code.
func printDiagnostics(w io.Writer, res diag.Result) {
	for _, issue := range res.IssuesSlice() {
		loc := "<no location>"
		if issue.HasSpan() {
			loc = issue.Span().String()
		}
		fmt.Fprintf(w, "%s: %s: %s: %s\n", loc, issue.Severity(), issue.Code(), issue.Message())
		if hint := issue.Hint(); hint != "" {
			fmt.Fprintf(w, "  hint: %s\n", hint)
		}
	}
	if res.Len() > 0 {
		fmt.Fprintln(w, res.String())
	}
}
