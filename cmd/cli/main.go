package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"structdetect/adapters/excel"
	"structdetect/app"
	"structdetect/internal"
	"structdetect/internal/config"
	"structdetect/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "structdetect-cli",
		Short:         "Detect and classify tabular text pasted from spreadsheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newCheckCmd(),
		newDetectCmd(),
		newProfileCmd(),
	)
	return rootCmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file|-]",
		Short: "Run only the cheap structured-data pre-check",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runCheck(cmd, args)
			if err != nil {
				return err
			}
			if result.Structured {
				fmt.Fprintln(cmd.OutOrStdout(), "structured")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "not structured")
			}
			return nil
		},
	}
}

func newDetectCmd() *cobra.Command {
	var asJSON, asYAML bool
	var preview int

	cmd := &cobra.Command{
		Use:   "detect [file|-]",
		Short: "Detect the entity list in a paste or spreadsheet file",
		Long: `Detect the delimiter, headers and entity type of tabular text.

Reads stdin when no file (or "-") is given. Files ending in .csv, .tsv,
.txt or .xlsx are converted to pasted-text form first.

Example: pbpaste | structdetect-cli detect --preview 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := runDetect(cmd, args, preview)
			if err != nil {
				return err
			}
			switch {
			case asJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(outcome)
			case asYAML:
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(outcome); err != nil {
					return err
				}
				return enc.Close()
			}
			printOutcome(cmd.OutOrStdout(), outcome)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the full result as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	cmd.Flags().IntVar(&preview, "preview", 0, "Number of rows to preview (default from PREVIEW_ROWS)")

	return cmd
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile [file|-]",
		Short: "Detect, then profile each column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := runDetect(cmd, args, 0)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, outcome.Result.Summary)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "COLUMN\tKIND\tFILLED\tDISTINCT\tRANGE")
			for _, p := range outcome.Profiles {
				valueRange := "-"
				if p.Numeric != nil {
					valueRange = fmt.Sprintf("%g..%g (median %g)", p.Numeric.Min, p.Numeric.Max, p.Numeric.Median)
				}
				fmt.Fprintf(tw, "%s\t%s\t%.0f%%\t%d\t%s\n", p.Header, p.Kind, p.FillRate*100, p.Distinct, valueRange)
			}
			return tw.Flush()
		},
	}
}

// newService builds a detection service without history for one-shot use
func newService(preview int) (*app.DetectionService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Detection.HistoryEnabled = false
	if preview > 0 {
		cfg.Detection.PreviewRows = preview
	}

	level := internal.LogLevelWarn
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level = internal.ParseLogLevel(v)
	}

	c, err := container.New(cfg, internal.NewLogger(level))
	if err != nil {
		return nil, err
	}
	return c.DetectionService, nil
}

func runDetect(cmd *cobra.Command, args []string, preview int) (*app.DetectionOutcome, error) {
	svc, err := newService(preview)
	if err != nil {
		return nil, err
	}

	if path := inputPath(args); path != "" {
		if _, ok := excel.KindOf(path); ok {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()
			return svc.DetectFile(cmd.Context(), path, f)
		}
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	return svc.Detect(cmd.Context(), text)
}

// runCheck sends files with a known extension through the upload reader, so a
// workbook is checked as its cell text rather than its raw bytes
func runCheck(cmd *cobra.Command, args []string) (app.CheckResult, error) {
	svc, err := newService(0)
	if err != nil {
		return app.CheckResult{}, err
	}

	if path := inputPath(args); path != "" {
		if _, ok := excel.KindOf(path); ok {
			f, err := os.Open(path)
			if err != nil {
				return app.CheckResult{}, fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()
			return svc.CheckFile(cmd.Context(), path, f)
		}
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return app.CheckResult{}, err
	}
	return svc.Check(cmd.Context(), text), nil
}

// inputPath returns the file argument, or "" for stdin
func inputPath(args []string) string {
	if len(args) == 0 || args[0] == "-" {
		return ""
	}
	return args[0]
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	path := inputPath(args)
	if path == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func printOutcome(out io.Writer, outcome *app.DetectionOutcome) {
	result := outcome.Result
	fmt.Fprintln(out, result.Summary)
	fmt.Fprintf(out, "Type: %s  Confidence: %.0f%%\n", result.Type, result.Confidence*100)
	if outcome.ReviewRequired {
		fmt.Fprintln(out, "Review required before import")
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(result.Headers, "\t"))
	for _, row := range outcome.Preview {
		values := make([]string, len(result.Headers))
		for i, h := range result.Headers {
			values[i] = row[h]
		}
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}
	tw.Flush()

	if hidden := len(result.Rows) - len(outcome.Preview); hidden > 0 {
		fmt.Fprintf(out, "... %d more\n", hidden)
	}
}

// executeContext runs the root command with the given args and I/O; used by tests
func executeContext(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	return root.ExecuteContext(ctx)
}
