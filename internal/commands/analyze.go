package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/M1doriya/Analysis-PRO/internal/config"
	"github.com/M1doriya/Analysis-PRO/internal/services"
)

func newAnalyzeCommand() *cobra.Command {
	var profilePath string
	var outputPath string
	var compact bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one analysis from a profile file and print the report JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(profilePath, outputPath, compact)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "path to the analysis profile YAML (required)")
	_ = cmd.MarkFlagRequired("profile")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&compact, "compact", false, "emit the report on a single line")

	return cmd
}

func runAnalyze(profilePath, outputPath string, compact bool) error {
	cfg := config.Load()
	// The report goes to stdout, so logs must not.
	setupLogger(cfg.Logging, os.Stderr)

	profile, err := config.LoadProfile(profilePath)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	input, err := profile.BuildInput(filepath.Dir(profilePath))
	if err != nil {
		return fmt.Errorf("loading statements: %w", err)
	}

	svc := buildAnalysisService(&cfg.Engine, services.NewNoopMetricsRecorder())
	result, err := svc.Analyze(input)
	if err != nil {
		return fmt.Errorf("running analysis: %w", err)
	}

	if result.DroppedTransactions > 0 {
		fmt.Fprintf(os.Stderr, "dropped %d malformed transactions during sanitation\n", result.DroppedTransactions)
	}

	var out []byte
	if compact {
		out, err = json.Marshal(result.Report)
	} else {
		out, err = json.MarshalIndent(result.Report, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	out = append(out, '\n')

	if outputPath != "" {
		if err := os.WriteFile(outputPath, out, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "report written to %s\n", outputPath)
		return nil
	}

	_, err = os.Stdout.Write(out)
	return err
}
