package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/webprobe-dev/webprobe/internal/core"
	"github.com/webprobe-dev/webprobe/internal/fsutil"
	"github.com/webprobe-dev/webprobe/internal/service"
)

var (
	runTargetURL  string
	runCandidates int
	runExecute    int
	runCategories []string
	runID         string
	campaignFile  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a test campaign against a target URL",
	Long: `Run walks the full pipeline against the target URL: candidate test
cases are generated, ranked, executed, analyzed and consolidated into a
final report. The analysis and workflow reports are persisted in the
configured report store.`,
	RunE: runRun,
}

// campaignSpec mirrors the campaign YAML file format.
type campaignSpec struct {
	TargetURL  string   `yaml:"target_url"`
	Candidates int      `yaml:"candidates"`
	Execute    int      `yaml:"execute"`
	Categories []string `yaml:"categories"`
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runTargetURL, "url", "", "target URL to test")
	runCmd.Flags().IntVar(&runCandidates, "candidates", 0, "number of candidate test cases to generate")
	runCmd.Flags().IntVar(&runExecute, "execute", 0, "number of test cases to execute")
	runCmd.Flags().StringSliceVar(&runCategories, "categories", nil, "test categories (functional, edge_case, performance, ui_validation)")
	runCmd.Flags().StringVar(&runID, "run-id", "", "explicit run ID (default: generated)")
	runCmd.Flags().StringVarP(&campaignFile, "campaign", "f", "", "campaign YAML file")
}

func runRun(cmd *cobra.Command, _ []string) error {
	spec := campaignSpec{
		TargetURL:  cfg.Campaign.TargetURL,
		Candidates: cfg.Campaign.Candidates,
		Execute:    cfg.Campaign.Execute,
		Categories: cfg.Campaign.Categories,
	}

	if campaignFile != "" {
		data, err := fsutil.ReadFileScoped(campaignFile)
		if err != nil {
			return fmt.Errorf("reading campaign file: %w", err)
		}
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return fmt.Errorf("parsing campaign file: %w", err)
		}
	}

	// Flags beat both the campaign file and the config.
	if cmd.Flags().Changed("url") {
		spec.TargetURL = runTargetURL
	}
	if cmd.Flags().Changed("candidates") {
		spec.Candidates = runCandidates
	}
	if cmd.Flags().Changed("execute") {
		spec.Execute = runExecute
	}
	if cmd.Flags().Changed("categories") {
		spec.Categories = runCategories
	}

	if spec.TargetURL == "" {
		return fmt.Errorf("no target URL: set --url, the campaign file, or campaign.target_url in the config")
	}

	categories := make([]core.Category, 0, len(spec.Categories))
	for _, c := range spec.Categories {
		categories = append(categories, core.ParseCategory(c))
	}

	st, err := buildStack(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.close() }()

	out := cmd.OutOrStdout()
	report, err := st.manager.Run(cmd.Context(), service.RunRequest{
		RunID: core.RunID(runID),
		Requirements: core.Requirements{
			TargetURL:      spec.TargetURL,
			CandidateCount: spec.Candidates,
			Categories:     categories,
		},
		SelectCount: spec.Execute,
		Observer: core.ProgressFunc(func(stage string, percent int, message string) {
			fmt.Fprintf(out, "[%3d%%] %-10s %s\n", percent, stage, message)
		}),
	})
	if err != nil {
		return err
	}

	printRunSummary(cmd, report)
	return nil
}

func printRunSummary(cmd *cobra.Command, report *core.WorkflowReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Run:      %s\n", report.RunID)
	fmt.Fprintf(out, "Status:   %s\n", report.Status)
	fmt.Fprintf(out, "Verdict:  %s\n", report.FinalVerdict)

	if execution, ok := report.Phases[core.PhaseExecution]; ok {
		stats := execution.Execution.Stats
		fmt.Fprintf(out, "Tests:    %d executed, %d passed, %d failed, %d errors (%.1f%% success)\n",
			stats.TotalExecuted, stats.Passed, stats.Failed, stats.Errors, stats.SuccessRate*100)
	}

	if report.FinalReport != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Key findings:")
		for _, finding := range report.FinalReport.KeyFindings {
			fmt.Fprintf(out, "  - %s\n", finding)
		}
		fmt.Fprintln(out, "Recommendations:")
		for _, rec := range report.FinalReport.Recommendations {
			fmt.Fprintf(out, "  - %s\n", rec)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Reports:  %s_analysis, %s_final_report (store: %s)\n",
		report.RunID, report.RunID, cfg.Reports.Store)
}
