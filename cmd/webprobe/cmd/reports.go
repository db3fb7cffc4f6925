package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/webprobe-dev/webprobe/internal/core"
)

var showAnalysis bool

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Browse persisted run reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted report documents",
	RunE:  runReportsList,
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print a run's final report (or its analysis with --analysis)",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsShow,
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)

	reportsShowCmd.Flags().BoolVar(&showAnalysis, "analysis", false, "show the analysis document instead of the final report")
}

func runReportsList(cmd *cobra.Command, _ []string) error {
	st, err := buildStack(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.close() }()

	infos, err := st.store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No reports found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRUN\tKIND\tCREATED\tSIZE")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			info.Name, info.RunID, info.Kind,
			info.CreatedAt.Format("2006-01-02 15:04:05"), info.SizeBytes)
	}
	return w.Flush()
}

func runReportsShow(cmd *cobra.Command, args []string) error {
	st, err := buildStack(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.close() }()

	id := core.RunID(args[0])

	var doc any
	if showAnalysis {
		doc, err = st.store.LoadAnalysis(cmd.Context(), id)
	} else {
		doc, err = st.store.LoadWorkflowReport(cmd.Context(), id)
	}
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
