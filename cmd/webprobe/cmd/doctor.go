package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/webprobe-dev/webprobe/internal/diagnostics"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the local environment",
	Long: `Doctor inspects the host and the configured report store and reports
anything that would prevent a campaign run from completing.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	stats := diagnostics.NewCollector().Collect()

	fmt.Fprintln(out, "System")
	if stats.CPUModel != "" {
		fmt.Fprintf(out, "  CPU:       %s (%d cores, %d threads)\n", stats.CPUModel, stats.CPUCores, stats.CPUThreads)
	} else {
		fmt.Fprintf(out, "  CPU:       %d cores, %d threads\n", stats.CPUCores, stats.CPUThreads)
	}
	fmt.Fprintf(out, "  Memory:    %.0f / %.0f MB (%.1f%%)\n", stats.MemUsedMB, stats.MemTotalMB, stats.MemPercent)
	fmt.Fprintf(out, "  Disk:      %.1f / %.1f GB (%.1f%%)\n", stats.DiskUsedGB, stats.DiskTotalGB, stats.DiskPercent)
	if stats.LoadAvg1 > 0 {
		fmt.Fprintf(out, "  Load:      %.2f %.2f %.2f\n", stats.LoadAvg1, stats.LoadAvg5, stats.LoadAvg15)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration")
	fmt.Fprintf(out, "  Store:     %s\n", cfg.Reports.Store)
	fmt.Fprintf(out, "  Log level: %s\n", cfg.Log.Level)

	failures := 0
	if err := checkReportsWritable(); err != nil {
		failures++
		fmt.Fprintf(out, "  Reports:   FAIL (%v)\n", err)
	} else {
		fmt.Fprintf(out, "  Reports:   ok (%s)\n", reportsLocation())
	}

	fmt.Fprintln(out)
	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}

// checkReportsWritable verifies the report location can be created and
// written to before a run commits results to it.
func checkReportsWritable() error {
	dir := reportsLocation()
	if cfg.Reports.Store == "sqlite" {
		dir = filepath.Dir(cfg.Reports.Database)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".webprobe-doctor")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}

func reportsLocation() string {
	if cfg.Reports.Store == "sqlite" {
		return cfg.Reports.Database
	}
	return cfg.Reports.Dir
}
