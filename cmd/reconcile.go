package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"drill-eda/core/config"
	"drill-eda/core/reconcile"
	"drill-eda/core/table"
	"drill-eda/feature/drillhole"
	"drill-eda/feature/drillhole/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outFile     string
	exportFlag  bool
	jsonReport  bool
	yesConfirm  bool
	policyFlag  string
	combineFlag bool
	workersFlag int
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Merge lithology and assay intervals into one table",
	Long: `Loads the lithology and assay sources named by the job file, restricts both
to the holes they share and joins them into one interval table.

By default only the run metrics are printed. Use --out to write the merged
table as CSV, or --export to write it to the job's export location.
Exports to a database table replace that table and ask for confirmation.

Examples:
  reconcile --job job.yaml
  reconcile --job job.yaml --out merged.csv
  reconcile --job job.yaml --export --yes
  reconcile --combine --policy reject --json`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&outFile, "out", "", "Write the merged table to this CSV file")
	reconcileCmd.Flags().BoolVar(&exportFlag, "export", false, "Write the merged table to the job's export location")
	reconcileCmd.Flags().BoolVar(&jsonReport, "json", false, "Print the full run report as JSON")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm replacing an export table (non-interactive)")
	reconcileCmd.Flags().StringVar(&policyFlag, "policy", "", "Override the job quality policy (skip, reject)")
	reconcileCmd.Flags().BoolVar(&combineFlag, "combine", false, "Merge adjacent lithology intervals of the same rock")
	reconcileCmd.Flags().IntVar(&workersFlag, "workers", 0, "Override the number of holes joined concurrently")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	job, err := a.loadJob()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, job)

	if !exportFlag {
		job.Export = nil
	} else if job.Export == nil {
		return fmt.Errorf("--export requires an export location in %s", a.jobPath())
	} else if job.Export.Kind == config.KindDatabase {
		if confirmReplace(job.Export.Table) {
			job.Export.Replace = true
		} else {
			a.logger.Warn("Export cancelled by user. Reconciling without export.")
			job.Export = nil
		}
	}

	a.logger.Info("Starting reconciliation", zap.String("job", a.jobPath()))
	svc := a.drillhole()
	summary, err := svc.Run(ctx, job)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	if outFile != "" {
		if err := writeMerged(svc, outFile); err != nil {
			return err
		}
		a.logger.Info("Merged table written", zap.String("file", outFile))
	}

	if jsonReport {
		return printJSON(summary)
	}
	printRunMetrics(summary)
	return nil
}

// applyRunFlags lets explicitly set flags override the job file.
func applyRunFlags(cmd *cobra.Command, job *config.Job) {
	if cmd.Flags().Changed("policy") {
		job.QualityPolicy = reconcile.QualityPolicy(policyFlag)
	}
	if cmd.Flags().Changed("combine") {
		job.Combine = combineFlag
	}
	if cmd.Flags().Changed("workers") {
		job.Workers = workersFlag
	}
}

func writeMerged(svc *drillhole.Service, path string) error {
	t, err := svc.Table()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return table.WriteCSV(f, t.Columns(), t.Records())
}

func printRunMetrics(s *models.RunSummary) {
	r := s.Report
	fmt.Println("\n=== Reconciliation Metrics ===")
	fmt.Printf("Run ID: %s\n", s.RunID)
	fmt.Printf("Lithology Rows: %d (%d valid intervals)\n", r.LithologyRows, r.LithologyIntervals)
	fmt.Printf("Assay Rows: %d (%d valid intervals)\n", r.AssayRows, r.AssayIntervals)
	if r.CombinedIntervals > 0 {
		fmt.Printf("Combined Lithology Intervals: %d\n", r.CombinedIntervals)
	}
	fmt.Printf("Common Holes: %d\n", r.Holes)
	fmt.Printf("Merged Intervals: %d\n", r.Intervals)
	fmt.Printf("Holes Missing In Assay: %d\n", len(r.Diff.MissingInAssay))
	fmt.Printf("Holes Missing In Lithology: %d\n", len(r.Diff.MissingInLithology))
	fmt.Printf("Data Quality Issues: %d\n", len(r.Issues))
	if s.Cached {
		fmt.Println("Result: served from cache")
	}
	if s.Export != nil {
		fmt.Printf("Exported: %d rows to %s %s\n", s.Export.Rows, s.Export.Kind, s.Export.Location)
	}
	fmt.Printf("Execution Time: %s\n", s.ExecutionTime)

	maxShow := 5
	if len(r.Issues) < maxShow {
		maxShow = len(r.Issues)
	}
	for _, issue := range r.Issues[:maxShow] {
		fmt.Printf("  - %s row %d (%s): %s\n", issue.Source, issue.Row, issue.Kind, issue.Detail)
	}
	if len(r.Issues) > maxShow {
		fmt.Printf("  ... %d more issues, use --json for all\n", len(r.Issues)-maxShow)
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// confirmReplace prompts before an export drops a database table, unless --yes is set.
func confirmReplace(name string) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  Export replaces table %q. Type 'yes' to confirm: ", name)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
