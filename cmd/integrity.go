package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"drill-eda/core/config"
	"drill-eda/feature/integrity"
	"drill-eda/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var integrityJSON bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the job sources before reconciling",
	Long: `Runs every integrity check on the job sources: existence and mapped columns,
hole ids present in only one source, and intervals that are invalid, overlap
or leave gaps. Outputs metrics by default or a detailed JSON report with --json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(func(ctx context.Context, svc *integrity.Service, job *config.Job) (interface{}, error) {
			report := svc.CheckAll(ctx, job)
			printSourceMetrics(report.Sources)
			if report.Holes != nil {
				printHoleMetrics(report.Holes)
			}
			if report.Intervals != nil {
				printIntervalMetrics(report.Intervals)
			}
			for _, e := range report.Errors {
				fmt.Printf("Check failed: %s\n", e)
			}
			return report, nil
		})
	},
}

// sourcesCmd represents the integrity sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Check that both sources exist and carry the mapped columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(func(ctx context.Context, svc *integrity.Service, job *config.Job) (interface{}, error) {
			report, err := svc.CheckSources(ctx, job)
			if err != nil {
				return nil, err
			}
			printSourceMetrics(report)
			return report, nil
		})
	},
}

// holesCmd represents the integrity holes command
var holesCmd = &cobra.Command{
	Use:   "holes",
	Short: "List hole ids present in only one source",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(func(ctx context.Context, svc *integrity.Service, job *config.Job) (interface{}, error) {
			report, err := svc.CheckHoles(ctx, job)
			if err != nil {
				return nil, err
			}
			printHoleMetrics(report)
			return report, nil
		})
	},
}

// intervalsCmd represents the integrity intervals command
var intervalsCmd = &cobra.Command{
	Use:   "intervals",
	Short: "Find invalid, overlapping and gapped intervals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(func(ctx context.Context, svc *integrity.Service, job *config.Job) (interface{}, error) {
			report, err := svc.CheckIntervals(ctx, job)
			if err != nil {
				return nil, err
			}
			printIntervalMetrics(report)
			return report, nil
		})
	},
}

func init() {
	integrityCmd.PersistentFlags().BoolVar(&integrityJSON, "json", false, "Save a detailed JSON report")

	integrityCmd.AddCommand(sourcesCmd)
	integrityCmd.AddCommand(holesCmd)
	integrityCmd.AddCommand(intervalsCmd)
	RootCmd.AddCommand(integrityCmd)
}

type integrityCheck func(ctx context.Context, svc *integrity.Service, job *config.Job) (interface{}, error)

func runIntegrity(check integrityCheck) error {
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

	svc := integrity.NewService(a.drillhole(), a.client, a.cfg.Storage.Bucket, a.logger, a.db, a.jobPath())

	startTime := time.Now()
	report, err := check(ctx, svc, job)
	if err != nil {
		return err
	}
	fmt.Printf("Execution Time: %s\n", time.Since(startTime).String())

	if !integrityJSON {
		return nil
	}

	filename := fmt.Sprintf("integrity_%d.json", time.Now().Unix())
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	a.logger.Info("Detailed JSON report saved", zap.String("file", filename))
	fmt.Printf("\nDetailed JSON saved to: %s\n", filename)
	return nil
}

func printSourceMetrics(sources []checks.SourceReport) {
	fmt.Println("\n=== Source Integrity ===")
	for _, s := range sources {
		fmt.Printf("%s (%s): %s\n", s.Source, s.Location, s.Status)
		if !s.Exists {
			fmt.Println("  Not found")
			continue
		}
		fmt.Printf("  Rows: %d\n", s.Rows)
		if len(s.MissingColumns) > 0 {
			fmt.Printf("  Missing Columns: %v\n", s.MissingColumns)
		}
		if s.Error != "" {
			fmt.Printf("  Error: %s\n", s.Error)
		}
	}
}

func printHoleMetrics(h *checks.HoleReport) {
	fmt.Println("\n=== Hole Integrity ===")
	fmt.Printf("Lithology Holes: %d\n", h.LithologyHoles)
	fmt.Printf("Assay Holes: %d\n", h.AssayHoles)
	fmt.Printf("Common Holes: %d\n", h.CommonHoles)
	fmt.Printf("Missing In Assay: %d %v\n", len(h.MissingInAssay), h.MissingInAssay)
	fmt.Printf("Missing In Lithology: %d %v\n", len(h.MissingInLithology), h.MissingInLithology)
	fmt.Printf("Status: %s\n", h.Status)
}

func printIntervalMetrics(r *checks.IntervalReport) {
	fmt.Println("\n=== Interval Integrity ===")
	for _, s := range []checks.SourceIntervals{r.Lithology, r.Assay} {
		fmt.Printf("%s: %d rows, %d valid\n", s.Source, s.Rows, s.Valid)
		fmt.Printf("  Issues: %d\n", len(s.Issues))
		fmt.Printf("  Overlaps: %d\n", len(s.Overlaps))
		fmt.Printf("  Gaps: %d\n", len(s.Gaps))
	}
	fmt.Printf("Status: %s\n", r.Status)
}
