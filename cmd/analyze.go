package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"drill-eda/core/reconcile"
	"drill-eda/core/table"
	"drill-eda/core/utils"
	"drill-eda/feature/drillhole"
	"drill-eda/feature/drillhole/analysis"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	gradeFlag   string
	cutoffFlag  float64
	rockFlag    string
	columnFlag  string
	binsFlag    int
	capFlag     float64
	filtersFlag string
	analyzeJSON bool
)

// analyzeCmd groups the analyses of a merged table. Each subcommand runs the
// job first; identical runs within the cache TTL are not repeated.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyse the merged interval table",
	Long: `Reconciles the job and runs one analysis over the merged table.

Examples:
  analyze orewaste --grade CU_PCT --cutoff 0.5
  analyze stats --rock GRN
  analyze histogram --column AU_PPM --bins 30 --cap 10
  analyze filter --filters '{"categorical":{"ROCK":["GRN"]}}' --out grn.csv`,
}

var oreWasteCmd = &cobra.Command{
	Use:   "orewaste",
	Short: "Split rock classes into ore and waste by mean grade",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(func(svc *drillhole.Service) (interface{}, error) {
			split, err := svc.OreWaste(gradeFlag, cutoffFlag)
			if err != nil {
				return nil, err
			}
			if !analyzeJSON {
				printOreWaste(split)
			}
			return split, nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Describe the intervals of one rock class",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(func(svc *drillhole.Service) (interface{}, error) {
			desc, err := svc.Describe(rockFlag)
			if err != nil {
				return nil, err
			}
			if !analyzeJSON {
				printDescription(desc)
			}
			return desc, nil
		})
	},
}

var histogramCmd = &cobra.Command{
	Use:   "histogram",
	Short: "Bin one numeric column",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := analysis.HistogramOptions{Bins: binsFlag}
		if cmd.Flags().Changed("cap") {
			capValue := capFlag
			opts.Cap = &capValue
		}
		filters, err := parseFilters()
		if err != nil {
			return err
		}
		opts.Filters = filters

		return runAnalysis(func(svc *drillhole.Service) (interface{}, error) {
			hist, err := svc.Histogram(columnFlag, opts)
			if err != nil {
				return nil, err
			}
			if !analyzeJSON {
				printHistogram(hist)
			}
			return hist, nil
		})
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Select the rows matching categorical and numeric filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := parseFilters()
		if err != nil {
			return err
		}

		return runAnalysis(func(svc *drillhole.Service) (interface{}, error) {
			t, err := svc.Filter(filters)
			if err != nil {
				return nil, err
			}
			if outFile != "" {
				if err := writeTable(outFile, t); err != nil {
					return nil, err
				}
				fmt.Printf("Wrote %d rows to %s\n", t.Len(), outFile)
				return nil, nil
			}
			if !analyzeJSON {
				return nil, table.WriteCSV(os.Stdout, t.Columns(), t.Records())
			}
			return t, nil
		})
	},
}

func init() {
	analyzeCmd.PersistentFlags().BoolVar(&analyzeJSON, "json", false, "Print the result as JSON")

	oreWasteCmd.Flags().StringVar(&gradeFlag, "grade", "", "Assay column used as grade")
	oreWasteCmd.Flags().Float64Var(&cutoffFlag, "cutoff", 0, "Mean grade at or above which a rock class is ore")
	_ = oreWasteCmd.MarkFlagRequired("grade")
	_ = oreWasteCmd.MarkFlagRequired("cutoff")

	statsCmd.Flags().StringVar(&rockFlag, "rock", "", "Rock class to describe")
	_ = statsCmd.MarkFlagRequired("rock")

	histogramCmd.Flags().StringVar(&columnFlag, "column", "", "Numeric column to bin")
	histogramCmd.Flags().IntVar(&binsFlag, "bins", analysis.DefaultBins, "Number of equal-width bins")
	histogramCmd.Flags().Float64Var(&capFlag, "cap", 0, "Clamp values above this before binning")
	histogramCmd.Flags().StringVar(&filtersFlag, "filters", "", "Row filters as JSON")
	_ = histogramCmd.MarkFlagRequired("column")

	filterCmd.Flags().StringVar(&filtersFlag, "filters", "", "Row filters as JSON")
	filterCmd.Flags().StringVar(&outFile, "out", "", "Write the selected rows to this CSV file")

	analyzeCmd.AddCommand(oreWasteCmd)
	analyzeCmd.AddCommand(statsCmd)
	analyzeCmd.AddCommand(histogramCmd)
	analyzeCmd.AddCommand(filterCmd)
	RootCmd.AddCommand(analyzeCmd)
}

type analysisFunc func(svc *drillhole.Service) (interface{}, error)

func runAnalysis(fn analysisFunc) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	job, err := a.loadJob()
	if err != nil {
		return err
	}
	job.Export = nil

	svc := a.drillhole()
	summary, err := svc.Run(context.Background(), job)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}
	a.logger.Debug("Reconciled for analysis",
		zap.String("run_id", summary.RunID),
		zap.Int("intervals", summary.Report.Intervals),
	)

	result, err := fn(svc)
	if err != nil {
		return err
	}
	if analyzeJSON && result != nil {
		return printJSON(result)
	}
	return nil
}

func parseFilters() (analysis.Filters, error) {
	var f analysis.Filters
	if filtersFlag == "" {
		return f, nil
	}
	if err := json.Unmarshal([]byte(filtersFlag), &f); err != nil {
		return f, &reconcile.ConfigurationError{Key: "filters", Reason: err.Error()}
	}
	return f, nil
}

func writeTable(path string, t *reconcile.MergedTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return table.WriteCSV(f, t.Columns(), t.Records())
}

func printOreWaste(s *analysis.OreWasteSplit) {
	fmt.Printf("\n=== Ore/Waste Split (%s, cutoff %s) ===\n", s.Grade, utils.FormatFloat(s.Cutoff))
	fmt.Println("Ore:")
	for _, g := range s.Ore {
		fmt.Printf("  %-12s mean %s (%d samples)\n", g.Rock, utils.FormatFloat(g.Mean), g.Samples)
	}
	fmt.Println("Waste:")
	for _, g := range s.Waste {
		fmt.Printf("  %-12s mean %s (%d samples)\n", g.Rock, utils.FormatFloat(g.Mean), g.Samples)
	}
}

func printDescription(d *analysis.Description) {
	fmt.Printf("\n=== %s (%d intervals) ===\n", d.Rock, d.Rows)
	fmt.Printf("%-12s %6s %10s %10s %10s %10s %10s %10s %10s\n", "column", "count", "mean", "std", "min", "25%", "50%", "75%", "max")
	for _, s := range d.Columns {
		fmt.Printf("%-12s %6d %10s %10s %10s %10s %10s %10s %10s\n", s.Column, s.Count,
			cell(s.Mean), cell(s.Std), cell(s.Min), cell(s.Q25), cell(s.Q50), cell(s.Q75), cell(s.Max))
	}
}

func printHistogram(h *analysis.HistogramResult) {
	fmt.Printf("\n=== Histogram %s (%d samples) ===\n", h.Column, h.Samples)
	var peak float64
	for _, b := range h.Bins {
		if b.Count > peak {
			peak = b.Count
		}
	}
	for _, b := range h.Bins {
		width := 0
		if peak > 0 {
			width = int(40 * b.Count / peak)
		}
		fmt.Printf("[%10s, %10s) %6d %s\n", utils.FormatFloat(b.Low), utils.FormatFloat(b.High), int(b.Count), strings.Repeat("#", width))
	}
}

func cell(v reconcile.Value) string {
	if !v.Valid {
		return "-"
	}
	return fmt.Sprintf("%.4g", v.Float)
}
