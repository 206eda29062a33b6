package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JackCapstaff/rehearsal-schedule/app"
	"github.com/JackCapstaff/rehearsal-schedule/config"
	"github.com/JackCapstaff/rehearsal-schedule/infra/logger"
	"github.com/JackCapstaff/rehearsal-schedule/pkg/export"
)

var (
	worksPath      string
	rehearsalsPath string
	outDir         string
	outFormat      string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the full planning pipeline and export the plan",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&worksPath, "works", "works.json", "works table (JSON)")
	planCmd.Flags().StringVar(&rehearsalsPath, "rehearsals", "rehearsals.json", "rehearsals table (JSON)")
	planCmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	planCmd.Flags().StringVar(&outFormat, "format", "both", "output format: json, csv or both")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	works, err := app.LoadWorks(worksPath)
	if err != nil {
		return err
	}
	rehearsals, err := app.LoadRehearsals(rehearsalsPath)
	if err != nil {
		return err
	}

	res, err := svc.RunPipeline(ctx, works, rehearsals)
	if err != nil {
		return err
	}
	logg := logger.New("plan-command")
	for _, d := range res.Diagnostics {
		logg.Warnf("%s", d.String())
	}
	return writePlan(res)
}

func writePlan(res *app.PlanResult) error {
	if outFormat == "json" || outFormat == "both" {
		if err := writeJSONFile("plan.json", res); err != nil {
			return err
		}
	}
	if outFormat == "csv" || outFormat == "both" {
		if err := writeCSVFile("allocation.csv", res.Allocation, export.WriteAllocationCSV); err != nil {
			return err
		}
		if err := writeCSVFile("schedule.csv", res.Timed, export.WriteTimedCSV); err != nil {
			return err
		}
		if err := writeCSVFile("diagnostics.csv", res.Diagnostics, export.WriteDiagnosticsCSV); err != nil {
			return err
		}
	}
	if outFormat != "json" && outFormat != "csv" && outFormat != "both" {
		return fmt.Errorf("unknown format %q", outFormat)
	}
	return nil
}

func writeJSONFile(name string, v any) error {
	f, err := os.Create(filepath.Join(outDir, name))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return export.WriteJSON(f, v)
}

func writeCSVFile[T any](name string, rows []T, write func(w io.Writer, rows []T) error) error {
	f, err := os.Create(filepath.Join(outDir, name))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return write(f, rows)
}
