package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JackCapstaff/rehearsal-schedule/app"
	"github.com/JackCapstaff/rehearsal-schedule/config"
	"github.com/JackCapstaff/rehearsal-schedule/core/model"
	"github.com/JackCapstaff/rehearsal-schedule/pkg/export"
)

var (
	histRehearsalsPath string
	histRehearsal      int
	histRevertID       string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded edits, or revert to a recorded snapshot",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&histRehearsalsPath, "rehearsals", "rehearsals.json", "rehearsals table (JSON)")
	historyCmd.Flags().IntVar(&histRehearsal, "rehearsal", 0, "rehearsal number")
	historyCmd.Flags().StringVar(&histRevertID, "revert", "", "entry id to revert to")
	_ = historyCmd.MarkFlagRequired("rehearsal")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
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
	defer func() { _ = svc.Close() }()

	if histRevertID != "" {
		rehearsals, err := app.LoadRehearsals(histRehearsalsPath)
		if err != nil {
			return err
		}
		var reh model.Rehearsal
		found := false
		for _, r := range rehearsals {
			if r.Number == histRehearsal {
				reh, found = r, true
				break
			}
		}
		if !found {
			return fmt.Errorf("rehearsal %d not found in %s", histRehearsal, histRehearsalsPath)
		}
		items, err := svc.Revert(ctx, reh, histRevertID)
		if err != nil {
			return err
		}
		return export.WriteJSON(os.Stdout, items)
	}

	entries, err := svc.History(ctx, histRehearsal)
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, entries)
}
