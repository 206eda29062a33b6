package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JackCapstaff/rehearsal-schedule/app"
	"github.com/JackCapstaff/rehearsal-schedule/config"
	"github.com/JackCapstaff/rehearsal-schedule/core/edit"
	"github.com/JackCapstaff/rehearsal-schedule/core/model"
	"github.com/JackCapstaff/rehearsal-schedule/pkg/export"
)

var (
	editRehearsalsPath string
	editRehearsal      int
	editItemsPath      string
	editAction         string
	editItemID         string
	editTitle          string
	editTarget         int
	editDuration       int
	editEdge           string
	editDesc           string
	editOutPath        string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Apply one edit to a rehearsal timetable",
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editRehearsalsPath, "rehearsals", "rehearsals.json", "rehearsals table (JSON)")
	editCmd.Flags().IntVar(&editRehearsal, "rehearsal", 0, "rehearsal number")
	editCmd.Flags().StringVar(&editItemsPath, "items", "", "current timetable (JSON)")
	editCmd.Flags().StringVar(&editAction, "action", "", "move, resize, add or delete")
	editCmd.Flags().StringVar(&editItemID, "item", "", "target item id")
	editCmd.Flags().StringVar(&editTitle, "title", "", "title for add")
	editCmd.Flags().IntVar(&editTarget, "target", 0, "target start in minutes since midnight")
	editCmd.Flags().IntVar(&editDuration, "duration", 0, "duration in minutes")
	editCmd.Flags().StringVar(&editEdge, "edge", "end", "resize edge: start or end")
	editCmd.Flags().StringVar(&editDesc, "desc", "", "history description")
	editCmd.Flags().StringVar(&editOutPath, "out", "", "write the new timetable here (default stdout)")
	_ = editCmd.MarkFlagRequired("rehearsal")
	_ = editCmd.MarkFlagRequired("items")
	_ = editCmd.MarkFlagRequired("action")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	rehearsals, err := app.LoadRehearsals(editRehearsalsPath)
	if err != nil {
		return err
	}
	var reh model.Rehearsal
	found := false
	for _, r := range rehearsals {
		if r.Number == editRehearsal {
			reh, found = r, true
			break
		}
	}
	if !found {
		return fmt.Errorf("rehearsal %d not found in %s", editRehearsal, editRehearsalsPath)
	}
	items, err := app.LoadTimedItems(editItemsPath)
	if err != nil {
		return err
	}

	res, err := svc.ApplyEdit(ctx, reh, items, app.EditOp{
		Action:        editAction,
		ItemID:        editItemID,
		Title:         editTitle,
		TargetMinutes: editTarget,
		Duration:      editDuration,
		Edge:          edit.Edge(editEdge),
		Description:   editDesc,
	})
	if err != nil {
		return err
	}
	if res.Rejected() {
		msgs := make([]string, len(res.Violations))
		for i, v := range res.Violations {
			msgs[i] = v.String()
		}
		return fmt.Errorf("edit rejected: %s", strings.Join(msgs, "; "))
	}
	return writeItems(res.Items)
}

func writeItems(items []model.TimedItem) error {
	if editOutPath == "" {
		return export.WriteJSON(os.Stdout, items)
	}
	f, err := os.Create(editOutPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return export.WriteJSON(f, items)
}
