// Package app wires the planning pipeline, edit engine, history store and
// observability into one service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JackCapstaff/rehearsal-schedule/config"
	"github.com/JackCapstaff/rehearsal-schedule/core/allocation"
	"github.com/JackCapstaff/rehearsal-schedule/core/assemble"
	"github.com/JackCapstaff/rehearsal-schedule/core/edit"
	"github.com/JackCapstaff/rehearsal-schedule/core/history"
	"github.com/JackCapstaff/rehearsal-schedule/core/loadest"
	coremetrics "github.com/JackCapstaff/rehearsal-schedule/core/metrics"
	"github.com/JackCapstaff/rehearsal-schedule/core/model"
	"github.com/JackCapstaff/rehearsal-schedule/core/timegrid"
	"github.com/JackCapstaff/rehearsal-schedule/core/timing"
	"github.com/JackCapstaff/rehearsal-schedule/infra/logger"
	"github.com/JackCapstaff/rehearsal-schedule/infra/metrics"
	"github.com/JackCapstaff/rehearsal-schedule/internal/eventbus"
)

// PlanResult is the output of one full pipeline run. Every slice is
// rebuilt from scratch; nothing from a previous run survives.
type PlanResult struct {
	Bundles     []model.Bundle         `json:"bundles"`
	Allocation  []model.AllocationCell `json:"allocation"`
	Slots       []model.ScheduleSlot   `json:"slots"`
	Timed       []model.TimedItem      `json:"timed"`
	Diagnostics []model.Diagnostic     `json:"diagnostics,omitempty"`
}

// EditOp describes one interactive edit request.
type EditOp struct {
	Action        string    `json:"action"`
	ItemID        string    `json:"item_id,omitempty"`
	Title         string    `json:"title,omitempty"`
	TargetMinutes int       `json:"target_minutes,omitempty"`
	Duration      int       `json:"duration,omitempty"`
	Edge          edit.Edge `json:"edge,omitempty"`
	Description   string    `json:"description,omitempty"`
}

// Edit actions accepted by ApplyEdit.
const (
	ActionMove   = "move"
	ActionResize = "resize"
	ActionAdd    = "add"
	ActionDelete = "delete"
	ActionRevert = "revert"
)

// Service orchestrates the planning stages and owns the shared state:
// history store, event bus and metrics sink.
type Service struct {
	cfg    *config.Config
	grid   timegrid.Grid
	alloc  *allocation.Engine
	timer  *timing.Assigner
	editor *edit.Engine
	hist   history.Store
	bus    eventbus.EventBus
	sink   coremetrics.Sink
	log    logger.Logger
	cancel context.CancelFunc
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var hist history.Store
	switch cfg.History.Backend {
	case "jsonl":
		s, err := history.NewJSONLStore(cfg.History.Path, cfg.History.Limit)
		if err != nil {
			return nil, fmt.Errorf("history store: %w", err)
		}
		hist = s
	default:
		hist = history.NewMemoryStore(cfg.History.Limit)
	}

	var sink coremetrics.Sink = coremetrics.NopSink{}
	if cfg.Metrics.PrometheusEnabled {
		s, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sink = s
	}

	bus := eventbus.New()
	ctx, cancel := context.WithCancel(context.Background())
	metrics.StartEventCollector(ctx, bus, sink)

	grid := timegrid.New(cfg.Allocation.GridMinutes)
	return &Service{
		cfg:    cfg,
		grid:   grid,
		alloc:  allocation.New(cfg.Allocation),
		timer:  timing.New(cfg.Timing),
		editor: edit.New(grid),
		hist:   hist,
		bus:    bus,
		sink:   sink,
		log:    logg,
		cancel: cancel,
	}, nil
}

// Bus exposes the event bus so callers can observe planning and edit
// notifications.
func (s *Service) Bus() eventbus.EventBus { return s.bus }

// RunPipeline executes the three batch stages on the given tables and
// returns the full plan. Malformed rows are skipped with diagnostics;
// only I/O-level failures surface as errors.
func (s *Service) RunPipeline(ctx context.Context, works []model.Work, rehearsals []model.Rehearsal) (*PlanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	var diags []model.Diagnostic
	works, rehearsals, diags = s.validateInputs(works, rehearsals)

	bundles := loadest.EstimateAndBundle(works)
	cells, allocDiags := s.alloc.Allocate(works, rehearsals)
	diags = append(diags, allocDiags...)

	slots := assemble.Assemble(cells, bundles, rehearsals)
	timed, timeDiags := s.timer.AssignTimes(slots, cells, bundles, rehearsals)
	diags = append(diags, timeDiags...)

	res := &PlanResult{
		Bundles:     bundles,
		Allocation:  cells,
		Slots:       slots,
		Timed:       timed,
		Diagnostics: diags,
	}

	deficits, overflows := countDiags(diags)
	if err := s.sink.RecordPipelineRun(coremetrics.PipelineEvent{
		Works:      len(works),
		Rehearsals: len(rehearsals),
		Bundles:    len(bundles),
		Deficits:   deficits,
		Overflows:  overflows,
		Duration:   time.Since(start),
		Time:       time.Now(),
	}); err != nil {
		s.log.Warnf("record pipeline run: %v", err)
	}
	s.bus.Publish(eventbus.PlanGenerated{
		Works:       len(works),
		Rehearsals:  len(rehearsals),
		Bundles:     len(bundles),
		Diagnostics: diags,
		Time:        time.Now(),
	})
	s.log.Infof("plan generated: %d works, %d rehearsals, %d bundles, %d diagnostics",
		len(works), len(rehearsals), len(bundles), len(diags))
	return res, nil
}

// validateInputs drops unusable rows, reporting each one.
func (s *Service) validateInputs(works []model.Work, rehearsals []model.Rehearsal) ([]model.Work, []model.Rehearsal, []model.Diagnostic) {
	var diags []model.Diagnostic
	keptW := works[:0:0]
	for _, w := range works {
		if err := w.Validate(); err != nil {
			diags = append(diags, model.Diagnostic{
				Kind:      model.DiagMalformedInput,
				WorkTitle: w.Title,
				Message:   err.Error(),
			})
			continue
		}
		keptW = append(keptW, w)
	}
	keptR := rehearsals[:0:0]
	for _, r := range rehearsals {
		if err := r.Validate(); err != nil {
			diags = append(diags, model.Diagnostic{
				Kind:      model.DiagMalformedInput,
				Rehearsal: r.Number,
				Message:   err.Error(),
			})
			continue
		}
		keptR = append(keptR, r)
	}
	return keptW, keptR, diags
}

func countDiags(diags []model.Diagnostic) (deficits, overflows int) {
	for _, d := range diags {
		switch d.Kind {
		case model.DiagDeficit:
			deficits++
		case model.DiagCapacityOverflow:
			overflows++
		}
	}
	return deficits, overflows
}

// ApplyEdit applies one edit to a rehearsal timetable. An accepted edit is
// recorded in history and published; a rejected edit returns the pre-image
// together with the violations, leaving all state untouched.
func (s *Service) ApplyEdit(ctx context.Context, r model.Rehearsal, items []model.TimedItem, op EditOp) (edit.Result, error) {
	var res edit.Result
	switch op.Action {
	case ActionMove:
		res = s.editor.Move(items, r, op.ItemID, op.TargetMinutes)
	case ActionResize:
		res = s.editor.Resize(items, r, op.ItemID, op.Duration, op.Edge)
	case ActionAdd:
		res = s.editor.Add(items, r, op.Title, op.Duration, op.TargetMinutes)
	case ActionDelete:
		res = s.editor.Delete(items, r, op.ItemID)
	default:
		return edit.Result{}, fmt.Errorf("unknown edit action %q", op.Action)
	}

	if res.Rejected() {
		msgs := make([]string, len(res.Violations))
		for i, v := range res.Violations {
			msgs[i] = v.String()
		}
		s.bus.Publish(eventbus.EditRejected{
			Rehearsal:  r.Number,
			Action:     op.Action,
			Violations: msgs,
			Time:       time.Now(),
		})
		s.log.Warnf("edit %s on rehearsal %d rejected: %s", op.Action, r.Number, msgs[0])
		return res, nil
	}

	entry := history.Entry{
		ID:          uuid.NewString(),
		Timestamp:   time.Now(),
		Rehearsal:   r.Number,
		Action:      op.Action,
		Description: op.Description,
		Items:       model.CloneItems(res.Items),
	}
	if err := s.hist.Append(ctx, entry); err != nil {
		return res, fmt.Errorf("append history: %w", err)
	}
	s.bus.Publish(eventbus.ScheduleEdited{
		Rehearsal: r.Number,
		Action:    op.Action,
		EntryID:   entry.ID,
		Items:     entry.Items,
		Time:      entry.Timestamp,
	})
	return res, nil
}

// History lists the recorded edits for one rehearsal, oldest first.
func (s *Service) History(ctx context.Context, rehearsal int) ([]history.Entry, error) {
	return s.hist.List(ctx, history.Query{Rehearsal: rehearsal})
}

// Revert restores the timetable snapshot of a recorded entry. The revert
// itself is recorded as a new entry so it can be undone the same way.
func (s *Service) Revert(ctx context.Context, r model.Rehearsal, entryID string) ([]model.TimedItem, error) {
	e, ok, err := s.hist.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("history entry %s not found", entryID)
	}
	if e.Rehearsal != r.Number {
		return nil, fmt.Errorf("history entry %s belongs to rehearsal %d", entryID, e.Rehearsal)
	}
	items := model.CloneItems(e.Items)
	entry := history.Entry{
		ID:          uuid.NewString(),
		Timestamp:   time.Now(),
		Rehearsal:   r.Number,
		Action:      ActionRevert,
		Description: fmt.Sprintf("revert to %s", entryID),
		Items:       items,
	}
	if err := s.hist.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}
	s.bus.Publish(eventbus.ScheduleEdited{
		Rehearsal: r.Number,
		Action:    ActionRevert,
		EntryID:   entry.ID,
		Items:     items,
		Time:      entry.Timestamp,
	})
	return items, nil
}

// Run exposes Prometheus metrics (when enabled) and blocks until the
// context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			addr := ":" + s.cfg.Metrics.PrometheusPort
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.cancel()
	s.bus.Close()
	return s.hist.Close()
}
