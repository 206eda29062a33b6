package metrics

import (
	"context"
	"time"

	coremetrics "github.com/JackCapstaff/rehearsal-schedule/core/metrics"
	"github.com/JackCapstaff/rehearsal-schedule/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// edit events published outside the service itself. It stops when the
// context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.Sink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case eventbus.ScheduleEdited:
					_ = sink.RecordEdit(coremetrics.EditEvent{
						Rehearsal: e.Rehearsal,
						Action:    e.Action,
						Accepted:  true,
						Time:      time.Now(),
					})
				case eventbus.EditRejected:
					_ = sink.RecordEdit(coremetrics.EditEvent{
						Rehearsal:  e.Rehearsal,
						Action:     e.Action,
						Accepted:   false,
						Violations: len(e.Violations),
						Time:       time.Now(),
					})
				}
			}
		}
	}()
}
