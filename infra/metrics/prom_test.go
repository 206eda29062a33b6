package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/JackCapstaff/rehearsal-schedule/core/metrics"
	"github.com/JackCapstaff/rehearsal-schedule/internal/eventbus"
)

func gatherValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		var total float64
		for _, m := range f.GetMetric() {
			if c := m.GetCounter(); c != nil {
				total += c.GetValue()
			}
		}
		return total
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordPipelineRun(coremetrics.PipelineEvent{
		Works: 4, Rehearsals: 2, Bundles: 3, Deficits: 2, Overflows: 1,
		Duration: 20 * time.Millisecond,
	}))
	require.NoError(t, sink.RecordEdit(coremetrics.EditEvent{Action: "move", Accepted: true}))
	require.NoError(t, sink.RecordEdit(coremetrics.EditEvent{Action: "resize", Accepted: false}))

	assert.Equal(t, 1.0, gatherValue(t, reg, "planning_runs_total"))
	assert.Equal(t, 2.0, gatherValue(t, reg, "allocation_deficits_total"))
	assert.Equal(t, 1.0, gatherValue(t, reg, "capacity_overflows_total"))
	assert.Equal(t, 2.0, gatherValue(t, reg, "edit_operations_total"))
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	_, err = NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err, "re-registration must reuse the existing collectors")
}

func TestEventCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := eventbus.New()
	defer bus.Close()
	StartEventCollector(ctx, bus, sink)

	bus.Publish(eventbus.ScheduleEdited{Rehearsal: 1, Action: "move"})
	bus.Publish(eventbus.EditRejected{Rehearsal: 1, Action: "add", Violations: []string{"x"}})

	require.Eventually(t, func() bool {
		families, err := reg.Gather()
		if err != nil {
			return false
		}
		for _, f := range families {
			if f.GetName() == "edit_operations_total" {
				var total float64
				for _, m := range f.GetMetric() {
					total += m.GetCounter().GetValue()
				}
				return total == 2
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}
