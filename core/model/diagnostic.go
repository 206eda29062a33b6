package model

import "fmt"

// DiagnosticKind classifies non-fatal findings reported by pipeline stages.
type DiagnosticKind string

const (
	// DiagDeficit reports a work that could not reach its required minutes
	// given section compatibility and remaining capacity.
	DiagDeficit DiagnosticKind = "infeasible_allocation"
	// DiagCapacityOverflow reports a rehearsal whose bundles plus break do
	// not fit even after shrinking to the per-appearance minimum.
	DiagCapacityOverflow DiagnosticKind = "capacity_overflow"
	// DiagInvalidEdit reports a rejected edit operation.
	DiagInvalidEdit DiagnosticKind = "invalid_edit"
	// DiagMalformedInput reports a skipped input row.
	DiagMalformedInput DiagnosticKind = "malformed_input"
)

// Diagnostic is a structured warning. Stages return diagnostics alongside
// their data; no error crosses a stage boundary for these conditions.
type Diagnostic struct {
	Kind      DiagnosticKind `json:"kind"`
	Rehearsal int            `json:"rehearsal,omitempty"`
	WorkTitle string         `json:"work_title,omitempty"`
	Message   string         `json:"message"`
}

func (d Diagnostic) String() string {
	switch {
	case d.WorkTitle != "" && d.Rehearsal > 0:
		return fmt.Sprintf("[%s] %q rehearsal %d: %s", d.Kind, d.WorkTitle, d.Rehearsal, d.Message)
	case d.WorkTitle != "":
		return fmt.Sprintf("[%s] %q: %s", d.Kind, d.WorkTitle, d.Message)
	case d.Rehearsal > 0:
		return fmt.Sprintf("[%s] rehearsal %d: %s", d.Kind, d.Rehearsal, d.Message)
	default:
		return fmt.Sprintf("[%s] %s", d.Kind, d.Message)
	}
}
