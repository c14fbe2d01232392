// Package entity declares the business entities of the platform: each one is
// a schema model plus a workflow model handed to the document store, with a
// few entity-specific query helpers. Route handlers work exclusively through
// these definitions.
package entity

import "github.com/restodesk/restodesk/internal"

// Workflow states shared across the entity definitions. The engine is
// generic over whatever state set a model declares; these are the ones the
// platform uses.
const (
	StateDraft internal.State = iota + 1
	StateRegistered
	StateApproved
	StateProcessing
	StateDone
	StateReview
	StateClosed
	StateCanceledByOperator
)

var stateNames = map[internal.State]string{
	StateDraft:              "draft",
	StateRegistered:         "registered",
	StateApproved:           "approved",
	StateProcessing:         "processing",
	StateDone:               "done",
	StateReview:             "review",
	StateClosed:             "closed",
	StateCanceledByOperator: "canceledByOperator",
}

// StateName returns the display name of a state.
func StateName(s internal.State) string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unset"
}
