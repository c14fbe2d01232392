package internal

import "fmt"

// State is a workflow state persisted in the wfStatus column. Each workflow
// model declares its own state set; zero means "no state".
type State int

// StateUnset is the zero State, used for records created before a workflow
// model was attached or for child rows awaiting their initial state.
const StateUnset State = 0

// Transfer is one legal state-to-state transition.
type Transfer struct {
	From State `json:"from"`
	To   State `json:"to"`
}

// Workflow is the declarative state machine governing an entity's wfStatus.
type Workflow struct {
	// Initial is assigned to a newly created record.
	Initial State `json:"initial"`

	// Transfers are the legal transitions.
	Transfers []Transfer `json:"transfers"`

	// Related holds per-child-table workflow models keyed by the stored
	// child table name.
	Related map[string]*Workflow `json:"related,omitempty"`
}

// TargetsFrom returns the legal target states out of from, in declaration
// order.
func (w *Workflow) TargetsFrom(from State) []State {
	var targets []State
	for _, t := range w.Transfers {
		if t.From == from {
			targets = append(targets, t.To)
		}
	}
	return targets
}

// Child returns the workflow model for the stored child table name, or nil.
func (w *Workflow) Child(table string) *Workflow {
	if w == nil || w.Related == nil {
		return nil
	}
	return w.Related[table]
}

// Validate asserts the model is usable: an initial state is declared and no
// transition is declared twice.
func (w *Workflow) Validate() error {
	if w.Initial == StateUnset {
		return fmt.Errorf("workflow has no initial state")
	}
	seen := make(map[Transfer]bool)
	for _, t := range w.Transfers {
		if t.From == StateUnset || t.To == StateUnset {
			return fmt.Errorf("workflow transition %d->%d uses the unset state", t.From, t.To)
		}
		if seen[t] {
			return fmt.Errorf("workflow declares transition %d->%d twice", t.From, t.To)
		}
		seen[t] = true
	}
	for table, child := range w.Related {
		if child == nil {
			return fmt.Errorf("workflow declares a nil model for child table %s", table)
		}
		if err := child.Validate(); err != nil {
			return fmt.Errorf("child table %s: %w", table, err)
		}
	}
	return nil
}
