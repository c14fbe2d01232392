package docstore

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/restodesk/restodesk/internal"
)

// Resolver chooses the target state when more than one transition is legal.
// It receives the legal targets in declaration order.
type Resolver func(targets []internal.State) (internal.State, error)

// Next advances the document along the single legal transition out of its
// current state and persists the result. Zero or multiple legal transitions
// fail with an ambiguity error; the caller must disambiguate with AdvanceTo
// or AdvanceVia.
func (d *Document) Next(ctx context.Context, actingUser string) (internal.State, error) {
	cur, err := d.currentState(ctx)
	if err != nil {
		return internal.StateUnset, err
	}
	targets := d.def.Workflow.TargetsFrom(cur)
	if len(targets) != 1 {
		return internal.StateUnset, internal.AmbiguousTransitionf("%s %d: %d legal transitions from state %d", d.def.Schema.Table, d.id, len(targets), cur)
	}
	return d.advance(ctx, actingUser, targets[0])
}

// AdvanceTo advances the document directly to target and persists it. The
// target is not validated against the transition table; this is the escape
// hatch for caller-directed transitions.
func (d *Document) AdvanceTo(ctx context.Context, actingUser string, target internal.State) (internal.State, error) {
	if _, err := d.currentState(ctx); err != nil {
		return internal.StateUnset, err
	}
	return d.advance(ctx, actingUser, target)
}

// AdvanceVia passes the legal targets out of the current state to resolve
// and advances to its choice.
func (d *Document) AdvanceVia(ctx context.Context, actingUser string, resolve Resolver) (internal.State, error) {
	cur, err := d.currentState(ctx)
	if err != nil {
		return internal.StateUnset, err
	}
	targets := d.def.Workflow.TargetsFrom(cur)
	target, err := resolve(targets)
	if err != nil {
		return internal.StateUnset, errors.Wrapf(err, "resolving transition for %s %d from state %d", d.def.Schema.Table, d.id, cur)
	}
	return d.advance(ctx, actingUser, target)
}

func (d *Document) currentState(ctx context.Context) (internal.State, error) {
	if err := d.def.Validate(); err != nil {
		return internal.StateUnset, err
	}
	if d.def.Workflow == nil {
		return internal.StateUnset, internal.DefinitionErrorf("entity %s has no workflow model", d.def.Schema.Table)
	}
	if !d.populated {
		if err := d.Load(ctx); err != nil {
			return internal.StateUnset, err
		}
	}
	return toState(d.data[internal.ColWfStatus]), nil
}

func (d *Document) advance(ctx context.Context, actingUser string, target internal.State) (internal.State, error) {
	d.data[internal.ColWfStatus] = int64(target)
	if err := d.Save(ctx, actingUser); err != nil {
		return internal.StateUnset, err
	}
	internal.WorkflowTransitions.Inc()
	d.store.logger.Debug("%s %d advanced to state %d", d.def.Schema.Table, d.id, target)
	return target, nil
}
