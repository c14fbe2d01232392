package entity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/restodesk/restodesk/internal"
	"github.com/restodesk/restodesk/internal/docstore"
)

// Order is a customer order placed with an eatery. Line items live in the
// order_item child collection and carry their own workflow so the kitchen
// can track positions independently of the order itself.
var Order = docstore.MustDefinition(docstore.Definition{
	Schema: &internal.Schema{
		Table: "order",
		Fields: []internal.Field{
			{Name: "eatery_id", DDL: "BIGINT NOT NULL"},
			{Name: "employee_id", DDL: "BIGINT NULL"},
			{Name: "number", DDL: "VARCHAR(36) NOT NULL"},
			{Name: "customer", DDL: "VARCHAR(255) NULL"},
			{Name: "comment", DDL: "TEXT NULL"},
			{Name: "total", DDL: "DECIMAL(10,2) NULL"},
		},
		Indexes: []internal.Index{
			{Fields: []string{"number"}, Kind: internal.IndexUnique},
			{Fields: []string{"eatery_id"}, Kind: internal.IndexSecondary},
		},
		RelatedPrefix: "order_",
		Related: []*internal.Schema{
			{
				Table: "item",
				Fields: []internal.Field{
					{Name: "meal_id", DDL: "BIGINT NOT NULL"},
					{Name: "count", DDL: "INTEGER NOT NULL"},
					{Name: "price", DDL: "DECIMAL(10,2) NULL"},
				},
			},
		},
	},
	Workflow: &internal.Workflow{
		Initial: StateDraft,
		Transfers: []internal.Transfer{
			{From: StateDraft, To: StateRegistered},
			{From: StateRegistered, To: StateApproved},
			{From: StateRegistered, To: StateCanceledByOperator},
			{From: StateApproved, To: StateProcessing},
			{From: StateApproved, To: StateCanceledByOperator},
			{From: StateProcessing, To: StateDone},
			{From: StateDone, To: StateReview},
			{From: StateReview, To: StateClosed},
			{From: StateCanceledByOperator, To: StateClosed},
		},
		Related: map[string]*internal.Workflow{
			"order_item": {
				Initial: StateDraft,
				Transfers: []internal.Transfer{
					{From: StateDraft, To: StateProcessing},
					{From: StateProcessing, To: StateDone},
				},
			},
		},
	},
})

// NewOrderNumber returns a fresh public order number.
func NewOrderNumber() string {
	return uuid.NewString()
}

// OpenOrdersForEatery lists orders for an eatery that are neither closed nor
// canceled, newest first.
func OpenOrdersForEatery(ctx context.Context, s *docstore.Store, eateryID int64) ([]int64, error) {
	d := s.Dialect()
	where := fmt.Sprintf("%s=%s AND %s NOT IN (%s,%s)",
		d.QuoteIdentifier("eatery_id"), d.Placeholder(1),
		d.QuoteIdentifier(internal.ColWfStatus), d.Placeholder(2), d.Placeholder(3))
	args := []any{eateryID, int64(StateClosed), int64(StateCanceledByOperator)}
	return s.Collection(ctx, Order, where, args, d.QuoteIdentifier("id")+" DESC", 0)
}
