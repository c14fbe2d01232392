package entity

import (
	"context"
	"fmt"

	"github.com/restodesk/restodesk/internal"
	"github.com/restodesk/restodesk/internal/docstore"
)

// Feedback is a customer review attached to a completed order.
var Feedback = docstore.MustDefinition(docstore.Definition{
	Schema: &internal.Schema{
		Table: "feedback",
		Fields: []internal.Field{
			{Name: "order_id", DDL: "BIGINT NOT NULL"},
			{Name: "rating", DDL: "INTEGER NOT NULL"},
			{Name: "comment", DDL: "TEXT NULL"},
		},
		Indexes: []internal.Index{
			{Fields: []string{"order_id"}, Kind: internal.IndexSecondary},
		},
	},
	Workflow: &internal.Workflow{
		Initial: StateDraft,
		Transfers: []internal.Transfer{
			{From: StateDraft, To: StateRegistered},
			{From: StateRegistered, To: StateApproved},
			{From: StateRegistered, To: StateCanceledByOperator},
		},
	},
})

// FeedbackForOrder lists the feedback records left for an order.
func FeedbackForOrder(ctx context.Context, s *docstore.Store, orderID int64) ([]int64, error) {
	d := s.Dialect()
	where := fmt.Sprintf("%s=%s", d.QuoteIdentifier("order_id"), d.Placeholder(1))
	return s.Collection(ctx, Feedback, where, []any{orderID}, "", 0)
}
