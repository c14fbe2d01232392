package entity

import (
	"context"
	"fmt"

	"github.com/restodesk/restodesk/internal"
	"github.com/restodesk/restodesk/internal/docstore"
)

// Eatery is a restaurant location. Its staff assignments live in the
// eatery_employee child collection.
var Eatery = docstore.MustDefinition(docstore.Definition{
	Schema: &internal.Schema{
		Table: "eatery",
		Fields: []internal.Field{
			{Name: "name", DDL: "VARCHAR(255) NOT NULL"},
			{Name: "address", DDL: "VARCHAR(512) NULL"},
			{Name: "phone", DDL: "VARCHAR(32) NULL"},
			{Name: "url", DDL: "VARCHAR(255) NULL"},
			{Name: "rating", DDL: "FLOAT NULL"},
		},
		Indexes: []internal.Index{
			{Fields: []string{"name"}, Kind: internal.IndexSecondary},
		},
		RelatedPrefix: "eatery_",
		Related: []*internal.Schema{
			{
				Table: "employee",
				Fields: []internal.Field{
					{Name: "employee_id", DDL: "BIGINT NOT NULL"},
					{Name: "role", DDL: "VARCHAR(64) NULL"},
				},
				Indexes: []internal.Index{
					{Fields: []string{"employee_id"}, Kind: internal.IndexSecondary},
				},
			},
		},
	},
	Workflow: &internal.Workflow{
		Initial: StateDraft,
		Transfers: []internal.Transfer{
			{From: StateDraft, To: StateRegistered},
			{From: StateRegistered, To: StateApproved},
			{From: StateApproved, To: StateClosed},
		},
	},
})

// EateriesForEmployee lists the eateries an employee belongs to.
func EateriesForEmployee(ctx context.Context, s *docstore.Store, employeeID int64) ([]int64, error) {
	d := s.Dialect()
	where := fmt.Sprintf("%s IN (SELECT %s FROM %s WHERE %s=%s)",
		d.QuoteIdentifier("id"),
		d.QuoteIdentifier("eatery_id"),
		d.QuoteIdentifier("eatery_employee"),
		d.QuoteIdentifier("employee_id"),
		d.Placeholder(1))
	return s.Collection(ctx, Eatery, where, []any{employeeID}, d.QuoteIdentifier("name"), 0)
}
