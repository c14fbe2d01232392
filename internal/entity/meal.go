package entity

import (
	"github.com/restodesk/restodesk/internal"
	"github.com/restodesk/restodesk/internal/docstore"
)

// Meal is a dish offered by an eatery, referenced by menu and order items.
var Meal = docstore.MustDefinition(docstore.Definition{
	Schema: &internal.Schema{
		Table: "meal",
		Fields: []internal.Field{
			{Name: "eatery_id", DDL: "BIGINT NOT NULL"},
			{Name: "name", DDL: "VARCHAR(255) NOT NULL"},
			{Name: "description", DDL: "TEXT NULL"},
			{Name: "price", DDL: "DECIMAL(10,2) NULL"},
			{Name: "currency", DDL: "VARCHAR(8) NULL"},
		},
		Indexes: []internal.Index{
			{Fields: []string{"eatery_id"}, Kind: internal.IndexSecondary},
		},
	},
	Workflow: &internal.Workflow{
		Initial: StateDraft,
		Transfers: []internal.Transfer{
			{From: StateDraft, To: StateRegistered},
			{From: StateRegistered, To: StateClosed},
		},
	},
})
