package entity

import (
	"github.com/restodesk/restodesk/internal"
	"github.com/restodesk/restodesk/internal/docstore"
)

// Menu is an eatery's published menu; its positions live in the menu_item
// child collection.
var Menu = docstore.MustDefinition(docstore.Definition{
	Schema: &internal.Schema{
		Table: "menu",
		Fields: []internal.Field{
			{Name: "eatery_id", DDL: "BIGINT NOT NULL"},
			{Name: "name", DDL: "VARCHAR(255) NOT NULL"},
		},
		Indexes: []internal.Index{
			{Fields: []string{"eatery_id"}, Kind: internal.IndexSecondary},
		},
		RelatedPrefix: "menu_",
		Related: []*internal.Schema{
			{
				Table: "item",
				Fields: []internal.Field{
					{Name: "meal_id", DDL: "BIGINT NOT NULL"},
					{Name: "price", DDL: "DECIMAL(10,2) NULL"},
					{Name: "position", DDL: "INTEGER NULL"},
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
