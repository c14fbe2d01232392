package entity

import (
	"github.com/restodesk/restodesk/internal"
	"github.com/restodesk/restodesk/internal/docstore"
)

// Employee is a platform user. The login is the declared unique field used
// for lookup by the auth layer.
var Employee = docstore.MustDefinition(docstore.Definition{
	Schema: &internal.Schema{
		Table: "employee",
		Fields: []internal.Field{
			{Name: "login", DDL: "VARCHAR(64) NOT NULL"},
			{Name: "name", DDL: "VARCHAR(255) NULL"},
			{Name: "email", DDL: "VARCHAR(255) NULL"},
			{Name: "phone", DDL: "VARCHAR(32) NULL"},
		},
		Indexes: []internal.Index{
			{Fields: []string{"login"}, Kind: internal.IndexUnique},
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

// EmployeeByLogin returns a document resolving to the employee with the
// given login on Load.
func EmployeeByLogin(s *docstore.Store, login string) *docstore.Document {
	return s.ByUniqueField(Employee, "login", login)
}
