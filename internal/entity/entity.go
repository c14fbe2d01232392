package entity

import "github.com/restodesk/restodesk/internal/docstore"

// All lists every entity definition, in provisioning order (parents before
// the entities whose fields reference them).
func All() []docstore.Definition {
	return []docstore.Definition{Eatery, Employee, Meal, Menu, Order, Feedback}
}
