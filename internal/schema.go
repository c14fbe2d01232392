package internal

import "fmt"

// Bookkeeping columns the engine appends to every table it creates.
const (
	ColBlocked       = "blocked"
	ColWfStatus      = "wfStatus"
	ColCreatedByUser = "createdByUser"
	ColChangedByUser = "changedByUser"
	ColCreated       = "created"
	ColChanged       = "changed"
)

// BookkeepingColumns lists the engine-managed columns in creation order.
var BookkeepingColumns = []string{
	ColBlocked,
	ColWfStatus,
	ColCreatedByUser,
	ColChangedByUser,
	ColCreated,
	ColChanged,
}

// IndexKind is the kind of a secondary index.
type IndexKind int

const (
	IndexSecondary IndexKind = iota
	IndexUnique
)

// Field is a single declared column: its name and the literal storage type
// fragment used verbatim in DDL (e.g. "VARCHAR(255) NOT NULL").
type Field struct {
	Name string `json:"name"`
	DDL  string `json:"ddl"`
}

// Index declares a secondary or unique index over one or more declared fields.
type Index struct {
	Fields []string  `json:"fields"`
	Kind   IndexKind `json:"kind"`
}

// Schema is the declarative description of an entity's primary table and its
// one-to-many child tables. Pure data; the docstore package interprets it.
type Schema struct {
	// Table is the storage relation name. For a child schema it is the bare
	// name; the stored name is the parent's RelatedPrefix plus this value.
	Table string `json:"table"`

	// IDField is the primary key column. The engine assumes a surrogate
	// auto-increment numeric id. Defaults to "id" when empty.
	IDField string `json:"idField"`

	// Fields are the declared columns in DDL order.
	Fields []Field `json:"fields"`

	// Indexes are secondary/unique indexes over declared fields.
	Indexes []Index `json:"indexes,omitempty"`

	// RelatedPrefix namespaces child table names and the foreign key column
	// (prefix + IDField) under this parent.
	RelatedPrefix string `json:"relatedPrefix,omitempty"`

	// Related are the child collections, each loaded and reconciled as part
	// of this aggregate.
	Related []*Schema `json:"related,omitempty"`
}

// ID returns the primary key column name.
func (s *Schema) ID() string {
	if s.IDField == "" {
		return "id"
	}
	return s.IDField
}

// ChildTable returns the stored relation name for a child schema.
func (s *Schema) ChildTable(child *Schema) string {
	return s.RelatedPrefix + child.Table
}

// ForeignKey returns the child column referencing this schema's primary key.
func (s *Schema) ForeignKey() string {
	return s.RelatedPrefix + s.ID()
}

// FieldNames returns the declared field names in order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// HasField reports whether name is a declared field.
func (s *Schema) HasField(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Child returns the child schema whose stored table name matches table, or nil.
func (s *Schema) Child(table string) *Schema {
	for _, c := range s.Related {
		if s.ChildTable(c) == table {
			return c
		}
	}
	return nil
}

var reserved = map[string]bool{
	ColBlocked:       true,
	ColWfStatus:      true,
	ColCreatedByUser: true,
	ColChangedByUser: true,
	ColCreated:       true,
	ColChanged:       true,
}

// Validate asserts the schema is self-consistent: non-empty names, no
// duplicate or reserved fields, index fields declared, children valid and
// prefixed. Run once when a definition is registered, not per operation.
func (s *Schema) Validate() error {
	if s.Table == "" {
		return fmt.Errorf("schema has no table name")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema %s declares no fields", s.Table)
	}
	seen := make(map[string]bool)
	for _, f := range s.Fields {
		if f.Name == "" || f.DDL == "" {
			return fmt.Errorf("schema %s has a field with an empty name or type", s.Table)
		}
		if f.Name == s.ID() {
			return fmt.Errorf("schema %s redeclares the id column %s", s.Table, f.Name)
		}
		if reserved[f.Name] {
			return fmt.Errorf("schema %s redeclares the bookkeeping column %s", s.Table, f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema %s declares field %s twice", s.Table, f.Name)
		}
		seen[f.Name] = true
	}
	for _, idx := range s.Indexes {
		if len(idx.Fields) == 0 {
			return fmt.Errorf("schema %s has an index with no fields", s.Table)
		}
		for _, name := range idx.Fields {
			if !seen[name] {
				return fmt.Errorf("schema %s indexes undeclared field %s", s.Table, name)
			}
		}
	}
	if len(s.Related) > 0 && s.RelatedPrefix == "" {
		return fmt.Errorf("schema %s has children but no related tables prefix", s.Table)
	}
	for _, c := range s.Related {
		if len(c.Related) > 0 {
			return fmt.Errorf("schema %s: child %s must not declare its own children", s.Table, c.Table)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("schema %s: %w", s.Table, err)
		}
	}
	return nil
}

// UniqueIndexOn reports whether field is covered by a single-column unique
// index, which is required for unique-field document resolution.
func (s *Schema) UniqueIndexOn(field string) bool {
	for _, idx := range s.Indexes {
		if idx.Kind == IndexUnique && len(idx.Fields) == 1 && idx.Fields[0] == field {
			return true
		}
	}
	return false
}
