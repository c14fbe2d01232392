package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSchema() *Schema {
	return &Schema{
		Table: "eatery",
		Fields: []Field{
			{Name: "name", DDL: "VARCHAR(255) NOT NULL"},
			{Name: "phone", DDL: "VARCHAR(32) NULL"},
		},
		Indexes: []Index{
			{Fields: []string{"name"}, Kind: IndexSecondary},
		},
		RelatedPrefix: "eatery_",
		Related: []*Schema{
			{
				Table:  "employee",
				Fields: []Field{{Name: "role", DDL: "VARCHAR(64) NULL"}},
			},
		},
	}
}

func TestSchemaValidate(t *testing.T) {
	assert.NoError(t, validSchema().Validate())
}

func TestSchemaValidateRejectsDuplicateField(t *testing.T) {
	s := validSchema()
	s.Fields = append(s.Fields, Field{Name: "name", DDL: "TEXT NULL"})
	assert.ErrorContains(t, s.Validate(), "declares field name twice")
}

func TestSchemaValidateRejectsReservedField(t *testing.T) {
	s := validSchema()
	s.Fields = append(s.Fields, Field{Name: ColBlocked, DDL: "BOOLEAN NULL"})
	assert.ErrorContains(t, s.Validate(), "bookkeeping column blocked")
}

func TestSchemaValidateRejectsIDRedeclaration(t *testing.T) {
	s := validSchema()
	s.Fields = append(s.Fields, Field{Name: "id", DDL: "BIGINT NOT NULL"})
	assert.ErrorContains(t, s.Validate(), "redeclares the id column")
}

func TestSchemaValidateRejectsIndexOnUndeclaredField(t *testing.T) {
	s := validSchema()
	s.Indexes = append(s.Indexes, Index{Fields: []string{"ghost"}})
	assert.ErrorContains(t, s.Validate(), "indexes undeclared field ghost")
}

func TestSchemaValidateRequiresPrefixForChildren(t *testing.T) {
	s := validSchema()
	s.RelatedPrefix = ""
	assert.ErrorContains(t, s.Validate(), "no related tables prefix")
}

func TestSchemaValidateRejectsGrandchildren(t *testing.T) {
	s := validSchema()
	s.Related[0].RelatedPrefix = "employee_"
	s.Related[0].Related = []*Schema{
		{Table: "shift", Fields: []Field{{Name: "day", DDL: "DATE NULL"}}},
	}
	assert.ErrorContains(t, s.Validate(), "must not declare its own children")
}

func TestSchemaNaming(t *testing.T) {
	s := validSchema()
	assert.Equal(t, "id", s.ID())
	assert.Equal(t, "eatery_employee", s.ChildTable(s.Related[0]))
	assert.Equal(t, "eatery_id", s.ForeignKey())
	assert.Equal(t, []string{"name", "phone"}, s.FieldNames())
	assert.True(t, s.HasField("name"))
	assert.False(t, s.HasField("ghost"))
	assert.Equal(t, s.Related[0], s.Child("eatery_employee"))
	assert.Nil(t, s.Child("eatery_ghost"))

	custom := &Schema{IDField: "uid"}
	assert.Equal(t, "uid", custom.ID())
}

func TestSchemaUniqueIndexOn(t *testing.T) {
	s := validSchema()
	assert.False(t, s.UniqueIndexOn("name"))
	s.Indexes[0].Kind = IndexUnique
	assert.True(t, s.UniqueIndexOn("name"))
	// multi-column unique indexes do not qualify for point resolution
	s.Indexes[0].Fields = []string{"name", "phone"}
	assert.False(t, s.UniqueIndexOn("name"))
}
