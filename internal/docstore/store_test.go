package docstore

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cockroachdb/errors"
	"github.com/shopmonkeyus/go-common/logger"
	"github.com/stretchr/testify/assert"

	"github.com/restodesk/restodesk/internal"
)

const (
	stateDraft internal.State = iota + 1
	stateRegistered
	stateApproved
	stateCanceled
)

type mockConnection struct {
	db      *sql.DB
	dialect internal.Dialect
}

func (m *mockConnection) DB(ctx context.Context) (*sql.DB, error) { return m.db, nil }
func (m *mockConnection) Dialect() internal.Dialect               { return m.dialect }

func newMockStore(t *testing.T, dialect internal.Dialect) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store := New(Config{
		Logger:     logger.NewTestLogger(),
		Connection: &mockConnection{db: db, dialect: dialect},
	})
	return store, mock
}

// expectEnsure queues the full provisioning script of the aggregate.
func expectEnsure(mock sqlmock.Sqlmock, dialect internal.Dialect, s *internal.Schema) {
	for _, stmt := range Script(dialect, s) {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

func venueDefinition() Definition {
	return Definition{
		Schema: &internal.Schema{
			Table: "venue",
			Fields: []internal.Field{
				{Name: "name", DDL: "VARCHAR(255) NOT NULL"},
				{Name: "rating", DDL: "FLOAT NULL"},
			},
		},
		Workflow: &internal.Workflow{
			Initial: stateDraft,
			Transfers: []internal.Transfer{
				{From: stateDraft, To: stateRegistered},
				{From: stateRegistered, To: stateApproved},
				{From: stateRegistered, To: stateCanceled},
			},
		},
	}
}

func orderDefinition() Definition {
	return Definition{
		Schema: aggregateSchema(),
		Workflow: &internal.Workflow{
			Initial:   stateDraft,
			Transfers: []internal.Transfer{{From: stateDraft, To: stateRegistered}},
			Related: map[string]*internal.Workflow{
				"order_item": {
					Initial:   stateDraft,
					Transfers: []internal.Transfer{{From: stateDraft, To: stateApproved}},
				},
			},
		},
	}
}

func staffDefinition() Definition {
	return Definition{
		Schema: &internal.Schema{
			Table: "staff",
			Fields: []internal.Field{
				{Name: "login", DDL: "VARCHAR(64) NOT NULL"},
				{Name: "name", DDL: "VARCHAR(255) NULL"},
			},
			Indexes: []internal.Index{
				{Fields: []string{"login"}, Kind: internal.IndexUnique},
			},
		},
	}
}

func TestDefinitionValidate(t *testing.T) {
	assert.NoError(t, venueDefinition().Validate())
	assert.NoError(t, orderDefinition().Validate())

	var err error
	err = Definition{}.Validate()
	assert.True(t, errors.Is(err, internal.ErrDefinition))

	bad := orderDefinition()
	bad.Workflow.Related = map[string]*internal.Workflow{
		"order_ghost": {Initial: stateDraft},
	}
	err = bad.Validate()
	assert.True(t, errors.Is(err, internal.ErrDefinition))
	assert.Contains(t, err.Error(), "order_ghost")

	noInitial := venueDefinition()
	noInitial.Workflow.Initial = internal.StateUnset
	assert.True(t, errors.Is(noInitial.Validate(), internal.ErrDefinition))
}

func TestMustDefinitionPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustDefinition(Definition{})
	})
}
