package internal

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	assert.True(t, errors.Is(NotFoundf("eatery %d not found", 7), ErrNotFound))
	assert.True(t, errors.Is(MissingParameterf("acting user is required"), ErrMissingParameter))
	assert.True(t, errors.Is(DefinitionErrorf("schema %s is broken", "eatery"), ErrDefinition))
	assert.True(t, errors.Is(AmbiguousTransitionf("2 legal transitions"), ErrAmbiguousTransition))

	wrapped := ConnectionError(errors.New("dial tcp: refused"), "connecting to %s", "localhost")
	assert.True(t, errors.Is(wrapped, ErrConnection))
	assert.Contains(t, wrapped.Error(), "localhost")
	assert.Contains(t, wrapped.Error(), "refused")
}

func TestErrorMessages(t *testing.T) {
	err := NotFoundf("eatery with id=%d not found", 7)
	assert.Equal(t, "eatery with id=7 not found", err.Error())
	assert.NotErrorIs(t, err, ErrMissingParameter)
}
