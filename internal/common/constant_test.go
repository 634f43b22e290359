package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTodosKey_PartitionsByOwner(t *testing.T) {
	assert.Equal(t, "todos_u-1", TodosKey("u-1"))
	assert.NotEqual(t, TodosKey("a"), TodosKey("b"))
	assert.NotEqual(t, LegacyTodosKey, TodosKey(""))
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("%w: password too short", ErrValidation)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrConflict))
}
