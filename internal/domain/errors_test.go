package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindAuthFailed, KindOf(NewError(KindAuthFailed, "nope")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("find employee: %w", ErrNotFound)))
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("boom")))
}

func TestErrorExtensions(t *testing.T) {
	err := NewError(KindNotFound, "employee %s not found", "42")
	assert.Equal(t, "employee 42 not found", err.Error())
	assert.Equal(t, map[string]interface{}{"code": "NOT_FOUND"}, err.Extensions())
}
