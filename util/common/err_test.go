package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine(nil, nil))

	a, b := errors.New("listener"), errors.New("shutdown")
	err := Combine(a, nil, b)
	assert.ErrorIs(t, err, a)
	assert.ErrorIs(t, err, b)
}

func TestRecoverSwallowsPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover("job")
		panic("boom")
	})
}
