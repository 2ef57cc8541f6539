package helper_test

import (
	"errors"
	"testing"

	"github.com/on-the-ground/lazy_ive_go/shared/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry_SucceedsWithinBudget(t *testing.T) {
	calls := 0
	err := helper.Retry(5, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsBudget(t *testing.T) {
	failure := errors.New("always")
	calls := 0
	err := helper.Retry(4, func() error {
		calls++
		return failure
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, helper.ErrMaxAttempts)
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 4, calls)
}

func TestRetry_ImmediateSuccess(t *testing.T) {
	calls := 0
	err := helper.Retry(1, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
