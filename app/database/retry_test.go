package database

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

func TestIsRetryableClassification(t *testing.T) {
	assert.False(t, isRetryable(nil))
	assert.False(t, isRetryable(errors.New("syntax error")))
	assert.False(t, isRetryable(&pq.Error{Code: "23505"}))

	assert.True(t, isRetryable(driver.ErrBadConn))
	assert.True(t, isRetryable(fmt.Errorf("query: %w", driver.ErrBadConn)))
	assert.True(t, isRetryable(&pq.Error{Code: "08006"}))
	assert.True(t, isRetryable(&pq.Error{Code: "57P01"}))
}

func TestRetrySucceedsImmediately(t *testing.T) {
	calls := 0
	err := Retry("test op", func() error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryPassesThroughNonRetryableErrors(t *testing.T) {
	calls := 0
	boom := models.NewValidationError("bad input")
	err := Retry("test op", func() error {
		calls++
		return boom
	})
	assert.Equal(t, 1, calls, "non-retryable errors must not be retried")
	assert.True(t, models.IsValidation(err))
	assert.False(t, models.IsDependency(err))
}
