package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReceiptNumberShape(t *testing.T) {
	receipt := newReceiptNumber()
	assert.True(t, strings.HasPrefix(receipt, "RCT-"))
	assert.Len(t, receipt, 12)
	assert.Equal(t, strings.ToUpper(receipt), receipt)
}

func TestNewReceiptNumberUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		r := newReceiptNumber()
		assert.False(t, seen[r], "duplicate receipt %s", r)
		seen[r] = true
	}
}
