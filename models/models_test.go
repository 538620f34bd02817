package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBelongsTo(t *testing.T) {
	tx := Transaction{ID: 1, UserID: 7}
	assert.True(t, BelongsTo(tx, 7))
	assert.False(t, BelongsTo(tx, 8))
	assert.False(t, BelongsTo(tx, 0))

	ledger := Ledger{ID: 2, UserID: 3}
	assert.True(t, BelongsTo(ledger, 3))
	assert.False(t, BelongsTo(ledger, 7))

	assert.False(t, BelongsTo(nil, 3))
	assert.False(t, BelongsTo(Transaction{}, 0))
}

func TestTransaction_UndividedAmount(t *testing.T) {
	total := 300.0
	assert.Equal(t, 300.0, Transaction{Amount: 100, OriginalAmount: &total}.UndividedAmount())
	assert.Equal(t, 42.5, Transaction{Amount: 42.5}.UndividedAmount())
}

func TestIsValidType(t *testing.T) {
	assert.True(t, IsValidType(TypeIncome))
	assert.True(t, IsValidType(TypeExpense))
	assert.False(t, IsValidType("ingreso"))
	assert.False(t, IsValidType(""))
}
