package service

import (
	"encoding/json"

	"pocketledger/models"

	"github.com/shopspring/decimal"
)

// Summary income and expense totals over a set of transactions.
type Summary struct {
	TotalIncome        decimal.Decimal            `json:"totalIncome"`
	TotalExpenses      decimal.Decimal            `json:"totalExpenses"`
	Balance            decimal.Decimal            `json:"balance"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
}

// Summarize aggregates txs. Incomes count their amount; expenses count their
// undivided total, overall and per category.
func Summarize(txs []models.Transaction) Summary {
	s := Summary{
		TotalIncome:        decimal.Zero,
		TotalExpenses:      decimal.Zero,
		ExpensesByCategory: make(map[string]decimal.Decimal),
	}
	for _, tx := range txs {
		switch tx.Type {
		case models.TypeIncome:
			s.TotalIncome = s.TotalIncome.Add(decimal.NewFromFloat(tx.Amount))
		case models.TypeExpense:
			v := decimal.NewFromFloat(tx.UndividedAmount())
			s.TotalExpenses = s.TotalExpenses.Add(v)
			s.ExpensesByCategory[tx.Category] = s.ExpensesByCategory[tx.Category].Add(v)
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// MarshalJSON writes the totals as exact JSON numbers, not quoted strings.
func (s Summary) MarshalJSON() ([]byte, error) {
	byCategory := make(map[string]json.Number, len(s.ExpensesByCategory))
	for category, v := range s.ExpensesByCategory {
		byCategory[category] = json.Number(v.String())
	}
	return json.Marshal(struct {
		TotalIncome        json.Number            `json:"totalIncome"`
		TotalExpenses      json.Number            `json:"totalExpenses"`
		Balance            json.Number            `json:"balance"`
		ExpensesByCategory map[string]json.Number `json:"expensesByCategory"`
	}{
		TotalIncome:        json.Number(s.TotalIncome.String()),
		TotalExpenses:      json.Number(s.TotalExpenses.String()),
		Balance:            json.Number(s.Balance.String()),
		ExpensesByCategory: byCategory,
	})
}
