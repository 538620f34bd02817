package service

import (
	"strings"

	"pocketledger/models"
)

// UpdateFields partial update of a transaction; nil means "not supplied".
type UpdateFields struct {
	Description       *string  `json:"description"`
	Amount            *float64 `json:"amount"`
	Category          *string  `json:"category"`
	DivisionFactor    *float64 `json:"divisionFactor"`
	IsInstallment     *bool    `json:"isInstallment"`
	TotalInstallments *int     `json:"totalInstallments"`
	PaidInstallments  *int     `json:"paidInstallments"`
}

// Normalize applies in to stored and recomputes the derived amounts.
//
// The supplied amount is always the undivided total; when omitted the stored
// undivided total is reused. Expenses get amount = total / divisionFactor
// (factor defaults to 1); incomes get amount = total. Installment counts are
// cleared unless the result is an installment. The type never changes.
func Normalize(stored models.Transaction, in UpdateFields) (models.Transaction, error) {
	out := stored

	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			out.Description = d
		}
	}
	if in.Category != nil {
		if c := strings.TrimSpace(*in.Category); c != "" {
			out.Category = c
		}
	}

	total := stored.UndividedAmount()
	if in.Amount != nil {
		total = *in.Amount
	}
	out.OriginalAmount = &total

	if stored.Type == models.TypeExpense {
		factor := 1.0
		if in.DivisionFactor != nil {
			if *in.DivisionFactor < 1 {
				return stored, ErrDivisionFactor
			}
			factor = *in.DivisionFactor
		}
		out.DivisionFactor = factor
		out.Amount = total / factor

		out.IsInstallment = in.IsInstallment != nil && *in.IsInstallment
		if out.IsInstallment {
			out.TotalInstallments = in.TotalInstallments
			out.PaidInstallments = in.PaidInstallments
		}
	} else {
		out.Amount = total
	}

	if !out.IsInstallment {
		out.TotalInstallments = nil
		out.PaidInstallments = nil
	}
	return out, nil
}
