package accounting

import (
	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LedgerSummary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`

	IncomeCard     float64 `json:"income_card"`
	IncomeCash     float64 `json:"income_cash"`
	IncomeTransfer float64 `json:"income_transfer"`

	ExpenseCard     float64 `json:"expense_card"`
	ExpenseCash     float64 `json:"expense_cash"`
	ExpenseTransfer float64 `json:"expense_transfer"`
}

// BuildLedgerSummary totals the ledger with a per-payment-method breakdown.
// Entries without a payment method count toward the totals but no method
// bucket, so the buckets may sum to less than the total.
func BuildLedgerSummary(rows []models.Transaction) LedgerSummary {
	var s LedgerSummary
	for i := range rows {
		t := &rows[i]
		switch t.TransactionType {
		case models.TransactionIncome:
			s.TotalIncome += t.Amount
			if t.PaymentMethod != nil {
				switch *t.PaymentMethod {
				case models.MethodCard:
					s.IncomeCard += t.Amount
				case models.MethodCash:
					s.IncomeCash += t.Amount
				case models.MethodTransfer:
					s.IncomeTransfer += t.Amount
				}
			}
		case models.TransactionExpense:
			s.TotalExpense += t.Amount
			if t.PaymentMethod != nil {
				switch *t.PaymentMethod {
				case models.MethodCard:
					s.ExpenseCard += t.Amount
				case models.MethodCash:
					s.ExpenseCash += t.Amount
				case models.MethodTransfer:
					s.ExpenseTransfer += t.Amount
				}
			}
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}

// GET /api/transactions/summary
// Takes the same filters as the transaction list.
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Transaction
		if err := filteredQuery(c).Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load transactions")
		}
		return c.JSON(BuildLedgerSummary(rows))
	}
}
