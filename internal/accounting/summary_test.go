package accounting

import (
	"testing"

	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func method(m models.PaymentMethod) *models.PaymentMethod { return &m }

func TestBuildLedgerSummary(t *testing.T) {
	rows := []models.Transaction{
		{TransactionType: models.TransactionIncome, Amount: 1000, PaymentMethod: method(models.MethodCard)},
		{TransactionType: models.TransactionIncome, Amount: 500, PaymentMethod: method(models.MethodCash)},
		{TransactionType: models.TransactionIncome, Amount: 250}, // no method recorded
		{TransactionType: models.TransactionExpense, Amount: 300, PaymentMethod: method(models.MethodTransfer)},
		{TransactionType: models.TransactionExpense, Amount: 200, PaymentMethod: method(models.MethodCard)},
	}

	s := BuildLedgerSummary(rows)

	assert.Equal(t, 1750.0, s.TotalIncome)
	assert.Equal(t, 500.0, s.TotalExpense)
	assert.Equal(t, 1250.0, s.Balance)

	assert.Equal(t, 1000.0, s.IncomeCard)
	assert.Equal(t, 500.0, s.IncomeCash)
	assert.Equal(t, 0.0, s.IncomeTransfer)
	// the method-less entry is in the total but no bucket
	assert.Less(t, s.IncomeCard+s.IncomeCash+s.IncomeTransfer, s.TotalIncome)

	assert.Equal(t, 200.0, s.ExpenseCard)
	assert.Equal(t, 0.0, s.ExpenseCash)
	assert.Equal(t, 300.0, s.ExpenseTransfer)
}

func TestBuildLedgerSummaryEmpty(t *testing.T) {
	s := BuildLedgerSummary(nil)
	assert.Equal(t, LedgerSummary{}, s)
}
