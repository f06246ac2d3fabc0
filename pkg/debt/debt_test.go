package debt

import (
	"testing"
	"time"

	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func validDebt() DebtAndLoan {
	return DebtAndLoan{
		Type:         Debt,
		Counterparty: "Bank",
		TotalAmount:  amount(1000),
		Currency:     money.ARS,
		Status:       Pending,
	}
}

func TestDebtAndLoan_Remaining(t *testing.T) {
	t.Run("should be completed when fully paid", func(t *testing.T) {
		d := DebtAndLoan{TotalAmount: amount(1000), PaidAmount: amount(1000), Status: InProgress}

		assert.True(t, d.Remaining().IsZero())
		assert.True(t, d.IsSettled())
		assert.Equal(t, Completed, d.DisplayStatus())
		assert.Equal(t, "100", d.PaidPercentage().String())
	})

	t.Run("should never go negative when overpaid", func(t *testing.T) {
		d := DebtAndLoan{TotalAmount: amount(1000), PaidAmount: amount(1200)}

		assert.True(t, d.Remaining().IsZero())
	})

	t.Run("should keep status while money is owed", func(t *testing.T) {
		d := DebtAndLoan{TotalAmount: amount(1000), PaidAmount: amount(250), Status: InProgress}

		assert.True(t, amount(750).Equal(d.Remaining()))
		assert.Equal(t, InProgress, d.DisplayStatus())
		assert.Equal(t, "25", d.PaidPercentage().String())
	})

	t.Run("should keep cancelled status", func(t *testing.T) {
		d := DebtAndLoan{TotalAmount: amount(1000), PaidAmount: amount(1000), Status: Cancelled}

		assert.Equal(t, Cancelled, d.DisplayStatus())
	})
}

func TestDebtAndLoan_InstallmentsLeft(t *testing.T) {
	assert.Nil(t, DebtAndLoan{}.InstallmentsLeft())

	d := DebtAndLoan{Installments: &Installments{InstallmentsTotalForOther: 12, InstallmentsPaid: 5}}
	left := d.InstallmentsLeft()

	require.NotNil(t, left)
	assert.Equal(t, 7, *left)
}

func TestDebtAndLoan_IsOverdue(t *testing.T) {
	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	today := time.Date(2025, 5, 10, 23, 0, 0, 0, time.UTC)

	owed := DebtAndLoan{TotalAmount: amount(100), DueDate: &yesterday}
	dueToday := DebtAndLoan{TotalAmount: amount(100), DueDate: &today}
	paid := DebtAndLoan{TotalAmount: amount(100), PaidAmount: amount(100), DueDate: &yesterday}

	assert.True(t, owed.IsOverdue(now))
	assert.False(t, dueToday.IsOverdue(now))
	assert.False(t, paid.IsOverdue(now))
	assert.False(t, DebtAndLoan{TotalAmount: amount(100)}.IsOverdue(now))
}

func TestFrequency_NextPaymentAfter(t *testing.T) {
	date := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 2, 7, 0, 0, 0, 0, time.UTC), Weekly.NextPaymentAfter(date))
	assert.Equal(t, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), Biweekly.NextPaymentAfter(date))
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Monthly.NextPaymentAfter(date))
}

func TestDebtAndLoan_NextInstallmentDate(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }
	installments := func(paid int, next time.Time) DebtAndLoan {
		return DebtAndLoan{
			TotalAmount: amount(1000),
			Status:      InProgress,
			Installments: &Installments{
				InstallmentsTotalForOther: 5,
				InstallmentsPaid:          paid,
				Frequency:                 Weekly,
				NextPaymentDate:           &next,
			},
		}
	}

	t.Run("should keep a future date", func(t *testing.T) {
		assert.Equal(t, day(20), *installments(1, day(20)).NextInstallmentDate(day(10)))
	})

	t.Run("should roll a past date forward by the frequency", func(t *testing.T) {
		assert.Equal(t, day(15), *installments(0, day(1)).NextInstallmentDate(day(10)))
	})

	t.Run("should stop at the last installment left", func(t *testing.T) {
		assert.Equal(t, day(8), *installments(3, day(1)).NextInstallmentDate(day(20)))
	})

	t.Run("should be nil without installments left or when settled", func(t *testing.T) {
		assert.Nil(t, installments(5, day(1)).NextInstallmentDate(day(10)))
		settled := installments(1, day(1))
		settled.PaidAmount = amount(1000)
		assert.Nil(t, settled.NextInstallmentDate(day(10)))
		assert.Nil(t, DebtAndLoan{TotalAmount: amount(1)}.NextInstallmentDate(day(10)))
	})
}

func TestDebtAndLoan_Validate(t *testing.T) {
	assert.NoError(t, validDebt().Validate())

	noCounterparty := validDebt()
	noCounterparty.Counterparty = ""
	assert.ErrorIs(t, noCounterparty.Validate(), ErrInvalidDebt)

	badType := validDebt()
	badType.Type = "mortgage"
	assert.ErrorIs(t, badType.Validate(), ErrInvalidDebt)

	badInstallments := validDebt()
	badInstallments.Installments = &Installments{InstallmentsTotalForOther: 3, InstallmentsPaid: 4, Frequency: Monthly}
	assert.ErrorIs(t, badInstallments.Validate(), ErrInvalidDebt)

	withInstallments := validDebt()
	withInstallments.Installments = &Installments{InstallmentsTotalForOther: 3, InstallmentsPaid: 1, Frequency: Biweekly}
	assert.NoError(t, withInstallments.Validate())
}
