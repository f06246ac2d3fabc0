package debt

import (
	"errors"
	"fmt"
	"time"

	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
)

// Type tells who owes whom: a Debt is owed by the user, a Loan is owed to the user.
type Type string

const (
	Debt Type = "debt"
	Loan Type = "loan"
)

type Status string

const (
	Pending    Status = "pending"
	InProgress Status = "in_progress"
	Completed  Status = "completed"
	Defaulted  Status = "defaulted"
	Cancelled  Status = "cancelled"
)

type Frequency string

const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
)

var (
	ErrInvalidDebt    = errors.New("invalid debt")
	ErrInvalidPayment = errors.New("invalid debt payment")
)

type Installments struct {
	InstallmentsTotalForOther  int             `json:"installmentsTotalForOther"`
	InstallmentsPaid           int             `json:"installmentsPaid"`
	RepaymentInstallmentAmount decimal.Decimal `json:"repaymentInstallmentAmount"`
	Frequency                  Frequency       `json:"frequency"`
	NextPaymentDate            *time.Time      `json:"nextPaymentDate,omitempty"`
}

type DebtAndLoan struct {
	Id           string          `json:"id"`
	Type         Type            `json:"type"`
	Counterparty string          `json:"counterparty"`
	Description  string          `json:"description,omitempty"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	Currency     money.Currency  `json:"currency"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	Status       Status          `json:"status"`
	Installments *Installments   `json:"installments,omitempty"`
}

// PaymentRequest registers a payment. For a debt the account is debited, for a loan credited.
type PaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	AccountId string          `json:"accountId"`
	Date      *time.Time      `json:"date,omitempty"`
	Note      string          `json:"note,omitempty"`
}

func (d DebtAndLoan) Remaining() decimal.Decimal {
	return decimal.Max(d.TotalAmount.Sub(d.PaidAmount), decimal.Zero)
}

func (d DebtAndLoan) IsSettled() bool {
	return d.Remaining().IsZero()
}

// DisplayStatus is the status shown to the user. A fully paid item reads as
// completed even when the finance API has not caught up yet.
func (d DebtAndLoan) DisplayStatus() Status {
	if d.IsSettled() && d.Status != Cancelled {
		return Completed
	}
	return d.Status
}

func (d DebtAndLoan) PaidPercentage() decimal.Decimal {
	return money.Clamp(money.Percentage(d.PaidAmount, d.TotalAmount), decimal.Zero, decimal.NewFromInt(100))
}

// InstallmentsLeft returns nil when the item is not paid in installments.
func (d DebtAndLoan) InstallmentsLeft() *int {
	if d.Installments == nil {
		return nil
	}
	left := max(d.Installments.InstallmentsTotalForOther-d.Installments.InstallmentsPaid, 0)
	return &left
}

// IsOverdue reports a due date in the past while money is still owed.
func (d DebtAndLoan) IsOverdue(now time.Time) bool {
	if d.DueDate == nil || d.IsSettled() || d.Status == Cancelled {
		return false
	}
	return utils.DaysBetween(now, *d.DueDate) < 0
}

// NextPaymentAfter moves a payment date forward by one installment period.
func (f Frequency) NextPaymentAfter(date time.Time) time.Time {
	switch f {
	case Weekly:
		return date.AddDate(0, 0, 7)
	case Biweekly:
		return date.AddDate(0, 0, 14)
	default:
		return date.AddDate(0, 1, 0)
	}
}

// NextInstallmentDate is the first installment due on or after now's day. The
// stored date is rolled forward by the installment frequency when the finance
// API has not advanced it, but never past the last installment left.
// Nil for items not paid in installments, without a date, or closed.
func (d DebtAndLoan) NextInstallmentDate(now time.Time) *time.Time {
	i := d.Installments
	if i == nil || i.NextPaymentDate == nil || d.IsSettled() || d.Status == Cancelled {
		return nil
	}
	left := *d.InstallmentsLeft()
	if left == 0 {
		return nil
	}
	next := *i.NextPaymentDate
	for n := 1; n < left && utils.DaysBetween(now, next) < 0; n++ {
		next = i.Frequency.NextPaymentAfter(next)
	}
	return &next
}

func (d DebtAndLoan) Validate() error {
	if d.Type != Debt && d.Type != Loan {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidDebt, d.Type)
	}
	if d.Counterparty == "" {
		return fmt.Errorf("%w: counterparty is required", ErrInvalidDebt)
	}
	if !d.TotalAmount.IsPositive() {
		return fmt.Errorf("%w: total amount must be positive", ErrInvalidDebt)
	}
	if d.PaidAmount.IsNegative() {
		return fmt.Errorf("%w: paid amount cannot be negative", ErrInvalidDebt)
	}
	if _, err := money.ParseCurrency(string(d.Currency)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDebt, err)
	}
	switch d.Status {
	case "", Pending, InProgress, Completed, Defaulted, Cancelled:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidDebt, d.Status)
	}
	if i := d.Installments; i != nil {
		if i.InstallmentsTotalForOther < 1 {
			return fmt.Errorf("%w: installments total must be at least 1", ErrInvalidDebt)
		}
		if i.InstallmentsPaid < 0 || i.InstallmentsPaid > i.InstallmentsTotalForOther {
			return fmt.Errorf("%w: installments paid out of range", ErrInvalidDebt)
		}
		switch i.Frequency {
		case Weekly, Biweekly, Monthly:
		default:
			return fmt.Errorf("%w: unknown installment frequency %q", ErrInvalidDebt, i.Frequency)
		}
	}
	return nil
}

func (p PaymentRequest) Validate() error {
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidPayment)
	}
	if p.AccountId == "" {
		return fmt.Errorf("%w: account is required", ErrInvalidPayment)
	}
	return nil
}
