package account

import (
	"errors"
	"fmt"

	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
)

type Type string

const (
	Cash          Type = "efectivo"
	Bank          Type = "bancaria"
	CreditCard    Type = "tarjeta_credito"
	Investment    Type = "inversion"
	VirtualWallet Type = "billetera_virtual"
)

var typeLabels = map[Type]string{
	Cash:          "Efectivo",
	Bank:          "Cuenta bancaria",
	CreditCard:    "Tarjeta de crédito",
	Investment:    "Inversión",
	VirtualWallet: "Billetera virtual",
}

var ErrInvalidAccount = errors.New("invalid account")

type Account struct {
	Id            string          `json:"id"`
	Name          string          `json:"name"`
	Type          Type            `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      money.Currency  `json:"currency"`
	BankName      string          `json:"bankName,omitempty"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	Cbu           string          `json:"cbu,omitempty"`
	Alias         string          `json:"alias,omitempty"`
	// Credit card statement fields, only meaningful for CreditCard accounts.
	CreditLimit               decimal.NullDecimal `json:"creditLimit"`
	StatementClosingDay       int                 `json:"statementClosingDay,omitempty"`
	PaymentDueDay             int                 `json:"paymentDueDay,omitempty"`
	IncludeInDashboardSummary bool                `json:"includeInDashboardSummary"`
}

func (t Type) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

func (a Account) IsCreditCard() bool {
	return a.Type == CreditCard
}

// AvailableCredit is the unused part of a credit card limit. Card balances are
// negative while there is debt. Zero for other account types.
func (a Account) AvailableCredit() decimal.Decimal {
	if !a.IsCreditCard() || !a.CreditLimit.Valid {
		return decimal.Zero
	}
	available := a.CreditLimit.Decimal.Add(decimal.Min(a.Balance, decimal.Zero))
	return decimal.Max(available, decimal.Zero)
}

// Validate checks the fields the forms require before anything is sent upstream.
func (a Account) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidAccount)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAccount, a.Type)
	}
	if _, err := money.ParseCurrency(string(a.Currency)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAccount, err)
	}
	if a.IsCreditCard() {
		if !a.CreditLimit.Valid {
			return fmt.Errorf("%w: credit limit is required for credit cards", ErrInvalidAccount)
		}
		if a.StatementClosingDay < 1 || a.StatementClosingDay > 31 || a.PaymentDueDay < 1 || a.PaymentDueDay > 31 {
			return fmt.Errorf("%w: statement closing and payment due days must be between 1 and 31", ErrInvalidAccount)
		}
	}
	return nil
}

// SummaryAccounts selects the accounts shown in the dashboard summary row:
// the pinned ones in pin order, or every account flagged for the summary when nothing is pinned.
func SummaryAccounts(accounts []Account, pinnedIds []string) []Account {
	if len(pinnedIds) == 0 {
		selected := make([]Account, 0, len(accounts))
		for _, a := range accounts {
			if a.IncludeInDashboardSummary {
				selected = append(selected, a)
			}
		}
		return selected
	}

	byId := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byId[a.Id] = a
	}
	selected := make([]Account, 0, len(pinnedIds))
	for _, id := range pinnedIds {
		if a, ok := byId[id]; ok {
			selected = append(selected, a)
		}
	}
	return selected
}
