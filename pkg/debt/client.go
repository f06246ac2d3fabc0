package debt

import (
	"context"
	"net/url"

	"github.com/finboard/finboard/internal/upstream"
)

type Client interface {
	List(ctx context.Context, debtType Type) ([]DebtAndLoan, error)
	Get(ctx context.Context, id string) (DebtAndLoan, error)
	Create(ctx context.Context, debt DebtAndLoan) (DebtAndLoan, error)
	Update(ctx context.Context, debt DebtAndLoan) (DebtAndLoan, error)
	Delete(ctx context.Context, id string) error
	RegisterPayment(ctx context.Context, id string, payment PaymentRequest) (DebtAndLoan, error)
}

type ClientImpl struct {
	debts upstream.Resource[DebtAndLoan]
}

func NewClient(api *upstream.Client) *ClientImpl {
	return &ClientImpl{debts: upstream.NewResource[DebtAndLoan](api, "/debts-loans")}
}

func (c *ClientImpl) List(ctx context.Context, debtType Type) ([]DebtAndLoan, error) {
	var query url.Values
	if debtType != "" {
		query = url.Values{"type": {string(debtType)}}
	}
	return c.debts.List(ctx, query)
}

func (c *ClientImpl) Get(ctx context.Context, id string) (DebtAndLoan, error) {
	return c.debts.Get(ctx, id)
}

func (c *ClientImpl) Create(ctx context.Context, debt DebtAndLoan) (DebtAndLoan, error) {
	return c.debts.Create(ctx, debt)
}

func (c *ClientImpl) Update(ctx context.Context, debt DebtAndLoan) (DebtAndLoan, error) {
	return c.debts.Update(ctx, debt.Id, debt)
}

func (c *ClientImpl) Delete(ctx context.Context, id string) error {
	return c.debts.Delete(ctx, id)
}

func (c *ClientImpl) RegisterPayment(ctx context.Context, id string, payment PaymentRequest) (DebtAndLoan, error) {
	return c.debts.Action(ctx, id, "payments", payment)
}
