package account

import (
	"context"

	"github.com/finboard/finboard/internal/upstream"
)

type Client interface {
	List(ctx context.Context) ([]Account, error)
	Get(ctx context.Context, id string) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	Update(ctx context.Context, account Account) (Account, error)
	Delete(ctx context.Context, id string) error
}

type ClientImpl struct {
	accounts upstream.Resource[Account]
}

func NewClient(api *upstream.Client) *ClientImpl {
	return &ClientImpl{accounts: upstream.NewResource[Account](api, "/accounts")}
}

func (c *ClientImpl) List(ctx context.Context) ([]Account, error) {
	return c.accounts.List(ctx, nil)
}

func (c *ClientImpl) Get(ctx context.Context, id string) (Account, error) {
	return c.accounts.Get(ctx, id)
}

func (c *ClientImpl) Create(ctx context.Context, account Account) (Account, error) {
	return c.accounts.Create(ctx, account)
}

func (c *ClientImpl) Update(ctx context.Context, account Account) (Account, error) {
	return c.accounts.Update(ctx, account.Id, account)
}

func (c *ClientImpl) Delete(ctx context.Context, id string) error {
	return c.accounts.Delete(ctx, id)
}
