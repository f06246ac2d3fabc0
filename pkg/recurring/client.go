package recurring

import (
	"context"
	"net/url"

	"github.com/finboard/finboard/internal/upstream"
)

type Client interface {
	List(ctx context.Context) ([]RecurringTransaction, error)
	Get(ctx context.Context, id string) (RecurringTransaction, error)
	Create(ctx context.Context, transaction RecurringTransaction) (RecurringTransaction, error)
	Update(ctx context.Context, transaction RecurringTransaction) (RecurringTransaction, error)
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) (RecurringTransaction, error)
}

type ClientImpl struct {
	api          *upstream.Client
	transactions upstream.Resource[RecurringTransaction]
}

func NewClient(api *upstream.Client) *ClientImpl {
	return &ClientImpl{
		api:          api,
		transactions: upstream.NewResource[RecurringTransaction](api, "/recurring-transactions"),
	}
}

func (c *ClientImpl) List(ctx context.Context) ([]RecurringTransaction, error) {
	return c.transactions.List(ctx, nil)
}

func (c *ClientImpl) Get(ctx context.Context, id string) (RecurringTransaction, error) {
	return c.transactions.Get(ctx, id)
}

func (c *ClientImpl) Create(ctx context.Context, transaction RecurringTransaction) (RecurringTransaction, error) {
	return c.transactions.Create(ctx, transaction)
}

func (c *ClientImpl) Update(ctx context.Context, transaction RecurringTransaction) (RecurringTransaction, error) {
	return c.transactions.Update(ctx, transaction.Id, transaction)
}

func (c *ClientImpl) Delete(ctx context.Context, id string) error {
	return c.transactions.Delete(ctx, id)
}

func (c *ClientImpl) SetActive(ctx context.Context, id string, active bool) (RecurringTransaction, error) {
	var updated RecurringTransaction
	path := "/recurring-transactions/" + url.PathEscape(id) + "/active"
	if err := c.api.Patch(ctx, path, ActiveRequest{IsActive: active}, &updated); err != nil {
		return RecurringTransaction{}, err
	}
	return updated, nil
}
