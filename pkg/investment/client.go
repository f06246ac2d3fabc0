package investment

import (
	"context"

	"github.com/finboard/finboard/internal/upstream"
)

type Client interface {
	List(ctx context.Context) ([]Investment, error)
	Get(ctx context.Context, id string) (Investment, error)
	Create(ctx context.Context, investment Investment) (Investment, error)
	Update(ctx context.Context, investment Investment) (Investment, error)
	Delete(ctx context.Context, id string) error
	Highlights(ctx context.Context) (Highlights, error)
}

type ClientImpl struct {
	api         *upstream.Client
	investments upstream.Resource[Investment]
}

func NewClient(api *upstream.Client) *ClientImpl {
	return &ClientImpl{
		api:         api,
		investments: upstream.NewResource[Investment](api, "/investments"),
	}
}

func (c *ClientImpl) List(ctx context.Context) ([]Investment, error) {
	return c.investments.List(ctx, nil)
}

func (c *ClientImpl) Get(ctx context.Context, id string) (Investment, error) {
	return c.investments.Get(ctx, id)
}

func (c *ClientImpl) Create(ctx context.Context, investment Investment) (Investment, error) {
	return c.investments.Create(ctx, investment)
}

func (c *ClientImpl) Update(ctx context.Context, investment Investment) (Investment, error) {
	return c.investments.Update(ctx, investment.Id, investment)
}

func (c *ClientImpl) Delete(ctx context.Context, id string) error {
	return c.investments.Delete(ctx, id)
}

func (c *ClientImpl) Highlights(ctx context.Context) (Highlights, error) {
	var highlights Highlights
	if err := c.api.Get(ctx, "/investments/highlights", nil, &highlights); err != nil {
		return Highlights{}, err
	}
	return highlights, nil
}
