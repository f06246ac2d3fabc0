package exchange_rate

import (
	"context"
	"net/url"
	"strconv"

	"github.com/finboard/finboard/internal/upstream"
)

type Client interface {
	Current(ctx context.Context) (Rate, error)
	ForMonth(ctx context.Context, year, month int) (Rate, error)
}

type ClientImpl struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) *ClientImpl {
	return &ClientImpl{api: api}
}

func (c *ClientImpl) Current(ctx context.Context) (Rate, error) {
	var rate Rate
	if err := c.api.Get(ctx, "/exchange-rates/current", nil, &rate); err != nil {
		return Rate{}, err
	}
	return rate, nil
}

func (c *ClientImpl) ForMonth(ctx context.Context, year, month int) (Rate, error) {
	query := url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {strconv.Itoa(month)},
	}
	var rate Rate
	if err := c.api.Get(ctx, "/exchange-rates", query, &rate); err != nil {
		return Rate{}, err
	}
	return rate, nil
}
