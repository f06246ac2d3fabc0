package exchange_rate

import (
	"context"

	"github.com/finboard/finboard/internal/upstream"
)

type ClientStub struct {
	Rates []Rate
	Err   error
}

func NewClientStub(rates ...Rate) *ClientStub {
	return &ClientStub{Rates: rates}
}

// Current returns the latest rate held by the stub.
func (c *ClientStub) Current(ctx context.Context) (Rate, error) {
	if c.Err != nil {
		return Rate{}, c.Err
	}
	var latest *Rate
	for i := range c.Rates {
		if latest == nil || c.Rates[i].Period().After(latest.Period()) {
			latest = &c.Rates[i]
		}
	}
	if latest == nil {
		return Rate{}, notFound()
	}
	return *latest, nil
}

func (c *ClientStub) ForMonth(ctx context.Context, year, month int) (Rate, error) {
	if c.Err != nil {
		return Rate{}, c.Err
	}
	for _, r := range c.Rates {
		if r.Year == year && r.Month == month {
			return r, nil
		}
	}
	return Rate{}, notFound()
}

func notFound() error {
	return &upstream.APIError{Status: 404, Message: "exchange rate not found"}
}
