package market

import (
	"context"
	"net/url"
	"strings"

	"github.com/finboard/finboard/internal/upstream"
)

// minQueryLength avoids hitting the finance API for one-letter searches.
const minQueryLength = 2

type Symbol struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange,omitempty"`
	Type     string `json:"type,omitempty"`
}

type Client interface {
	Search(ctx context.Context, query string) ([]Symbol, error)
}

type ClientImpl struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) *ClientImpl {
	return &ClientImpl{api: api}
}

func (c *ClientImpl) Search(ctx context.Context, query string) ([]Symbol, error) {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLength {
		return []Symbol{}, nil
	}
	symbols := []Symbol{}
	if err := c.api.Get(ctx, "/market/symbols", url.Values{"q": {query}}, &symbols); err != nil {
		return nil, err
	}
	if symbols == nil {
		return []Symbol{}, nil
	}
	return symbols, nil
}
