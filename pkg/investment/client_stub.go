package investment

import (
	"context"
	"fmt"
	"sync"

	"github.com/finboard/finboard/internal/upstream"
)

// ClientStub keeps investments in memory. Highlights are summarized from them
// unless HighlightsErr is set.
type ClientStub struct {
	mu            sync.RWMutex
	investments   []Investment
	nextId        int
	ListErr       error
	HighlightsErr error
}

func NewClientStub(investments ...Investment) *ClientStub {
	return &ClientStub{investments: investments}
}

func (c *ClientStub) List(ctx context.Context) ([]Investment, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ListErr != nil {
		return nil, c.ListErr
	}
	result := make([]Investment, len(c.investments))
	copy(result, c.investments)
	return result, nil
}

func (c *ClientStub) Get(ctx context.Context, id string) (Investment, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, i := range c.investments {
		if i.Id == id {
			return i, nil
		}
	}
	return Investment{}, notFound()
}

func (c *ClientStub) Create(ctx context.Context, investment Investment) (Investment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextId++
	investment.Id = fmt.Sprintf("inv-%d", c.nextId)
	c.investments = append(c.investments, investment)
	return investment, nil
}

func (c *ClientStub) Update(ctx context.Context, investment Investment) (Investment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for idx, i := range c.investments {
		if i.Id == investment.Id {
			c.investments[idx] = investment
			return investment, nil
		}
	}
	return Investment{}, notFound()
}

func (c *ClientStub) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for idx, i := range c.investments {
		if i.Id == id {
			c.investments = append(c.investments[:idx], c.investments[idx+1:]...)
			return nil
		}
	}
	return notFound()
}

func (c *ClientStub) Highlights(ctx context.Context) (Highlights, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.HighlightsErr != nil {
		return Highlights{}, c.HighlightsErr
	}
	return Summarize(c.investments), nil
}

func notFound() error {
	return &upstream.APIError{Status: 404, Message: "investment not found"}
}
