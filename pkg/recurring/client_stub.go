package recurring

import (
	"context"
	"fmt"
	"sync"

	"github.com/finboard/finboard/internal/upstream"
)

type ClientStub struct {
	mu           sync.RWMutex
	transactions []RecurringTransaction
	nextId       int
	ListErr      error
}

func NewClientStub(transactions ...RecurringTransaction) *ClientStub {
	return &ClientStub{transactions: transactions}
}

func (c *ClientStub) List(ctx context.Context) ([]RecurringTransaction, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ListErr != nil {
		return nil, c.ListErr
	}
	result := make([]RecurringTransaction, len(c.transactions))
	copy(result, c.transactions)
	return result, nil
}

func (c *ClientStub) Get(ctx context.Context, id string) (RecurringTransaction, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := c.find(id)
	if idx == -1 {
		return RecurringTransaction{}, notFound()
	}
	return c.transactions[idx], nil
}

func (c *ClientStub) Create(ctx context.Context, transaction RecurringTransaction) (RecurringTransaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextId++
	transaction.Id = fmt.Sprintf("rec-%d", c.nextId)
	c.transactions = append(c.transactions, transaction)
	return transaction, nil
}

func (c *ClientStub) Update(ctx context.Context, transaction RecurringTransaction) (RecurringTransaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.find(transaction.Id)
	if idx == -1 {
		return RecurringTransaction{}, notFound()
	}
	c.transactions[idx] = transaction
	return transaction, nil
}

func (c *ClientStub) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.find(id)
	if idx == -1 {
		return notFound()
	}
	c.transactions = append(c.transactions[:idx], c.transactions[idx+1:]...)
	return nil
}

func (c *ClientStub) SetActive(ctx context.Context, id string, active bool) (RecurringTransaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.find(id)
	if idx == -1 {
		return RecurringTransaction{}, notFound()
	}
	c.transactions[idx].IsActive = active
	return c.transactions[idx], nil
}

func (c *ClientStub) find(id string) int {
	for i, t := range c.transactions {
		if t.Id == id {
			return i
		}
	}
	return -1
}

func notFound() error {
	return &upstream.APIError{Status: 404, Message: "recurring transaction not found"}
}
