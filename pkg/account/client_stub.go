package account

import (
	"context"
	"fmt"
	"sync"

	"github.com/finboard/finboard/internal/upstream"
)

type ClientStub struct {
	mu       sync.RWMutex
	accounts []Account
	nextId   int
	ListErr  error
}

func NewClientStub(accounts ...Account) *ClientStub {
	return &ClientStub{accounts: accounts}
}

func (c *ClientStub) List(ctx context.Context) ([]Account, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ListErr != nil {
		return nil, c.ListErr
	}
	result := make([]Account, len(c.accounts))
	copy(result, c.accounts)
	return result, nil
}

func (c *ClientStub) Get(ctx context.Context, id string) (Account, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.accounts {
		if a.Id == id {
			return a, nil
		}
	}
	return Account{}, &upstream.APIError{Status: 404, Message: "account not found"}
}

func (c *ClientStub) Create(ctx context.Context, account Account) (Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextId++
	account.Id = fmt.Sprintf("acc-%d", c.nextId)
	c.accounts = append(c.accounts, account)
	return account, nil
}

func (c *ClientStub) Update(ctx context.Context, account Account) (Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, a := range c.accounts {
		if a.Id == account.Id {
			c.accounts[i] = account
			return account, nil
		}
	}
	return Account{}, &upstream.APIError{Status: 404, Message: "account not found"}
}

func (c *ClientStub) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, a := range c.accounts {
		if a.Id == id {
			c.accounts = append(c.accounts[:i], c.accounts[i+1:]...)
			return nil
		}
	}
	return &upstream.APIError{Status: 404, Message: "account not found"}
}
