package debt

import (
	"context"
	"fmt"
	"sync"

	"github.com/finboard/finboard/internal/upstream"
)

type ClientStub struct {
	mu      sync.RWMutex
	debts   []DebtAndLoan
	nextId  int
	ListErr error
}

func NewClientStub(debts ...DebtAndLoan) *ClientStub {
	return &ClientStub{debts: debts}
}

func (c *ClientStub) List(ctx context.Context, debtType Type) ([]DebtAndLoan, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ListErr != nil {
		return nil, c.ListErr
	}
	result := make([]DebtAndLoan, 0, len(c.debts))
	for _, d := range c.debts {
		if debtType == "" || d.Type == debtType {
			result = append(result, d)
		}
	}
	return result, nil
}

func (c *ClientStub) Get(ctx context.Context, id string) (DebtAndLoan, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := c.find(id)
	if idx == -1 {
		return DebtAndLoan{}, notFound()
	}
	return c.debts[idx], nil
}

func (c *ClientStub) Create(ctx context.Context, debt DebtAndLoan) (DebtAndLoan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextId++
	debt.Id = fmt.Sprintf("debt-%d", c.nextId)
	c.debts = append(c.debts, debt)
	return debt, nil
}

func (c *ClientStub) Update(ctx context.Context, debt DebtAndLoan) (DebtAndLoan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.find(debt.Id)
	if idx == -1 {
		return DebtAndLoan{}, notFound()
	}
	c.debts[idx] = debt
	return debt, nil
}

func (c *ClientStub) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.find(id)
	if idx == -1 {
		return notFound()
	}
	c.debts = append(c.debts[:idx], c.debts[idx+1:]...)
	return nil
}

func (c *ClientStub) RegisterPayment(ctx context.Context, id string, payment PaymentRequest) (DebtAndLoan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.find(id)
	if idx == -1 {
		return DebtAndLoan{}, notFound()
	}
	d := c.debts[idx]
	d.PaidAmount = d.PaidAmount.Add(payment.Amount)
	if d.Installments != nil {
		d.Installments.InstallmentsPaid++
	}
	if d.IsSettled() {
		d.Status = Completed
	} else {
		d.Status = InProgress
	}
	c.debts[idx] = d
	return d, nil
}

func (c *ClientStub) find(id string) int {
	for i, d := range c.debts {
		if d.Id == id {
			return i
		}
	}
	return -1
}

func notFound() error {
	return &upstream.APIError{Status: 404, Message: "debt not found"}
}
