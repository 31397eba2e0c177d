package token

import (
	"context"
	"math/big"
	"sync"
)

// MemoryBalances keeps balances in a map.
type MemoryBalances struct {
	mu       sync.Mutex
	balances map[string]*big.Int
	supply   *big.Int
}

// NewMemoryBalances creates an empty balance sheet.
func NewMemoryBalances() *MemoryBalances {
	return &MemoryBalances{
		balances: make(map[string]*big.Int),
		supply:   new(big.Int),
	}
}

// Credit adds amount to player's balance.
func (b *MemoryBalances) Credit(ctx context.Context, player string, amount *big.Int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	bal, ok := b.balances[player]
	if !ok {
		bal = new(big.Int)
		b.balances[player] = bal
	}
	bal.Add(bal, amount)
	b.supply.Add(b.supply, amount)
	return nil
}

// BalanceOf returns a copy of player's balance.
func (b *MemoryBalances) BalanceOf(ctx context.Context, player string) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if bal, ok := b.balances[player]; ok {
		return new(big.Int).Set(bal), nil
	}
	return new(big.Int), nil
}

// TotalSupply returns the sum of all credits.
func (b *MemoryBalances) TotalSupply(ctx context.Context) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return new(big.Int).Set(b.supply), nil
}

var _ Balances = (*MemoryBalances)(nil)
