package token

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mint is a Minter that credits a Balances store directly.
type Mint struct {
	token    Token
	balances Balances
	now      func() time.Time
}

// NewMint creates a minter for tok over balances.
func NewMint(tok Token, balances Balances) *Mint {
	return &Mint{
		token:    tok,
		balances: balances,
		now:      time.Now,
	}
}

// Token returns the minted token's metadata.
func (m *Mint) Token() Token {
	return m.token
}

// Mint credits units whole tokens to player. Zero units still produce a receipt.
func (m *Mint) Mint(ctx context.Context, player string, units uint64) (Receipt, error) {
	if player == "" {
		return Receipt{}, ErrNoRecipient
	}

	amount := m.token.BaseUnits(units)
	if err := m.balances.Credit(ctx, player, amount); err != nil {
		return Receipt{}, fmt.Errorf("token: credit %s: %w", player, err)
	}

	return Receipt{
		TxID:     uuid.NewString(),
		Player:   player,
		Units:    units,
		Amount:   amount,
		MintedAt: m.now(),
	}, nil
}

var _ Minter = (*Mint)(nil)
