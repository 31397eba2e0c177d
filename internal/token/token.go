// Package token models the ULO reward token: metadata, exact base-unit
// arithmetic and a minter that credits balances.
package token

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"
)

// TokenDecimalsScale is 10^18, the base units in one whole ULO.
const TokenDecimalsScale = 1_000_000_000_000_000_000

// DefaultDecimals matches TokenDecimalsScale.
const DefaultDecimals = 18

// ErrNoRecipient is returned when minting to an empty player identity.
var ErrNoRecipient = errors.New("token: empty recipient")

// Token describes the reward token.
type Token struct {
	Name     string
	Symbol   string
	Decimals int
}

// ULO is the token minted for snake scores.
var ULO = Token{
	Name:     "Ultimate Snake ULO",
	Symbol:   "ULO",
	Decimals: DefaultDecimals,
}

// Scale returns 10^Decimals, which is TokenDecimalsScale for 18-decimal tokens.
func (t Token) Scale() *big.Int {
	if t.Decimals == DefaultDecimals {
		return new(big.Int).SetUint64(TokenDecimalsScale)
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(t.Decimals)), nil)
}

// BaseUnits converts whole tokens to base units.
func (t Token) BaseUnits(units uint64) *big.Int {
	amount := new(big.Int).SetUint64(units)
	return amount.Mul(amount, t.Scale())
}

// Format renders a base-unit amount as a decimal token string, e.g. "1.5 ULO".
func (t Token) Format(amount *big.Int) string {
	if amount == nil {
		amount = new(big.Int)
	}
	whole, frac := new(big.Int).QuoRem(amount, t.Scale(), new(big.Int))

	s := whole.String()
	if frac.Sign() != 0 && t.Decimals > 0 {
		digits := frac.Abs(frac).String()
		digits = strings.Repeat("0", t.Decimals-len(digits)) + digits
		s += "." + strings.TrimRight(digits, "0")
	}
	return s + " " + t.Symbol
}

// Receipt acknowledges a completed mint.
type Receipt struct {
	TxID     string
	Player   string
	Units    uint64   // Whole tokens
	Amount   *big.Int // Base units
	MintedAt time.Time
}

// Minter credits reward tokens to a player.
type Minter interface {
	Mint(ctx context.Context, player string, units uint64) (Receipt, error)
}

// Balances stores per-player token balances in base units.
type Balances interface {
	Credit(ctx context.Context, player string, amount *big.Int) error
	BalanceOf(ctx context.Context, player string) (*big.Int, error)
	TotalSupply(ctx context.Context) (*big.Int, error)
}
