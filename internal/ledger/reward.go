package ledger

// RewardFor returns the whole-token reward for a score: one token per point.
// The fractional-unit scale is applied by the token package at mint time.
func RewardFor(score int) uint64 {
	if score <= 0 {
		return 0
	}
	return uint64(score)
}
