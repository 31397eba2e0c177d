package session

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/ulo-snake/internal/ledger"
)

// Errors returned by the controller. Apart from ErrSessionTimedOut, which
// closes the session, and ErrMintFailed, which follows a recorded score, every
// error means nothing was changed.
var (
	ErrInvalidLevel    = errors.New("session: invalid level")
	ErrAlreadyPlaying  = errors.New("session: player already has an active session")
	ErrNoActiveSession = errors.New("session: no active session")
	ErrSessionTimedOut = errors.New("session: session timed out")
	ErrLevelMismatch   = errors.New("session: level does not match the started session")
	ErrInvalidScore    = errors.New("session: score must not be negative")
	ErrMintFailed      = errors.New("session: token mint failed")
)

// MintError reports a failed mint after the score was recorded.
// It matches ErrMintFailed and the underlying minter error.
type MintError struct {
	Entry  ledger.Entry // The recorded entry; it is never retracted
	Player string
	Units  uint64
	Err    error
}

func (e *MintError) Error() string {
	return fmt.Sprintf("session: token mint failed for entry %d (%d units to %s): %v",
		e.Entry.ID, e.Units, e.Player, e.Err)
}

// Unwrap exposes both ErrMintFailed and the cause to errors.Is / errors.As.
func (e *MintError) Unwrap() []error {
	return []error{ErrMintFailed, e.Err}
}

// Recorded reports that the ledger entry exists despite the error.
func (e *MintError) Recorded() bool {
	return true
}
