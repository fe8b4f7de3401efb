package terrainchess

import (
	"errors"
	"fmt"
)

// ErrRejected is wrapped by every rule violation. A rejected call leaves the
// game untouched.
var ErrRejected = errors.New("rejected")

var (
	ErrWrongPhase       = reject("wrong phase")
	ErrUnknownFaction   = reject("faction not in play")
	ErrOutsideTerritory = reject("outside territory")
	ErrIncompatible     = reject("terrain and piece incompatible")
	ErrOccupied         = reject("cell occupied")
	ErrInventoryEmpty   = reject("inventory exhausted")
	ErrTerrainQuota     = reject("terrain quota exceeded")
	ErrNotYourTurn      = reject("not your turn")
	ErrIllegalMove      = reject("illegal move")
	ErrLeavesCheck      = reject("move leaves king in check")
	ErrForbidden        = reject("may only arrange own territory")
	ErrNoSeed           = reject("no stored layout fits this mode")
)

// ErrInvalidLayout is returned when an encoded layout cannot be decoded.
var ErrInvalidLayout = errors.New("invalid layout")

func reject(reason string) error {
	return fmt.Errorf("%w: %s", ErrRejected, reason)
}
