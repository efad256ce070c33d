package core

import "fmt"

// PowerUpType is the closed set of collectible abilities
type PowerUpType int

const (
	PowerUpTeleport PowerUpType = iota
	PowerUpShield
	PowerUpExtraMove
	PowerUpTrap
)

// PowerUpTypes lists every kind in spawn-draw order
var PowerUpTypes = [4]PowerUpType{PowerUpTeleport, PowerUpShield, PowerUpExtraMove, PowerUpTrap}

func (t PowerUpType) String() string {
	switch t {
	case PowerUpTeleport:
		return "teleport"
	case PowerUpShield:
		return "shield"
	case PowerUpExtraMove:
		return "extraMove"
	case PowerUpTrap:
		return "trap"
	default:
		return fmt.Sprintf("PowerUpType(%d)", int(t))
	}
}

// ParsePowerUpType parses the name produced by String
func ParsePowerUpType(s string) (PowerUpType, error) {
	for _, t := range PowerUpTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("power-up %q: %w", s, ErrNoPowerUp)
}

// PowerUp is a collectible lying on the board or held by a side
type PowerUp struct {
	ID             string
	Type           PowerUpType
	Position       Position
	TurnsRemaining int
}

// ShrinkBlock is a square scheduled for removal
type ShrinkBlock struct {
	Position         Position
	TurnsUntilShrink int
	IsWarning        bool
	Level            int
}

// RespawnEntry is a captured piece owed back to its owner
type RespawnEntry struct {
	Owner    Color
	Original Piece
}
