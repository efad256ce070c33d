package events

//go:generate go tool mockgen -destination=./mocks/notifier_mock.go -package=mocks . Notifier

// Notifier is the fire-and-forget feedback sink (sounds, UI cues). Implementations
// must return quickly; the game never depends on what they do.
type Notifier interface {
	Notify(name string)
}

// Notification names delivered to a Notifier
const (
	NotifyMove      = "move"
	NotifyCapture   = "capture"
	NotifyCheck     = "check"
	NotifyShrink    = "shrink"
	NotifyWarning   = "warning"
	NotifyRespawn   = "respawn"
	NotifyPowerUp   = "powerup"
	NotifyTrap      = "trap"
	NotifyTransform = "transform"
	NotifyGameOver  = "gameover"
)

// NotificationFor maps an event type to the notification it triggers, if any
func NotificationFor(eventType string) (string, bool) {
	switch eventType {
	case TypeMoveExecuted:
		return NotifyMove, true
	case TypePieceCaptured, TypePieceEliminated:
		return NotifyCapture, true
	case TypeKingInCheck:
		return NotifyCheck, true
	case TypeSquaresShrunk, TypeKingRelocated:
		return NotifyShrink, true
	case TypeShrinkWarning:
		return NotifyWarning, true
	case TypePieceRespawned:
		return NotifyRespawn, true
	case TypePowerUpCollected, TypePowerUpUsed:
		return NotifyPowerUp, true
	case TypeTrapTriggered:
		return NotifyTrap, true
	case TypePieceTransformed, TypePiecePromoted:
		return NotifyTransform, true
	case TypeGameEnded:
		return NotifyGameOver, true
	}
	return "", false
}
