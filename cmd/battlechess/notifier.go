package main

import (
	"fmt"
	"io"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
)

var cueText = map[string]string{
	events.NotifyCapture:   "capture!",
	events.NotifyCheck:     "check!",
	events.NotifyShrink:    "the board shrinks",
	events.NotifyWarning:   "squares are about to vanish",
	events.NotifyRespawn:   "a captured piece returns",
	events.NotifyPowerUp:   "power-up",
	events.NotifyTrap:      "a trap springs",
	events.NotifyTransform: "a piece transforms",
	events.NotifyGameOver:  "game over",
}

// terminalNotifier prints short cues and rings the bell for the important ones
type terminalNotifier struct {
	out  io.Writer
	bell bool
}

func (n terminalNotifier) Notify(name string) {
	text, ok := cueText[name]
	if !ok {
		return
	}
	bell := ""
	if n.bell && (name == events.NotifyCheck || name == events.NotifyGameOver) {
		bell = "\a"
	}
	fmt.Fprintf(n.out, "%s  * %s\n", bell, text)
}
