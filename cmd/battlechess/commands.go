package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/common"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
)

type commandKind int

const (
	cmdMove commandKind = iota
	cmdTeleport
	cmdUsePowerUp
	cmdMoves
	cmdBoard
	cmdFEN
	cmdReset
	cmdHelp
	cmdQuit
)

// command is one parsed line of user input
type command struct {
	kind    commandKind
	uci     string
	powerUp core.PowerUpType
	target  core.Position
}

var errEmptyCommand = errors.New("empty command")

const helpText = `Commands:
  e2e4              move a piece
  tp e2e5           move with an armed teleport
  use <type> [sq]   spend your power-up: shield <sq>, trap <sq>, extraMove, teleport
  moves             list your legal moves
  board             redraw the board
  fen               print the position as FEN
  reset             start a new game
  help              show this text
  quit              leave`

// parseCommand parses a line typed at the prompt
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{}, errEmptyCommand
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return command{kind: cmdQuit}, nil
	case "help", "?":
		return command{kind: cmdHelp}, nil
	case "moves":
		return command{kind: cmdMoves}, nil
	case "board":
		return command{kind: cmdBoard}, nil
	case "fen":
		return command{kind: cmdFEN}, nil
	case "reset", "new":
		return command{kind: cmdReset}, nil
	case "tp", "teleport":
		if len(fields) != 2 || !isUCI(fields[1]) {
			return command{}, fmt.Errorf("usage: tp <from><to>, e.g. tp e2e5")
		}
		return command{kind: cmdTeleport, uci: fields[1]}, nil
	case "use":
		return parseUse(fields[1:])
	}

	if len(fields) == 1 && isUCI(fields[0]) {
		return command{kind: cmdMove, uci: fields[0]}, nil
	}
	return command{}, fmt.Errorf("unknown command %q, type help", fields[0])
}

func parseUse(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, fmt.Errorf("usage: use <type> [square]")
	}
	kind, err := parsePowerUpName(args[0])
	if err != nil {
		return command{}, err
	}
	cmd := command{kind: cmdUsePowerUp, powerUp: kind}

	needsTarget := kind == core.PowerUpShield || kind == core.PowerUpTrap
	switch {
	case needsTarget && len(args) != 2:
		return command{}, fmt.Errorf("%s needs a target square, e.g. use %s e4", kind, kind)
	case needsTarget:
		if !common.IsValidSquare(args[1]) {
			return command{}, fmt.Errorf("invalid square %q", args[1])
		}
		cmd.target, _ = core.ParseAlgebraic(args[1])
	case len(args) > 1:
		return command{}, fmt.Errorf("%s takes no target", kind)
	}
	return cmd, nil
}

// parsePowerUpName accepts the power-up names case-insensitively
func parsePowerUpName(s string) (core.PowerUpType, error) {
	for _, t := range core.PowerUpTypes {
		if strings.EqualFold(t.String(), s) {
			return t, nil
		}
	}
	return core.ParsePowerUpType(s)
}

func isUCI(s string) bool {
	return len(s) == 4 && common.IsValidSquare(s[:2]) && common.IsValidSquare(s[2:])
}
