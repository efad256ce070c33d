package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/common"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
)

// This file contains all board rendering functionality for the terminal.

var pieceGlyphs = map[core.PieceType]string{
	core.Pawn:   "♟",
	core.Knight: "♞",
	core.Bishop: "♝",
	core.Rook:   "♜",
	core.Queen:  "♛",
	core.King:   "♚",
}

var powerUpGlyphs = map[core.PowerUpType]string{
	core.PowerUpTeleport:  "T",
	core.PowerUpShield:    "S",
	core.PowerUpExtraMove: "+",
	core.PowerUpTrap:      "X",
}

// Board renders the current position for the terminal
func (e *Engine) Board() string {
	return RenderBoard(e.GameState(), e.humanColor)
}

// RenderBoard draws the board from the given side's point of view with shrunk
// squares, pending warnings, power-ups and the viewer's own traps marked
func RenderBoard(gs *GameState, viewer core.Color) string {
	var sb strings.Builder
	sb.Grow(core.BoardSize * core.BoardSize * 32)

	rows, cols := boardOrder(viewer)
	writeFileHeader(&sb, cols)
	for _, r := range rows {
		fmt.Fprintf(&sb, " %d ", core.BoardSize-r)
		for _, c := range cols {
			writeSquare(&sb, gs, core.NewPosition(r, c), viewer)
		}
		fmt.Fprintf(&sb, " %d\n", core.BoardSize-r)
	}
	writeFileHeader(&sb, cols)

	sb.WriteString("\n")
	sb.WriteString(statusLine(gs, viewer))
	sb.WriteString("\n")
	sb.WriteString(common.Colorize("   ", common.BgWarn) + "=shrinking ")
	sb.WriteString(common.Colorize("   ", common.BgShrunk) + "=gone ")
	sb.WriteString("T=teleport S=shield +=extra move X=trap\n")
	return sb.String()
}

func boardOrder(viewer core.Color) (rows, cols []int) {
	for i := 0; i < core.BoardSize; i++ {
		rows = append(rows, i)
		cols = append(cols, i)
	}
	if viewer == core.Black {
		for i, j := 0, core.BoardSize-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
			cols[i], cols[j] = cols[j], cols[i]
		}
	}
	return rows, cols
}

func writeFileHeader(sb *strings.Builder, cols []int) {
	sb.WriteString("   ")
	for _, c := range cols {
		fmt.Fprintf(sb, " %c ", 'a'+c)
	}
	sb.WriteString("\n")
}

func writeSquare(sb *strings.Builder, gs *GameState, p core.Position, viewer core.Color) {
	bg := common.SquareBackground(p.Row, p.Col)
	if gs.LastMove != nil && (gs.LastMove.From == p || gs.LastMove.To == p) {
		bg = common.BgLast
	}
	if _, pending := gs.ShrinkBlockAt(p); pending {
		bg = common.BgWarn
	}
	if owner, trapped := gs.IsTrap(p); trapped && owner == viewer {
		bg = common.BgTrap
	}
	if gs.ShrunkSquares.Has(p) {
		bg = common.BgShrunk
	}

	content := "   "
	fg := common.ColorGray
	pc := gs.Board.At(p)
	switch {
	case !pc.IsEmpty():
		fg = common.SideColors[pc.Color]
		marker := " "
		if gs.IsShielded(pc.ID) {
			marker = "*"
		} else if pc.Transformed {
			marker = "'"
		}
		content = " " + pieceGlyphs[pc.Type] + marker
	case gs.PowerUpAt(p) >= 0:
		fg = common.ColorCyan
		content = " " + powerUpGlyphs[gs.PowerUps[gs.PowerUpAt(p)].Type] + " "
	}
	sb.WriteString(common.Colorize(content, bg, common.ColorBold, fg))
}

// statusLine summarises whose move it is and what each side holds
func statusLine(gs *GameState, viewer core.Color) string {
	parts := []string{gs.Describe()}
	for _, c := range core.Colors {
		if pu, ok := gs.HeldPowerUp(c); ok {
			parts = append(parts, fmt.Sprintf("%s holds %s", c, pu.Type))
		}
	}
	if n := len(gs.RespawnQueue); n > 0 {
		parts = append(parts, fmt.Sprintf("%d awaiting respawn", n))
	}
	if gs.ExtraMoveArmed[viewer] {
		parts = append(parts, "extra move armed")
	}
	if gs.TeleportArmed[viewer] {
		parts = append(parts, "teleport armed")
	}
	return strings.Join(parts, " | ")
}
