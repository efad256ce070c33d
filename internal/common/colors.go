package common

// ANSI escape codes for the terminal board
const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[97m"
	ColorBlack  = "\033[30m"
	ColorGray   = "\033[90m"

	BgLight  = "\033[48;5;180m"
	BgDark   = "\033[48;5;94m"
	BgShrunk = "\033[48;5;236m"
	BgWarn   = "\033[43m"
	BgTrap   = "\033[45m"
	BgLast   = "\033[48;5;108m"
)

// SideColors is the foreground used for each side's pieces, indexed by core.Color
var SideColors = [2]string{ColorWhite, ColorBlack}

// SquareBackground returns the background for a normal square
func SquareBackground(row, col int) string {
	if (row+col)%2 == 0 {
		return BgLight
	}
	return BgDark
}

// Colorize wraps s in the given codes and resets afterwards
func Colorize(s string, codes ...string) string {
	out := ""
	for _, c := range codes {
		out += c
	}
	return out + s + ColorReset
}
