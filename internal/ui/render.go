package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"termslots/internal/game"
	"termslots/internal/stats"
)

// frameWidth is the interior width of the machine frame in terminal cells.
const frameWidth = 58

// StatsTab selects which statistics panel is shown.
type StatsTab int

const (
	TabSummary StatsTab = iota
	TabHistory
	TabChart
	numTabs
)

// Next cycles the tab by direction (+1 or -1).
func (t StatsTab) Next(direction int) StatsTab {
	return StatsTab((int(t) + direction%int(numTabs) + int(numTabs)) % int(numTabs))
}

func (t StatsTab) String() string {
	switch t {
	case TabHistory:
		return "History"
	case TabChart:
		return "Chart"
	}
	return "Summary"
}

var (
	titleColor   = color.New(color.FgMagenta, color.Bold)
	jackpotColor = color.New(color.FgYellow, color.Bold)
	winColor     = color.New(color.FgGreen)
	lossColor    = color.New(color.FgRed)
	uiColor      = color.New(color.FgCyan)
	wildColor    = color.New(color.FgYellow)

	amounts = message.NewPrinter(language.English)
)

// Renderer draws the machine and statistics views as full ANSI frames.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out, which should be the
// terminal in raw mode.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Init hides the cursor and clears the screen.
func (r *Renderer) Init() {
	fmt.Fprint(r.out, "\x1b[?25l\x1b[2J")
}

// Close restores the cursor.
func (r *Renderer) Close() {
	fmt.Fprint(r.out, "\x1b[?25h\x1b[2J\x1b[H")
}

// Machine draws the slot machine view from a snapshot.
func (r *Renderer) Machine(snap game.Snapshot) {
	var b strings.Builder
	b.WriteString("\x1b[H")

	writeTop(&b)
	writeCentered(&b, titleColor.Sprint("🎰  T E R M I N A L   S L O T S  🎰"))
	writeDivider(&b)
	writeCentered(&b, jackpotColor.Sprint(amounts.Sprintf("JACKPOT: %d", snap.Jackpot)))
	writeDivider(&b)
	writeReels(&b, snap.Grid)
	writeDivider(&b)
	writeCentered(&b, amounts.Sprintf("Balance: %d   Bet: %d", snap.Balance, snap.Bet))
	writeCentered(&b, modeLine(snap))
	writeCentered(&b, winText(snap))
	writeDivider(&b)
	writePaytable(&b)
	writeDivider(&b)
	writeCentered(&b, uiColor.Sprint("SPACE spin/stop  ↑↓ bet  ←→ mode  TAB stats  Q quit"))
	writeBottom(&b)
	b.WriteString("\x1b[0J")

	fmt.Fprint(r.out, b.String())
}

// Stats draws the statistics view for the requested tab.
func (r *Renderer) Stats(tab StatsTab, sum stats.Summary, history []game.SpinResult, series []int64) {
	var b strings.Builder
	b.WriteString("\x1b[H")

	writeTop(&b)
	writeCentered(&b, titleColor.Sprint("📊  S E S S I O N   S T A T S  📊"))
	writeCentered(&b, tabLine(tab))
	writeDivider(&b)

	switch tab {
	case TabHistory:
		writeHistoryTab(&b, history)
	case TabChart:
		writeChartTab(&b, series)
	default:
		writeSummaryTab(&b, sum)
	}

	writeDivider(&b)
	writeCentered(&b, uiColor.Sprint("←→ tab  TAB back  Q quit"))
	writeBottom(&b)
	b.WriteString("\x1b[0J")

	fmt.Fprint(r.out, b.String())
}

func writeSummaryTab(b *strings.Builder, s stats.Summary) {
	profit := amounts.Sprintf("%+d", s.NetProfit)
	if s.NetProfit >= 0 {
		profit = winColor.Sprint(profit)
	} else {
		profit = lossColor.Sprint(profit)
	}

	writeRow(b, amounts.Sprintf("Spins: %d   Wins: %d (%.1f%%)   Jackpots: %d",
		s.Spins, s.Wins, s.WinRate*100, s.Jackpots))
	writeRow(b, amounts.Sprintf("Wagered: %d   Won: %d", s.TotalWagered, s.TotalWon))
	writeRow(b, "Net profit: "+profit)
	writeRow(b, amounts.Sprintf("RTP: %.1f%%   Biggest win: %d", s.RTP*100, s.BiggestWin))
	writeRow(b, fmt.Sprintf("Avg win: %.1f   Win stddev: %.1f", s.AverageWin, s.WinStdDev))
	writeRow(b, "Session: "+s.Duration.Round(time.Second).String())
	writeRow(b, "")
	writeRow(b, uiColor.Sprint("Payline symbol frequency:"))
	for _, sym := range game.Symbols {
		if n := s.SymbolCounts[sym]; n > 0 {
			writeRow(b, fmt.Sprintf("  %s %-8s %d", sym, sym.Name(), n))
		}
	}
}

func writeHistoryTab(b *strings.Builder, history []game.SpinResult) {
	const shown = 12
	start := 0
	if len(history) > shown {
		start = len(history) - shown
	}
	if len(history) == 0 {
		writeRow(b, "No spins yet.")
		return
	}
	for _, r := range history[start:] {
		line := fmt.Sprintf("%s  %s %s %s  bet %3d  ",
			r.Timestamp.Format("15:04:05"),
			r.Symbols[0], r.Symbols[1], r.Symbols[2], r.Bet)
		switch {
		case r.Jackpot:
			line += jackpotColor.Sprint(amounts.Sprintf("JACKPOT %d", r.Win))
		case r.Win > 0:
			line += winColor.Sprint(amounts.Sprintf("won %d", r.Win))
		default:
			line += lossColor.Sprint("lost")
		}
		writeRow(b, line)
	}
}

func writeChartTab(b *strings.Builder, series []int64) {
	if len(series) < 2 {
		writeRow(b, "Spin a few times to see the balance chart.")
		return
	}
	lo, hi := series[0], series[0]
	for _, v := range series {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	writeRow(b, uiColor.Sprint("Balance over time:"))
	writeRow(b, "")
	writeRow(b, stats.Sparkline(series, frameWidth-6))
	writeRow(b, "")
	writeRow(b, amounts.Sprintf("low %d   high %d   now %d", lo, hi, series[len(series)-1]))
}

func writeReels(b *strings.Builder, grid game.Grid) {
	// Rows run above / payline / below; columns are the reels.
	for row := 0; row < game.WindowSize; row++ {
		cells := make([]string, game.NumReels)
		for reel := 0; reel < game.NumReels; reel++ {
			sym := grid[reel][row]
			cell := fmt.Sprintf(" %s ", sym)
			if sym == game.Wild {
				cell = wildColor.Sprint(cell)
			}
			cells[reel] = cell
		}
		line := strings.Join(cells, "│")
		if row == 1 {
			line = "▶ " + line + " ◀"
		} else {
			line = "  " + line + "  "
		}
		writeCentered(b, line)
	}
}

func writePaytable(b *strings.Builder) {
	var parts []string
	for _, sym := range game.Symbols {
		parts = append(parts, fmt.Sprintf("%s%d", sym, sym.Multiplier()))
	}
	writeCentered(b, strings.Join(parts[:4], "  "))
	writeCentered(b, strings.Join(parts[4:], "  ")+"  "+wildColor.Sprint("(🌟 wild)"))
}

func modeLine(snap game.Snapshot) string {
	line := "Mode: " + snap.Mode.String()
	if snap.AutoSpinning {
		if snap.Mode == game.ModeAuto {
			line += "  [auto]"
		} else {
			line += fmt.Sprintf("  [%d left]", snap.SpinsRemaining)
		}
	}
	return line
}

func winText(snap game.Snapshot) string {
	switch {
	case snap.LastWin > 0 && strings.Contains(snap.LastWinText, "JACKPOT"):
		return jackpotColor.Sprint(snap.LastWinText)
	case snap.LastWin > 0:
		return winColor.Sprint(snap.LastWinText)
	default:
		return snap.LastWinText
	}
}

func tabLine(active StatsTab) string {
	parts := make([]string, 0, int(numTabs))
	for t := TabSummary; t < numTabs; t++ {
		name := t.String()
		if t == active {
			name = uiColor.Sprint("[" + name + "]")
		} else {
			name = " " + name + " "
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}

func writeTop(b *strings.Builder) {
	b.WriteString("╔" + strings.Repeat("═", frameWidth) + "╗\r\n")
}

func writeBottom(b *strings.Builder) {
	b.WriteString("╚" + strings.Repeat("═", frameWidth) + "╝\r\n")
}

func writeDivider(b *strings.Builder) {
	b.WriteString("╟" + strings.Repeat("─", frameWidth) + "╢\r\n")
}

// writeCentered pads text to the frame width, centering on display cells.
// ANSI color sequences are excluded from the width measurement.
func writeCentered(b *strings.Builder, text string) {
	w := displayWidth(text)
	left := (frameWidth - w) / 2
	if left < 0 {
		left = 0
	}
	right := frameWidth - w - left
	if right < 0 {
		right = 0
	}
	b.WriteString("║" + strings.Repeat(" ", left) + text + strings.Repeat(" ", right) + "║\r\n")
}

// writeRow pads text left-aligned with a small margin.
func writeRow(b *strings.Builder, text string) {
	const margin = 2
	w := displayWidth(text) + margin
	right := frameWidth - w
	if right < 0 {
		right = 0
	}
	b.WriteString("║" + strings.Repeat(" ", margin) + text + strings.Repeat(" ", right) + "║\r\n")
}

// displayWidth measures terminal cells, skipping ANSI escape sequences.
// Emoji symbols occupy two cells, which runewidth accounts for.
func displayWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == 0x1b:
			inEscape = true
		default:
			width += runewidth.RuneWidth(r)
		}
	}
	return width
}
