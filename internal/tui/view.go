package tui

import (
	"fmt"
	"strings"

	"github.com/san-kum/tokensort/internal/engine"

	"github.com/charmbracelet/lipgloss"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var bucketPalette = []lipgloss.Style{cyan, green, yellow, magenta}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.tooSmall {
		return "\n  " + yellow.Render(fmt.Sprintf("terminal too small: need at least %dx%d", minWidth, minHeight)) + "\n"
	}
	if !m.started {
		return ""
	}

	f := m.eng.Frame()

	var b strings.Builder
	b.WriteString(m.viewHeader(f))
	b.WriteString(m.viewPlayArea(f))
	b.WriteString(m.viewBuckets(f))
	b.WriteString(m.viewFooter(f))
	return b.String()
}

func (m model) viewHeader(f engine.Frame) string {
	left := cyan.Render("t o k e n s o r t")
	timer := white.Render(formatMs(f.ElapsedMs))
	best := dim.Render("best --:--.-")
	if f.HasBest {
		best = dim.Render("best " + formatMs(f.BestMs))
	}
	count := white.Render(fmt.Sprintf("%d/%d", f.SortedCount, f.TotalCount))

	status := ""
	if f.Done {
		status = "  " + green.Render("sorted!")
		if f.IsNewBest {
			status += " " + magenta.Render("new best")
		}
	}

	line := fmt.Sprintf("  %s   %s   %s   %s%s", left, timer, best, count, status)
	return line + "\n" + dimmer.Render("  "+strings.Repeat("─", max(0, m.width-4))) + "\n"
}

func (m model) viewPlayArea(f engine.Frame) string {
	cw := m.width
	ch := m.height - headerRows - footerRows - bucketRows
	if ch < 1 {
		ch = 1
	}

	canvas := make([][]rune, ch)
	for i := range canvas {
		canvas[i] = make([]rune, cw)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, tok := range f.Tokens {
		label := tok.Label
		if tok.Dragging {
			label = "❮" + label + "❯"
		}
		row := int(tok.Y)
		col := int(tok.X) - len([]rune(label))/2
		for i, c := range []rune(label) {
			set(canvas, col+i, row, c, cw, ch)
		}
	}

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) viewBuckets(f engine.Frame) string {
	n := len(f.Buckets)
	if n == 0 {
		return ""
	}

	lines := make([]strings.Builder, bucketRows)
	for i, bk := range f.Buckets {
		style := bucketPalette[i%len(bucketPalette)]
		start := (i * m.width) / n
		end := ((i + 1) * m.width) / n
		bw := end - start
		if bw < 4 {
			bw = 4
		}
		inner := bw - 2

		label := clip(string(bk.Category), inner-2)
		count := fmt.Sprintf("%d", len(bk.Items))
		if last := len(bk.Items); last > 0 {
			count = clip(fmt.Sprintf("%d · %s", last, bk.Items[last-1].Label), inner)
		}

		lines[0].WriteString(style.Render("╭" + strings.Repeat("─", inner) + "╮"))
		lines[1].WriteString(style.Render("│") + white.Render(center(label, inner)) + style.Render("│"))
		lines[2].WriteString(style.Render("│") + dim.Render(center(count, inner)) + style.Render("│"))
		lines[3].WriteString(style.Render("╰" + strings.Repeat("─", inner) + "╯"))
	}

	var b strings.Builder
	for i := range lines {
		b.WriteString(lines[i].String())
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) viewFooter(f engine.Frame) string {
	help := "drag tokens into buckets   r restart   q quit"
	if f.Done {
		help = "r play again   q quit"
	}
	return dim.Render("  " + help)
}

func set(canvas [][]rune, x, y int, c rune, w, h int) {
	if x >= 0 && x < w && y >= 0 && y < h {
		canvas[y][x] = c
	}
}

func center(s string, w int) string {
	r := []rune(s)
	if len(r) >= w {
		return string(r[:w])
	}
	left := (w - len(r)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-len(r)-left)
}

func clip(s string, w int) string {
	if w < 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	return string(r[:w])
}

func formatMs(ms int64) string {
	mins := ms / 60000
	secs := (ms % 60000) / 1000
	tenths := (ms % 1000) / 100
	return fmt.Sprintf("%d:%02d.%d", mins, secs, tenths)
}
