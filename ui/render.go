package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gabrielsants/react-tetris/tetris"
)

const (
	maxScale         = 3
	lastEventVisible = 1200 * time.Millisecond
)

type Theme struct {
	Name        string
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
	AccentColor lipgloss.Color
	// PieceColors is indexed by tetris.Kind.
	PieceColors []lipgloss.Color
}

var themes = []Theme{
	{
		Name:        "Classic",
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		PieceColors: catalogColors(),
	},
	{
		Name:        "Amber Terminal",
		BorderColor: lipgloss.Color("214"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("208"),
		PieceColors: []lipgloss.Color{"220", "214", "222", "208", "215", "216", "223"},
	},
	{
		Name:        "Ocean Neon",
		BorderColor: lipgloss.Color("33"),
		TextColor:   lipgloss.Color("159"),
		AccentColor: lipgloss.Color("39"),
		PieceColors: []lipgloss.Color{"45", "39", "51", "44", "50", "75", "81"},
	},
	{
		Name:        "Forest CRT",
		BorderColor: lipgloss.Color("22"),
		TextColor:   lipgloss.Color("120"),
		AccentColor: lipgloss.Color("34"),
		PieceColors: []lipgloss.Color{"47", "64", "77", "48", "71", "35", "106"},
	},
	{
		Name:        "Mono Matrix",
		BorderColor: lipgloss.Color("250"),
		TextColor:   lipgloss.Color("245"),
		AccentColor: lipgloss.Color("82"),
		PieceColors: []lipgloss.Color{"236", "239", "242", "245", "248", "251", "254"},
	},
}

func catalogColors() []lipgloss.Color {
	colors := make([]lipgloss.Color, 0, len(tetris.Kinds))
	for _, kind := range tetris.Kinds {
		colors = append(colors, lipgloss.Color(kind.Color()))
	}
	return colors
}

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if theme.Name == name {
			return i
		}
	}
	return -1
}

func (t Theme) pieceColor(kind tetris.Kind) lipgloss.Color {
	return t.PieceColors[int(kind)%len(t.PieceColors)]
}

func (m Model) theme() Theme {
	if m.themeIndex < 0 || m.themeIndex >= len(themes) {
		return themes[0]
	}
	return themes[m.themeIndex]
}

func viewMenu(m Model) string {
	theme := m.theme()
	content := renderMenu("BLOCKDROP", menuItems, m.menuIndex, theme)
	return center(m.width, m.height, lipgloss.JoinVertical(lipgloss.Center, content, "", m.help.View(menuKeys)))
}

func viewScores(m Model) string {
	theme := m.theme()
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("High Scores"))
	b.WriteString("\n\n")
	switch {
	case m.syncLoading && len(m.scores) == 0:
		b.WriteString(helpStyle(theme).Render("Syncing..."))
		b.WriteString("\n")
	case len(m.scores) == 0:
		b.WriteString("No scores yet.\n")
	default:
		for i, score := range m.scores {
			line := fmt.Sprintf("%2d. %-16s %7d  L%2d  %4d lines", i+1, truncate(score.Name, 16), score.Score, score.Level, score.Lines)
			if score.When != "" {
				line += "  " + score.When
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if m.syncWarning != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle().Render(m.syncWarning))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(menuKeys))
	return center(m.width, m.height, b.String())
}

func viewConfig(m Model) string {
	theme := m.theme()
	items := make([]string, 0, len(configItems))
	for _, item := range configItems {
		var value string
		switch item {
		case itemSound:
			value = onOff(m.config.Sound)
		case itemMusic:
			value = onOff(m.config.Music)
		case itemVolume:
			value = fmt.Sprintf("%d%%", m.config.Volume)
		case itemShadow:
			value = onOff(m.config.Shadow)
		case itemRandomizer:
			value = "Uniform"
			if m.config.Bag {
				value = "7-Bag"
			}
		case itemTheme:
			value = theme.Name
		case itemScale:
			value = fmt.Sprintf("%dx", m.config.Scale)
		case itemSync:
			value = onOff(m.config.Sync)
			if m.sync == nil {
				value += " (no server)"
			}
		}
		items = append(items, fmt.Sprintf("%s: %s", item, value))
	}
	content := renderMenu("Config", items, m.configIndex, theme)
	return center(m.width, m.height, lipgloss.JoinVertical(lipgloss.Center, content, "", m.help.View(menuKeys)))
}

func viewNameEntry(m Model) string {
	theme := m.theme()
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("Game Over"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Score: %d  Lines: %d  Level: %d\n\n", m.game.Score(), m.game.Lines(), m.game.Level()))
	if rank, best := m.standing(); best {
		b.WriteString(highlightStyle(theme).Render(fmt.Sprintf("New high score! Rank #%d", rank)))
		b.WriteString("\n\n")
	}
	b.WriteString("Enter your name: ")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle(theme).Render("Enter to save, Esc to skip"))
	return center(m.width, m.height, b.String())
}

func viewGame(m Model) string {
	theme := m.theme()
	scale := clampScale(m.config.Scale)
	board := m.game.Board()
	minWidth, minHeight := minGameSize(board.Width(), board.Height(), scale)
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		message := fmt.Sprintf("Terminal too small. Need at least %dx%d. Current %dx%d.", minWidth, minHeight, m.width, m.height)
		return center(m.width, m.height, message)
	}
	field := renderBoard(m.game, theme, scale, m.config.Shadow)
	info := renderInfo(m, theme, scale)
	content := lipgloss.JoinHorizontal(lipgloss.Top, field, info)
	if m.width > 0 && m.width < minWidth+24 {
		content = lipgloss.JoinVertical(lipgloss.Left, field, info)
	}
	return center(m.width, m.height, lipgloss.JoinVertical(lipgloss.Left, content, m.help.View(gameKeys)))
}

// renderBoard draws Grid with an optional ghost piece at the resting row.
func renderBoard(g *tetris.Game, theme Theme, scale int, showShadow bool) string {
	grid := g.Grid()
	height := len(grid)
	width := g.Board().Width()
	ghost := ghostCells(g, grid, showShadow)

	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	cellText := strings.Repeat(" ", cellWidth(scale))
	ghostText := strings.Repeat(".", cellWidth(scale))
	ghostStyle := lipgloss.NewStyle().Foreground(theme.pieceColor(g.Current())).Faint(true)
	edge := border.Render("+" + strings.Repeat("-", width*cellWidth(scale)) + "+")

	var b strings.Builder
	b.WriteString(edge)
	b.WriteString("\n")
	for y := 0; y < height; y++ {
		for repeat := 0; repeat < scale; repeat++ {
			b.WriteString(border.Render("|"))
			for x := 0; x < width; x++ {
				kind, filled := grid[y][x].Kind()
				switch {
				case filled:
					b.WriteString(lipgloss.NewStyle().Background(theme.pieceColor(kind)).Render(cellText))
				case ghost[tetris.Point{X: x, Y: y}]:
					b.WriteString(ghostStyle.Render(ghostText))
				default:
					b.WriteString(cellText)
				}
			}
			b.WriteString(border.Render("|"))
			b.WriteString("\n")
		}
	}
	b.WriteString(edge)
	return b.String()
}

func ghostCells(g *tetris.Game, grid [][]tetris.Cell, enabled bool) map[tetris.Point]bool {
	ghost := map[tetris.Point]bool{}
	if !enabled || g.Over() {
		return ghost
	}
	pos := g.Position()
	ghostY := g.GhostY()
	if ghostY == pos.Y {
		return ghost
	}
	for _, p := range g.Shape().Cells() {
		x := pos.X + p.X
		y := ghostY + p.Y
		if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
			continue
		}
		if grid[y][x].Empty() {
			ghost[tetris.Point{X: x, Y: y}] = true
		}
	}
	return ghost
}

func renderInfo(m Model, theme Theme, scale int) string {
	g := m.game
	pad := lipgloss.NewStyle().PaddingLeft(2)
	var b strings.Builder
	b.WriteString(pad.Render(titleStyle(theme).Render("Next")))
	b.WriteString("\n")
	b.WriteString(pad.Render(renderMiniPiece(g.Next(), theme, scale)))
	b.WriteString("\n\n")
	b.WriteString(pad.Render(fmt.Sprintf("Score: %d", g.Score())))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Lines: %d", g.Lines())))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Level: %d", g.Level())))
	b.WriteString("\n")
	b.WriteString(pad.Render(helpStyle(theme).Render(fmt.Sprintf("Speed: %s", g.TickInterval()))))
	b.WriteString("\n\n")
	if m.lastEvent != "" && time.Since(m.lastEventAt) < lastEventVisible {
		b.WriteString(pad.Render(highlightStyle(theme).Render(m.lastEvent)))
		b.WriteString("\n")
		b.WriteString(pad.Render(highlightStyle(theme).Render(fmt.Sprintf("+%d", m.lastDelta))))
		b.WriteString("\n\n")
	}
	if g.Paused() {
		b.WriteString(pad.Render(highlightStyle(theme).Render("Paused")))
		b.WriteString("\n")
	}
	return b.String()
}

func renderMiniPiece(kind tetris.Kind, theme Theme, scale int) string {
	shape := kind.Shape()
	cellText := strings.Repeat(" ", cellWidth(scale))
	filled := lipgloss.NewStyle().Background(theme.pieceColor(kind))
	var b strings.Builder
	for y := 0; y < shape.Height(); y++ {
		for repeat := 0; repeat < scale; repeat++ {
			for x := 0; x < shape.Width(); x++ {
				if shape[y][x] {
					b.WriteString(filled.Render(cellText))
				} else {
					b.WriteString(cellText)
				}
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func minGameSize(boardWidth, boardHeight, scale int) (int, int) {
	width := boardWidth*cellWidth(scale) + 4
	height := boardHeight*scale + 4
	return width, height
}

func titleStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func highlightStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func helpStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.TextColor)
}

func warningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func clampScale(value int) int {
	if value < 1 {
		return 1
	}
	if value > maxScale {
		return maxScale
	}
	return value
}

func clampVolumePercent(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

func cellWidth(scale int) int {
	if scale < 1 {
		scale = 1
	}
	return 2 * scale
}

func renderMenu(title string, items []string, selected int, theme Theme) string {
	maxWidth := lipgloss.Width(title)
	for _, item := range items {
		if width := lipgloss.Width(item); width > maxWidth {
			maxWidth = width
		}
	}
	lineStyle := lipgloss.NewStyle().Width(maxWidth).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString(lineStyle.Render(titleStyle(theme).Render(title)))
	b.WriteString("\n\n")
	for i, item := range items {
		if i == selected {
			b.WriteString(lineStyle.Render(highlightStyle(theme).Render(item)))
		} else {
			b.WriteString(lineStyle.Render(item))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
