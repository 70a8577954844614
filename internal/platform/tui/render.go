package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lanerush/internal/core"
)

// paletteStyles maps palette colors to lipgloss styles. Text, fills and
// cells without a sampled color render through it.
var paletteStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// span is a run of neighbouring cells that share a color.
type span struct {
	color core.Color
	hex   string
	text  string
}

// rowSpans splits row y into same-colored spans.
func rowSpans(s *core.Screen, y int) []span {
	var spans []span
	var text strings.Builder
	cur := s.GetCell(0, y)

	flush := func() {
		spans = append(spans, span{color: cur.Color, hex: cur.Hex, text: text.String()})
		text.Reset()
	}
	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != cur.Color || cell.Hex != cur.Hex {
			flush()
			cur = cell
		}
		text.WriteRune(cell.Rune)
	}
	if text.Len() > 0 {
		flush()
	}
	return spans
}

// spanStyle uses the sampled color when there is one and the palette
// otherwise. lipgloss degrades hex colors on terminals without true color.
func spanStyle(sp span, cache map[string]lipgloss.Style) lipgloss.Style {
	if sp.hex == "" {
		if style, ok := paletteStyles[sp.color]; ok {
			return style
		}
		return paletteStyles[core.ColorDefault]
	}
	style, ok := cache[sp.hex]
	if !ok {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(sp.hex))
		cache[sp.hex] = style
	}
	return style
}

// RenderScreen converts the cell buffer to a styled string, one line per
// row.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())
	cache := make(map[string]lipgloss.Style)

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, sp := range rowSpans(s, y) {
			sb.WriteString(spanStyle(sp, cache).Render(sp.text))
		}
	}
	return sb.String()
}
