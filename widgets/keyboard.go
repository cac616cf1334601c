package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyCap is one bound key as shown on screen
type KeyCap struct {
	Label  string // key name
	Note   string // note name, e.g. "C4"
	Color  lipgloss.Color
	Active bool
}

// QwertyRows is the physical layout used to arrange bound keys
var QwertyRows = [][]string{
	{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l", ";"},
	{"z", "x", "c", "v", "b", "n", "m", ",", ".", "/"},
}

// RenderKeyCap renders a single key: label over note name, filled when active
func RenderKeyCap(k KeyCap, held, idle rune) string {
	sym := idle
	style := lipgloss.NewStyle().Foreground(k.Color)
	if k.Active {
		sym = held
		style = style.Bold(true).Reverse(true)
	}
	return style.Render(fmt.Sprintf("%c %-2s %-4s", sym, k.Label, k.Note))
}

// RenderKeyboard lays out caps along QwertyRows, indenting each row like a
// real keyboard. Caps whose label is not on the layout are listed on a final row.
func RenderKeyboard(caps map[string]KeyCap, held, idle rune) string {
	placed := make(map[string]bool)
	var lines []string

	for i, row := range QwertyRows {
		var cells []string
		for _, label := range row {
			if k, ok := caps[label]; ok {
				cells = append(cells, RenderKeyCap(k, held, idle))
				placed[label] = true
			}
		}
		if len(cells) == 0 {
			continue
		}
		lines = append(lines, strings.Repeat(" ", i*2)+strings.Join(cells, " "))
	}

	var extra []string
	for _, label := range sortedLabels(caps) {
		if !placed[label] {
			extra = append(extra, RenderKeyCap(caps[label], held, idle))
		}
	}
	if len(extra) > 0 {
		lines = append(lines, strings.Join(extra, " "))
	}
	return strings.Join(lines, "\n")
}
