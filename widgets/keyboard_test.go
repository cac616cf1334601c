package widgets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderKeyboardLayout(t *testing.T) {
	caps := map[string]KeyCap{
		"q":     {Label: "q", Note: "C5"},
		"a":     {Label: "a", Note: "C4", Active: true},
		"comma": {Label: "comma", Note: "D5"},
	}
	out := RenderKeyboard(caps, '■', '□')
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "q")
	assert.Contains(t, lines[0], "C5")
	assert.Contains(t, lines[1], "■")
	assert.Contains(t, lines[1], "C4")
	assert.Contains(t, lines[2], "comma", "labels off the layout go on the last row")
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{{
		Title: "Keys",
		Keys:  []KeyBinding{{Key: "esc", Desc: "all notes off"}},
	}})
	assert.Equal(t, "Keys\n  esc          all notes off", out)
}
