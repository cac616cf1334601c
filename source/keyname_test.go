package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeyName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"KEY_A", "a"},
		{"KEY_Q", "q"},
		{"KEY_1", "1"},
		{"KEY_COMMA", ","},
		{"KEY_DOT", "."},
		{"KEY_SEMICOLON", ";"},
		{"KEY_LEFTBRACE", "["},
		{"KEY_SPACE", " "},
		{"KEY_ESC", "esc"},
		{"KEY_PAGEUP", "pgup"},
		{"KEY_F1", "f1"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeKeyName(tt.code), tt.code)
	}
}
