package source

import "strings"

// kernel code names whose terminal token differs from the lower-cased name
var terminalTokens = map[string]string{
	"comma":      ",",
	"dot":        ".",
	"slash":      "/",
	"semicolon":  ";",
	"apostrophe": "'",
	"grave":      "`",
	"minus":      "-",
	"equal":      "=",
	"leftbrace":  "[",
	"rightbrace": "]",
	"backslash":  "\\",
	"space":      " ",
	"esc":        "esc",
	"enter":      "enter",
	"tab":        "tab",
	"backspace":  "backspace",
	"delete":     "delete",
	"insert":     "insert",
	"home":       "home",
	"end":        "end",
	"pageup":     "pgup",
	"pagedown":   "pgdown",
}

// normalizeKeyName turns a kernel code name ("KEY_A", "KEY_COMMA") into the
// token the terminal source reports for the same key ("a", ","), so one
// keymap serves both sources
func normalizeKeyName(code string) string {
	name := strings.ToLower(strings.TrimPrefix(code, "KEY_"))
	if token, ok := terminalTokens[name]; ok {
		return token
	}
	return name
}
