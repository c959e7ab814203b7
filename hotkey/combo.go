package hotkey

import (
	"fmt"
	"strings"

	hook "github.com/robotn/gohook"
)

// Combo is a parsed key combination such as "ctrl+shift+space". The last
// token is the primary key; any preceding tokens are modifiers that must be
// held when the primary key goes down.
type Combo struct {
	Primary   uint16
	Modifiers []uint16
	raw       string
}

// ParseCombo parses a "+"-separated combination using gohook's keycode
// table. Tokens are trimmed and case-insensitive.
func ParseCombo(s string) (Combo, error) {
	parts := strings.Split(s, "+")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	if len(tokens) == 0 {
		return Combo{}, fmt.Errorf("hotkey: empty combo %q", s)
	}

	codes := make([]uint16, len(tokens))
	for i, tok := range tokens {
		code, ok := hook.Keycode[tok]
		if !ok {
			return Combo{}, fmt.Errorf("hotkey: unknown key %q in combo %q", tok, s)
		}
		codes[i] = code
	}

	return Combo{
		Primary:   codes[len(codes)-1],
		Modifiers: codes[:len(codes)-1],
		raw:       strings.Join(tokens, "+"),
	}, nil
}

func (c Combo) String() string { return c.raw }

// contains reports whether code is part of the combination.
func (c Combo) contains(code uint16) bool {
	if code == c.Primary {
		return true
	}
	for _, m := range c.Modifiers {
		if m == code {
			return true
		}
	}
	return false
}
