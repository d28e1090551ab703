// Package keys implements the Injector: it parses host-key action tokens
// and drives a Driver to synthesize keyboard/mouse events, tracking which
// synthetic keys are currently held so a Click inside a held modifier
// never double-presses it.
package keys

import (
	"fmt"
	"strconv"
	"strings"
)

// HostKey is an opaque code the Driver understands; its numeric space is
// shared with the platform driver's own key-code constants.
type HostKey int

// ErrUnknownKey is returned when a token matches none of the recognized
// forms (spec.md §4.3 token parsing table).
type ErrUnknownKey struct {
	Token string
}

func (e *ErrUnknownKey) Error() string {
	return fmt.Sprintf("unknown host key token: %q", e.Token)
}

// synonyms is the static, case-insensitive lookup table for every named
// token the spec recognizes, keyed by its uppercased form. It does not
// cover letters A-Z or the @<decimal> escape, which are handled as
// fallback branches in parseToken.
var synonyms = map[string]HostKey{
	"ALT": KeyAlt, "ALT_L": KeyAlt, "ALT_R": KeyAlt,
	"CTRL": KeyCtrl, "CTRL_L": KeyCtrl, "CTRL_R": KeyCtrl, "CONTROL": KeyCtrl,
	"SHIFT": KeyShift, "SHIFT_L": KeyShift, "SHIFT_R": KeyShift,
	"WIN": KeyMeta, "SUPER": KeyMeta, "COMMAND": KeyMeta, "META": KeyMeta,

	"UP": KeyUp, "UP_ARROW": KeyUp,
	"DOWN": KeyDown, "DOWN_ARROW": KeyDown,
	"LEFT": KeyLeft, "LEFT_ARROW": KeyLeft,
	"RIGHT": KeyRight, "RIGHT_ARROW": KeyRight,

	"BACKSPACE": KeyBackspace,
	"CAPSLOCK":  KeyCapslock,
	"DELETE":    KeyDelete,
	"END":       KeyEnd,
	"ENTER":     KeyEnter,
	"ESCAPE":    KeyEscape,
	"HOME":      KeyHome,
	"PAGEUP":    KeyPageUp,
	"PAGEDOWN":  KeyPageDown,
	"SPACE":     KeySpace,
	"TAB":       KeyTab,

	"F1": KeyF1, "F2": KeyF2, "F3": KeyF3, "F4": KeyF4,
	"F5": KeyF5, "F6": KeyF6, "F7": KeyF7, "F8": KeyF8,
	"F9": KeyF9, "F10": KeyF10, "F11": KeyF11, "F12": KeyF12,

	"-": KeyMinus, "=": KeyEqual, "[": KeyLeftBrace, "]": KeyRightBrace,
	";": KeySemicolon, "'": KeyApostrophe, ",": KeyComma, ".": KeyDot,
	"/": KeySlash, "`": KeyGrave,
}

// parseToken resolves a single action token (case-insensitive) to a
// HostKey, per spec.md §4.3.
func parseToken(token string) (HostKey, error) {
	upper := strings.ToUpper(strings.TrimSpace(token))
	if upper == "" {
		return 0, &ErrUnknownKey{Token: token}
	}

	if hk, ok := synonyms[upper]; ok {
		return hk, nil
	}

	if len(upper) == 1 && upper[0] >= 'A' && upper[0] <= 'Z' {
		return letterKey(upper[0]), nil
	}

	if strings.HasPrefix(upper, "@") {
		n, err := strconv.Atoi(upper[1:])
		if err != nil {
			return 0, &ErrUnknownKey{Token: token}
		}
		return HostKey(n), nil
	}

	return 0, &ErrUnknownKey{Token: token}
}

func letterKey(c byte) HostKey {
	return KeyA + HostKey(c-'A')
}
