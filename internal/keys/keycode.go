package keys

// Host key codes, deliberately modeled on Linux input-event key codes
// (as consumed by ThomasT75/uinput) since that is the Driver's native
// numbering on the only platform currently wired up. A stub driver on
// other platforms treats these as opaque values.
const (
	KeyA HostKey = 30 + iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

const (
	// Control/Shift/Alt collapse their left and right synonyms to one
	// code each (spec.md §4.3): the device and the processor never
	// distinguish a left from a right modifier, so neither does the
	// Injector.
	KeyCtrl  HostKey = 29
	KeyShift HostKey = 42
	KeyAlt   HostKey = 56
	KeyMeta  HostKey = 125

	KeyUp    HostKey = 103
	KeyDown  HostKey = 108
	KeyLeft  HostKey = 105
	KeyRight HostKey = 106

	KeyBackspace HostKey = 14
	KeyCapslock  HostKey = 58
	KeyDelete    HostKey = 111
	KeyEnd       HostKey = 107
	KeyEnter     HostKey = 28
	KeyEscape    HostKey = 1
	KeyHome      HostKey = 102
	KeyPageUp    HostKey = 104
	KeyPageDown  HostKey = 109
	KeySpace     HostKey = 57
	KeyTab       HostKey = 15

	KeyF1  HostKey = 59
	KeyF2  HostKey = 60
	KeyF3  HostKey = 61
	KeyF4  HostKey = 62
	KeyF5  HostKey = 63
	KeyF6  HostKey = 64
	KeyF7  HostKey = 65
	KeyF8  HostKey = 66
	KeyF9  HostKey = 67
	KeyF10 HostKey = 68
	KeyF11 HostKey = 87
	KeyF12 HostKey = 88

	KeyMinus      HostKey = 12
	KeyEqual      HostKey = 13
	KeyLeftBrace  HostKey = 26
	KeyRightBrace HostKey = 27
	KeySemicolon  HostKey = 39
	KeyApostrophe HostKey = 40
	KeyComma      HostKey = 51
	KeyDot        HostKey = 52
	KeySlash      HostKey = 53
	KeyGrave      HostKey = 41
)

// Synthetic wheel tokens. These never reach the Driver's PressKey /
// ReleaseKey; Execute intercepts them and calls Scroll instead.
const (
	wheelUp   = "WHEEL_UP"
	wheelDown = "WHEEL_DOWN"
)
