// Package keys decodes raw terminal bytes into named keys and classifies
// them for digit-entry prompts.
package keys

import (
	"fmt"
	"strings"
)

// Key is one decoded keystroke. Name follows the bubbles/key naming used by
// the key bindings ("enter", "esc", "up", "q", ...), so a Key can be passed
// straight to key.Matches.
type Key struct {
	Name string
	Raw  []byte
}

// String returns the key name.
func (k Key) String() string {
	return k.Name
}

// Debug formats the raw bytes and decoded name for the key-debug log.
func (k Key) Debug() string {
	return fmt.Sprintf("raw=%q seq=%x decoded=%s", string(k.Raw), k.Raw, k.Name)
}

// Named keys produced by the decoder.
const (
	NameEnter     = "enter"
	NameBackspace = "backspace"
	NameEscape    = "esc"
	NameCtrlC     = "ctrl+c"
	NameTab       = "tab"
	NameSpace     = " "
	NameUp        = "up"
	NameDown      = "down"
	NameLeft      = "left"
	NameRight     = "right"
	NameKeypad    = "kp"
	NameKpEnter   = "kpenter"
	NameUnknown   = "unknown"
)

// Kind is the class of a key inside a digit-entry prompt.
type Kind int

const (
	KindIgnore Kind = iota
	KindDigit
	KindEnter
	KindBackspace
	KindEscape
)

func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindEnter:
		return "enter"
	case KindBackspace:
		return "backspace"
	case KindEscape:
		return "escape"
	default:
		return "ignore"
	}
}

// Token is a classified key. Value holds the ASCII digit for KindDigit.
type Token struct {
	Kind  Kind
	Value string
}

// Classify maps a key to its prompt token. Keypad digits and keypad enter
// count the same as their main-keyboard counterparts.
func Classify(k Key) Token {
	name := k.Name
	if strings.HasPrefix(name, NameKeypad) && len(name) == len(NameKeypad)+1 {
		name = name[len(NameKeypad):]
	}
	switch {
	case len(name) == 1 && name[0] >= '0' && name[0] <= '9':
		return Token{Kind: KindDigit, Value: name}
	case name == NameEnter || name == NameKpEnter:
		return Token{Kind: KindEnter}
	case name == NameBackspace:
		return Token{Kind: KindBackspace}
	case name == NameEscape:
		return Token{Kind: KindEscape}
	default:
		return Token{Kind: KindIgnore}
	}
}
