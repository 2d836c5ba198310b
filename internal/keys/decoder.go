package keys

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// Source yields raw input bytes.
type Source interface {
	// Next returns the next byte, waiting at most wait for one to arrive.
	// A zero wait polls without blocking.
	Next(wait time.Duration) (byte, bool)
}

const (
	esc = 0x1b

	// DefaultFollowWait bounds each wait for the next byte of an escape
	// sequence.
	DefaultFollowWait = 10 * time.Millisecond
	// MaxFollowAttempts is how many empty waits end an escape sequence.
	MaxFollowAttempts = 3
	// maxSequence caps the length of a CSI sequence.
	maxSequence = 16
)

var keypad = map[byte]string{
	'p': "kp0", 'q': "kp1", 'r': "kp2", 's': "kp3", 't': "kp4",
	'u': "kp5", 'v': "kp6", 'w': "kp7", 'x': "kp8", 'y': "kp9",
	'M': NameKpEnter,
}

var cursor = map[byte]string{
	'A': NameUp, 'B': NameDown, 'C': NameRight, 'D': NameLeft,
}

// Decoder turns a byte stream into keys.
type Decoder struct {
	src        Source
	followWait time.Duration
}

// NewDecoder creates a decoder reading from src. followWait bounds each
// lookahead wait inside an escape sequence.
func NewDecoder(src Source, followWait time.Duration) *Decoder {
	if followWait <= 0 {
		followWait = DefaultFollowWait
	}
	return &Decoder{src: src, followWait: followWait}
}

// ReadKey waits up to wait for one keystroke.
func (d *Decoder) ReadKey(wait time.Duration) (Key, bool) {
	b, ok := d.src.Next(wait)
	if !ok {
		return Key{}, false
	}

	var k Key
	switch {
	case b == esc:
		k = d.readEscape()
	case b >= utf8.RuneSelf:
		k = d.readRune(b)
	default:
		k = Key{Name: byteName(b), Raw: []byte{b}}
	}

	logrus.WithFields(logrus.Fields{
		"raw":     string(k.Raw),
		"seq":     fmt.Sprintf("%x", k.Raw),
		"decoded": k.Name,
	}).Debug("key")
	return k, true
}

func byteName(b byte) string {
	switch {
	case b == '\r' || b == '\n':
		return NameEnter
	case b == 0x7f || b == 0x08:
		return NameBackspace
	case b == 0x03:
		return NameCtrlC
	case b == '\t':
		return NameTab
	case b < 0x20:
		return NameUnknown
	default:
		return string(rune(b))
	}
}

// seqState tracks progress through an escape sequence.
type seqState int

const (
	seqIntro seqState = iota // ESC read, waiting for '[' or 'O'
	seqSS3                   // ESC O read, waiting for the final byte
	seqCSI                   // ESC [ read, waiting for parameters or final byte
	seqDone
)

// lookahead assembles one escape sequence. It stops when the sequence is
// complete or after MaxFollowAttempts consecutive empty waits.
type lookahead struct {
	state  seqState
	buf    []byte
	misses int
}

func (l *lookahead) feed(b byte) {
	l.buf = append(l.buf, b)
	l.misses = 0
	switch l.state {
	case seqIntro:
		switch b {
		case '[':
			l.state = seqCSI
		case 'O':
			l.state = seqSS3
		default:
			l.state = seqDone
		}
	case seqSS3:
		l.state = seqDone
	case seqCSI:
		if (b >= 0x40 && b <= 0x7e) || len(l.buf) >= maxSequence {
			l.state = seqDone
		}
	}
}

func (d *Decoder) readEscape() Key {
	l := lookahead{state: seqIntro, buf: []byte{esc}}
	for l.state != seqDone && l.misses < MaxFollowAttempts {
		b, ok := d.src.Next(d.followWait)
		if !ok {
			l.misses++
			continue
		}
		l.feed(b)
	}
	return Key{Name: escapeName(l), Raw: l.buf}
}

func escapeName(l lookahead) string {
	if len(l.buf) == 1 {
		return NameEscape
	}
	if l.state != seqDone || len(l.buf) != 3 {
		return NameUnknown
	}
	final := l.buf[2]
	switch l.buf[1] {
	case 'O':
		if name, ok := keypad[final]; ok {
			return name
		}
		if name, ok := cursor[final]; ok {
			return name
		}
	case '[':
		if name, ok := cursor[final]; ok {
			return name
		}
	}
	return NameUnknown
}

// readRune completes a multi-byte UTF-8 sequence. Fullwidth digits decode
// to their ASCII names.
func (d *Decoder) readRune(first byte) Key {
	buf := []byte{first}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		b, ok := d.src.Next(d.followWait)
		if !ok {
			break
		}
		buf = append(buf, b)
	}
	r, _ := utf8.DecodeRune(buf)
	switch {
	case r == utf8.RuneError:
		return Key{Name: NameUnknown, Raw: buf}
	case r >= '０' && r <= '９':
		return Key{Name: string(rune('0' + (r - '０'))), Raw: buf}
	default:
		return Key{Name: string(r), Raw: buf}
	}
}
