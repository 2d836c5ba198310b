package keys

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
)

// scripted replays bursts of bytes. Each burst becomes available only after
// the previous one has been fully read and one empty wait has passed, which
// mimics separate keystrokes arriving over time.
type scripted struct {
	bursts [][]byte
	waits  int
}

func (s *scripted) Next(wait time.Duration) (byte, bool) {
	for len(s.bursts) > 0 && len(s.bursts[0]) == 0 {
		s.bursts = s.bursts[1:]
		s.waits++
		return 0, false
	}
	if len(s.bursts) == 0 {
		s.waits++
		return 0, false
	}
	b := s.bursts[0][0]
	s.bursts[0] = s.bursts[0][1:]
	return b, true
}

func burst(parts ...string) *scripted {
	s := &scripted{}
	for _, p := range parts {
		s.bursts = append(s.bursts, []byte(p))
	}
	return s
}

func TestDecoder_SingleBytes(t *testing.T) {
	tests := []struct {
		in   string
		want string
		kind Kind
	}{
		{"7", "7", KindDigit},
		{"\r", NameEnter, KindEnter},
		{"\n", NameEnter, KindEnter},
		{"\x7f", NameBackspace, KindBackspace},
		{"\b", NameBackspace, KindBackspace},
		{"\x03", NameCtrlC, KindIgnore},
		{"q", "q", KindIgnore},
		{" ", NameSpace, KindIgnore},
		{"\x01", NameUnknown, KindIgnore},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			d := NewDecoder(burst(tt.in), time.Millisecond)
			k, ok := d.ReadKey(0)
			if !ok {
				t.Fatal("ReadKey() returned no key")
			}
			if k.Name != tt.want {
				t.Errorf("Name = %q, want %q", k.Name, tt.want)
			}
			if got := Classify(k).Kind; got != tt.kind {
				t.Errorf("Classify() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestDecoder_EscapeSequences(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		kind  Kind
		value string
	}{
		{"bare escape", "\x1b", NameEscape, KindEscape, ""},
		{"keypad zero", "\x1bOp", "kp0", KindDigit, "0"},
		{"keypad nine", "\x1bOy", "kp9", KindDigit, "9"},
		{"keypad enter", "\x1bOM", NameKpEnter, KindEnter, ""},
		{"cursor up", "\x1b[A", NameUp, KindIgnore, ""},
		{"application cursor down", "\x1bOB", NameDown, KindIgnore, ""},
		{"modified cursor", "\x1b[1;5A", NameUnknown, KindIgnore, ""},
		{"alt key", "\x1bx", NameUnknown, KindIgnore, ""},
		{"unmapped ss3", "\x1bOZ", NameUnknown, KindIgnore, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(burst(tt.in), time.Millisecond)
			k, ok := d.ReadKey(0)
			if !ok {
				t.Fatal("ReadKey() returned no key")
			}
			if k.Name != tt.want {
				t.Errorf("Name = %q, want %q", k.Name, tt.want)
			}
			if string(k.Raw) != tt.in {
				t.Errorf("Raw = %q, want %q", k.Raw, tt.in)
			}
			tok := Classify(k)
			if tok.Kind != tt.kind || tok.Value != tt.value {
				t.Errorf("Classify() = %+v, want {%v %q}", tok, tt.kind, tt.value)
			}
		})
	}
}

func TestDecoder_SequenceDoesNotSwallowNextKey(t *testing.T) {
	src := burst("\x1bOq", "5")
	d := NewDecoder(src, time.Millisecond)

	first, _ := d.ReadKey(0)
	if first.Name != "kp1" {
		t.Fatalf("first = %q, want kp1", first.Name)
	}
	second, ok := d.ReadKey(0)
	if !ok {
		second, ok = d.ReadKey(0)
	}
	if !ok || second.Name != "5" {
		t.Errorf("second = %q (ok=%v), want 5", second.Name, ok)
	}
}

func TestDecoder_BareEscapeGivesUpAfterAttempts(t *testing.T) {
	src := burst("\x1b")
	d := NewDecoder(src, time.Millisecond)

	k, _ := d.ReadKey(0)
	if k.Name != NameEscape {
		t.Fatalf("Name = %q, want esc", k.Name)
	}
	if src.waits > MaxFollowAttempts+1 {
		t.Errorf("waited %d times, want at most %d", src.waits, MaxFollowAttempts+1)
	}
}

func TestDecoder_FullwidthDigit(t *testing.T) {
	d := NewDecoder(burst("３"), time.Millisecond)
	k, ok := d.ReadKey(0)
	if !ok {
		t.Fatal("ReadKey() returned no key")
	}
	tok := Classify(k)
	if tok.Kind != KindDigit || tok.Value != "3" {
		t.Errorf("Classify() = %+v, want digit 3", tok)
	}
}

func TestDecoder_NoInput(t *testing.T) {
	d := NewDecoder(burst(), time.Millisecond)
	if _, ok := d.ReadKey(0); ok {
		t.Error("ReadKey() returned a key from an empty source")
	}
}

func TestKey_MatchesBindings(t *testing.T) {
	quit := key.NewBinding(key.WithKeys("q", "ctrl+c"))
	up := key.NewBinding(key.WithKeys("up", "k"))

	if !key.Matches(Key{Name: NameCtrlC}, quit) {
		t.Error("ctrl+c should match quit")
	}
	if !key.Matches(Key{Name: NameUp}, up) {
		t.Error("up should match up binding")
	}
	if key.Matches(Key{Name: "x"}, quit) {
		t.Error("x should not match quit")
	}
}
