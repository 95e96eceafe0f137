package lineedit_test

import (
	"math/rand"
	"testing"

	"github.com/dshills/econ/internal/lineedit"
)

func TestNewLineDefaults(t *testing.T) {
	l := lineedit.NewLine(0)
	if l.Cap() != lineedit.DefaultCapacity {
		t.Errorf("Cap() = %d, want %d", l.Cap(), lineedit.DefaultCapacity)
	}
	if l.Len() != 0 || l.Cursor() != 0 {
		t.Errorf("new line not empty: %#v", l)
	}
}

func TestLineInsert(t *testing.T) {
	l := lineedit.NewLine(8)
	for _, b := range []byte("ac") {
		l.Insert(b)
	}
	l.Left()
	l.Insert('b')

	if got := l.String(); got != "abc" {
		t.Errorf("String() = %q, want %q", got, "abc")
	}
	if l.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", l.Cursor())
	}
}

func TestLineInsertFull(t *testing.T) {
	l := lineedit.NewLine(3)
	for _, b := range []byte("abcdef") {
		l.Insert(b)
	}
	if got := l.String(); got != "abc" {
		t.Errorf("String() = %q, want %q", got, "abc")
	}

	l.Left()
	if l.Insert('x') {
		t.Error("Insert() into a full line succeeded")
	}
	if l.Len() != 3 || l.Cursor() != 2 {
		t.Errorf("full line changed: %#v", l)
	}
}

func TestLineBackspace(t *testing.T) {
	l := lineedit.NewLine(8)
	if l.Backspace() {
		t.Error("Backspace() on empty line reported a change")
	}

	for _, b := range []byte("abc") {
		l.Insert(b)
	}
	l.Left()
	if !l.Backspace() {
		t.Fatal("Backspace() mid-line reported no change")
	}
	if got := l.String(); got != "ac" {
		t.Errorf("String() = %q, want %q", got, "ac")
	}
	if l.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", l.Cursor())
	}

	l.Left()
	if l.Backspace() {
		t.Error("Backspace() at cursor 0 reported a change")
	}
	if got := l.String(); got != "ac" {
		t.Errorf("String() = %q after no-op backspace", got)
	}
}

func TestLineDelete(t *testing.T) {
	l := lineedit.NewLine(8)
	for _, b := range []byte("abc") {
		l.Insert(b)
	}
	if l.Delete() {
		t.Error("Delete() at end reported a change")
	}

	l.Left()
	l.Left()
	if !l.Delete() {
		t.Fatal("Delete() mid-line reported no change")
	}
	if got := l.String(); got != "ac" {
		t.Errorf("String() = %q, want %q", got, "ac")
	}
	if l.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", l.Cursor())
	}
}

func TestLineArrowsClamp(t *testing.T) {
	l := lineedit.NewLine(8)
	if l.Left() || l.Right() {
		t.Error("arrow on empty line reported movement")
	}

	l.Insert('a')
	l.Insert('b')
	if l.Right() {
		t.Error("Right() at end reported movement")
	}
	l.Left()
	l.Left()
	if l.Left() {
		t.Error("Left() at start reported movement")
	}
}

func TestLineLeftRightIdempotent(t *testing.T) {
	l := lineedit.NewLine(16)
	for _, b := range []byte("hello") {
		l.Insert(b)
	}
	l.Left()

	for k := 0; k <= 3; k++ {
		start, text := l.Cursor(), l.String()
		for i := 0; i < k; i++ {
			l.Left()
		}
		for i := 0; i < k; i++ {
			l.Right()
		}
		if l.Cursor() != start || l.String() != text {
			t.Errorf("k=%d: got %#v, want cursor %d text %q", k, l, start, text)
		}
	}
}

func TestLineReset(t *testing.T) {
	l := lineedit.NewLine(8)
	l.Insert('x')
	l.Reset()
	if l.Len() != 0 || l.Cursor() != 0 || l.String() != "" {
		t.Errorf("Reset() left %#v", l)
	}
}

// TestLineInvariant drives random edits against a slice model and checks
// 0 <= cursor <= len <= cap after every step.
func TestLineInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		capacity := 1 + rng.Intn(12)
		l := lineedit.NewLine(capacity)
		var model []byte
		cursor := 0

		for step := 0; step < 200; step++ {
			switch rng.Intn(5) {
			case 0:
				b := byte('a' + rng.Intn(26))
				ok := l.Insert(b)
				if len(model) < capacity {
					model = append(model[:cursor], append([]byte{b}, model[cursor:]...)...)
					cursor++
					if !ok {
						t.Fatalf("Insert() rejected with room left: %#v", l)
					}
				} else if ok {
					t.Fatalf("Insert() accepted past capacity: %#v", l)
				}
			case 1:
				l.Backspace()
				if cursor > 0 {
					model = append(model[:cursor-1], model[cursor:]...)
					cursor--
				}
			case 2:
				l.Delete()
				if cursor < len(model) {
					model = append(model[:cursor], model[cursor+1:]...)
				}
			case 3:
				l.Left()
				if cursor > 0 {
					cursor--
				}
			case 4:
				l.Right()
				if cursor < len(model) {
					cursor++
				}
			}

			if l.Cursor() < 0 || l.Cursor() > l.Len() || l.Len() > l.Cap() {
				t.Fatalf("invariant broken: %#v", l)
			}
			if l.String() != string(model) || l.Cursor() != cursor {
				t.Fatalf("step %d: got %#v, want %q cursor %d", step, l, model, cursor)
			}
		}
	}
}
