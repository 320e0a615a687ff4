// Package fiesta provides owned, growable and sequenced text containers
// that share a single capacity-management engine.
package fiesta

import (
	"github.com/pkg/errors"

	"github.com/rawbytedev/fiesta/internal/common"
)

// Text is a fixed-length byte string. buf always holds the n content bytes
// followed by a zero terminator; n can shrink through Set and Clear but
// never grow past the original allocation.
type Text struct {
	buf []byte
	n   int
}

// NewText allocates a zero-filled Text of length n.
func NewText(n int) (Text, error) {
	if n < 0 {
		return Text{}, errors.Wrapf(ErrNegativeLength, "new text of %d bytes", n)
	}
	h, err := common.New[byte](n + 1)
	if err != nil {
		return Text{}, err
	}
	return Text{buf: h.Data, n: n}, nil
}

// TextFrom copies s into a new Text.
func TextFrom(s string) Text {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return Text{buf: buf, n: len(s)}
}

// TextFromBytes copies p into a new Text.
func TextFromBytes(p []byte) Text {
	buf := make([]byte, len(p)+1)
	copy(buf, p)
	return Text{buf: buf, n: len(p)}
}

// Char returns a one byte Text.
func Char(c byte) Text {
	return Text{buf: []byte{c, 0}, n: 1}
}

func (t Text) Len() int { return t.n }

// Bytes returns the content. The slice aliases t and is only valid until t
// is released.
func (t Text) Bytes() []byte {
	if t.buf == nil {
		return nil
	}
	return t.buf[:t.n]
}

func (t Text) String() string {
	return string(t.Bytes())
}

// Released reports whether t has no allocation, either because it was
// released or because it is the zero value.
func (t Text) Released() bool { return t.buf == nil }

// Set overwrites t with s. s must fit in the current length; the length then
// becomes len(s).
func (t *Text) Set(s string) error {
	if t.buf == nil {
		return ErrConsumed
	}
	if len(s) > t.n {
		return errors.Wrapf(ErrCapacityExceeded, "set %d bytes into text of length %d", len(s), t.n)
	}
	copy(t.buf, s)
	clear(t.buf[len(s):t.n])
	t.n = len(s)
	return nil
}

// Clear zeroes the content and sets the length to 0. The allocation is kept.
func (t *Text) Clear() {
	clear(t.Bytes())
	t.n = 0
}

func (t *Text) Release() {
	t.buf = nil
	t.n = 0
}

func (t *Text) ToLower() { common.ToLower(t.Bytes()) }
func (t *Text) ToUpper() { common.ToUpper(t.Bytes()) }

func (t Text) Compare(o Text) int { return Compare(t, o) }

func (t Text) CompareN(o Text, n int) int { return CompareN(t, o, n) }

// Compare orders a and b like strcmp: unsigned bytes, stopping at the first
// zero byte.
func Compare(a, b Text) int {
	return common.CompareN(a.Bytes(), b.Bytes(), -1)
}

// CompareN is Compare limited to the first n bytes.
func CompareN(a, b Text, n int) int {
	if n <= 0 {
		return 0
	}
	return common.CompareN(a.Bytes(), b.Bytes(), n)
}

// Split cuts t at every delim into a new Sequence. Delimiters are never
// coalesced, and a trailing delimiter or an empty t yields a final empty
// element.
func Split(t Text, delim byte) (*Sequence, error) {
	seq := NewSequence()
	cur := NewBuffer()
	for _, c := range t.Bytes() {
		if c != delim {
			if err := cur.AppendByte(c); err != nil {
				seq.Release()
				return nil, err
			}
			continue
		}
		if err := seq.appendBuffer(cur); err != nil {
			seq.Release()
			return nil, err
		}
		cur = NewBuffer()
	}
	if err := seq.appendBuffer(cur); err != nil {
		seq.Release()
		return nil, err
	}
	return seq, nil
}
