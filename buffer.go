package fiesta

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/rawbytedev/fiesta/internal/common"
)

// Buffer is a growable byte string. Data[Len] is always a zero terminator,
// so the capacity is strictly greater than the length. The zero value is
// ready to use.
//
// Text consumes the Buffer; any later mutation returns ErrConsumed.
type Buffer struct {
	h        common.Header[byte]
	consumed bool
}

func NewBuffer() *Buffer {
	return &Buffer{h: common.Header[byte]{Data: make([]byte, common.BaseSize)}}
}

// BufferFrom copies s into a new Buffer with room for half as much again.
func BufferFrom(s string) *Buffer {
	capacity := int(float64(max(len(s), common.BaseSize)) * common.GrowthRate)
	b := &Buffer{h: common.Header[byte]{Data: make([]byte, capacity), Len: len(s)}}
	copy(b.h.Data, s)
	return b
}

func (b *Buffer) ready() error {
	if b.consumed {
		return ErrConsumed
	}
	if b.h.Data == nil {
		b.h.Data = make([]byte, common.BaseSize)
	}
	return nil
}

// reserve extends the length by n and returns the new region for the
// caller to fill.
func (b *Buffer) reserve(n int) ([]byte, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	if err := common.Resize(&b.h, n); err != nil {
		return nil, err
	}
	dst := b.h.Data[b.h.Len : b.h.Len+n]
	b.h.Len += n
	b.h.Data[b.h.Len] = 0
	return dst, nil
}

func (b *Buffer) Append(s string) error {
	dst, err := b.reserve(len(s))
	if err != nil {
		return err
	}
	copy(dst, s)
	return nil
}

func (b *Buffer) AppendBytes(p []byte) error {
	dst, err := b.reserve(len(p))
	if err != nil {
		return err
	}
	copy(dst, p)
	return nil
}

func (b *Buffer) AppendByte(c byte) error {
	dst, err := b.reserve(1)
	if err != nil {
		return err
	}
	dst[0] = c
	return nil
}

func (b *Buffer) AppendText(t Text) error {
	return b.AppendBytes(t.Bytes())
}

// Appendf formats according to format and appends the result.
func (b *Buffer) Appendf(format string, args ...any) error {
	_, err := fmt.Fprintf(b, format, args...)
	return err
}

func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.AppendBytes(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (b *Buffer) WriteString(s string) (int, error) {
	if err := b.Append(s); err != nil {
		return 0, err
	}
	return len(s), nil
}

func (b *Buffer) WriteByte(c byte) error {
	return b.AppendByte(c)
}

// Remove cuts the half-open range [start, end) out of b. Capacity is not
// reclaimed.
func (b *Buffer) Remove(start, end int) error {
	if b.consumed {
		return ErrConsumed
	}
	if start < 0 || end > b.h.Len || start > end {
		return errors.Wrapf(ErrOutOfRange, "remove [%d, %d) from length %d", start, end, b.h.Len)
	}
	copy(b.h.Data[start:], b.h.Data[end:b.h.Len])
	n := b.h.Len - (end - start)
	clear(b.h.Data[n:b.h.Len])
	b.h.Len = n
	return nil
}

// Clear drops the content and resets the capacity to the base size without
// giving up the allocation.
func (b *Buffer) Clear() error {
	if err := b.ready(); err != nil {
		return err
	}
	if b.h.Len == 0 {
		clear(b.h.Data)
		return nil
	}
	return common.Resize(&b.h, -b.h.Len)
}

// Text consumes b and returns its content as a Text. b must not be used
// afterwards.
func (b *Buffer) Text() (Text, error) {
	if b.consumed {
		return Text{}, ErrConsumed
	}
	t := TextFromBytes(b.Bytes())
	b.Release()
	return t, nil
}

func (b *Buffer) Release() {
	b.h = common.Header[byte]{}
	b.consumed = true
}

func (b *Buffer) Len() int { return b.h.Len }
func (b *Buffer) Cap() int { return b.h.Cap() }

// Bytes returns the content. The slice aliases b and is invalidated by the
// next mutation.
func (b *Buffer) Bytes() []byte {
	if b.h.Data == nil {
		return nil
	}
	return b.h.Data[:b.h.Len]
}

func (b *Buffer) String() string {
	return string(b.Bytes())
}

func (b *Buffer) Compare(o *Buffer) int {
	return common.CompareN(b.Bytes(), o.Bytes(), -1)
}

func (b *Buffer) CompareN(o *Buffer, n int) int {
	if n <= 0 {
		return 0
	}
	return common.CompareN(b.Bytes(), o.Bytes(), n)
}

func (b *Buffer) ToLower() { common.ToLower(b.Bytes()) }
func (b *Buffer) ToUpper() { common.ToUpper(b.Bytes()) }
