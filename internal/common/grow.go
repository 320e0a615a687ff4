package common

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

const (
	// BaseSize is the capacity a fresh or cleared container starts with.
	BaseSize = 10
	// GrowthRate is applied to (cap + delta) whenever a grow reallocates.
	GrowthRate = 1.5
	// MaxAllocBytes bounds a single backing allocation.
	MaxAllocBytes = 1 << 40
)

var (
	ErrAllocation      = errors.New("allocation failed")
	ErrShrinkUnderflow = errors.New("shrink past zero length")
)

// Header is the {data, len, cap} triple a growable container hands to
// Resize. len(Data) is the capacity; Data[Len:] is always zero.
type Header[T any] struct {
	Data []T
	Len  int
}

// New returns a zeroed header with room for capacity elements.
func New[T any](capacity int) (Header[T], error) {
	data, err := alloc[T](capacity)
	if err != nil {
		return Header[T]{}, err
	}
	return Header[T]{Data: data}, nil
}

// Cap reports the number of allocated elements.
func (h *Header[T]) Cap() int { return len(h.Data) }

// Resize grows or shrinks h by delta elements.
//
// A positive delta makes room for at least delta more elements past Len,
// reallocating to (cap+delta)*GrowthRate when Len+delta reaches cap. Len is
// left to the caller. A negative delta drops the last |delta| elements and
// reclaims that much capacity; dropping every element keeps the allocation
// and resets it to BaseSize zeroed elements.
func Resize[T any](h *Header[T], delta int) error {
	switch {
	case delta > 0:
		if h.Cap() > math.MaxInt-delta {
			return errors.Wrapf(ErrAllocation, "capacity %d + %d overflows", h.Cap(), delta)
		}
		if h.Len+delta < h.Cap() {
			return nil
		}
		newCap := float64(h.Cap()+delta) * GrowthRate
		if newCap > MaxAllocBytes {
			return errors.Wrapf(ErrAllocation, "capacity %.0f exceeds limit", newCap)
		}
		return h.realloc(int(newCap), h.Len)
	case delta < 0:
		n := -delta
		if n > h.Len {
			return errors.Wrapf(ErrShrinkUnderflow, "drop %d of %d", n, h.Len)
		}
		if n == h.Len {
			h.reset()
			return nil
		}
		if err := h.realloc(h.Cap()-n, h.Len-n); err != nil {
			return err
		}
		h.Len -= n
	}
	return nil
}

// realloc moves the first keep elements into a fresh zeroed allocation of
// size capacity. h is untouched on failure.
func (h *Header[T]) realloc(capacity, keep int) error {
	data, err := alloc[T](capacity)
	if err != nil {
		return err
	}
	copy(data, h.Data[:keep])
	h.Data = data
	return nil
}

func (h *Header[T]) reset() {
	if h.Cap() >= BaseSize {
		h.Data = h.Data[:BaseSize:BaseSize]
		clear(h.Data)
	} else {
		h.Data = make([]T, BaseSize)
	}
	h.Len = 0
}

func alloc[T any](capacity int) ([]T, error) {
	if capacity < 0 {
		return nil, errors.Wrapf(ErrAllocation, "negative capacity %d", capacity)
	}
	var zero T
	size := uint64(unsafe.Sizeof(zero))
	if size > 0 && uint64(capacity) > MaxAllocBytes/size {
		return nil, errors.Wrapf(ErrAllocation, "%d elements of %d bytes", capacity, size)
	}
	return make([]T, capacity), nil
}
