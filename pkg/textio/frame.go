package textio

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/pkg/errors"

	"github.com/rawbytedev/fiesta"
	"github.com/rawbytedev/fiesta/internal/common"
)

// Frame layout:
//
//	magic "FS" | varint count | count x (varint len | bytes) | crc32
//
// The CRC-32 (IEEE, little-endian) covers everything between the magic and
// the checksum.
const (
	frameMagic = "FS"
	crcSize    = 4
)

// EncodeFrame serializes seq without consuming it.
func EncodeFrame(seq *fiesta.Sequence) []byte {
	size := len(frameMagic) + binary.MaxVarintLen64 + crcSize
	for _, t := range seq.All() {
		size += binary.MaxVarintLen64 + t.Len()
	}
	out := make([]byte, 0, size)
	out = append(out, frameMagic...)
	out = common.WriteVarUintTo(out, uint64(seq.Len()))
	for _, t := range seq.All() {
		out = common.WriteVarUintTo(out, uint64(t.Len()))
		out = append(out, t.Bytes()...)
	}
	crc := crc32.ChecksumIEEE(out[len(frameMagic):])
	return binary.LittleEndian.AppendUint32(out, crc)
}

// DecodeFrame parses a frame produced by EncodeFrame into a new Sequence.
func DecodeFrame(data []byte) (*fiesta.Sequence, error) {
	if len(data) < len(frameMagic)+1+crcSize {
		return nil, errors.Wrapf(ErrTruncated, "%d bytes", len(data))
	}
	if string(data[:len(frameMagic)]) != frameMagic {
		return nil, ErrNotFrame
	}
	body := data[len(frameMagic) : len(data)-crcSize]
	want := binary.LittleEndian.Uint32(data[len(data)-crcSize:])
	if got := crc32.ChecksumIEEE(body); got != want {
		return nil, errors.Wrapf(ErrCRCMismatch, "got %08x want %08x", got, want)
	}

	count, pos := common.ReadVarUint(body)
	if pos == 0 {
		return nil, errors.Wrap(ErrTruncated, "element count")
	}
	// every element carries at least a one byte length
	if count > uint64(len(body)-pos) {
		return nil, errors.Wrapf(ErrTruncated, "%d elements in %d bytes", count, len(body)-pos)
	}
	seq := fiesta.NewSequence()
	for i := uint64(0); i < count; i++ {
		l, n := common.ReadVarUint(body[pos:])
		if n == 0 {
			seq.Release()
			return nil, errors.Wrapf(ErrTruncated, "length of element %d", i)
		}
		pos += n
		if l > uint64(len(body)-pos) {
			seq.Release()
			return nil, errors.Wrapf(ErrTruncated, "element %d wants %d bytes, %d left", i, l, len(body)-pos)
		}
		if err := seq.Append(fiesta.TextFromBytes(body[pos : pos+int(l)])); err != nil {
			seq.Release()
			return nil, err
		}
		pos += int(l)
	}
	if pos != len(body) {
		seq.Release()
		return nil, errors.Wrapf(ErrNotFrame, "%d trailing bytes", len(body)-pos)
	}
	return seq, nil
}
