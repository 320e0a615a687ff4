package textio

import "github.com/pkg/errors"

var (
	ErrLineTooLong        = errors.New("line exceeds max line length")
	ErrNotFrame           = errors.New("not a text frame")
	ErrCRCMismatch        = errors.New("crc mismatch")
	ErrTruncated          = errors.New("frame truncated")
	ErrUnknownCompression = errors.New("unknown compression")
)
