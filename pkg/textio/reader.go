package textio

import (
	"bufio"
	"bytes"
	"io"
	"math"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/rawbytedev/fiesta"
)

// ReadText reads exactly n bytes from r into a new Text. On a short read the
// Text holds what was read and the error is io.EOF or io.ErrUnexpectedEOF.
func ReadText(r io.Reader, n int64) (fiesta.Text, error) {
	if n > math.MaxInt-1 {
		return fiesta.Text{}, errors.Wrapf(fiesta.ErrAllocation, "read of %d bytes", n)
	}
	t, err := fiesta.NewText(int(n))
	if err != nil {
		return fiesta.Text{}, err
	}
	got, err := io.ReadFull(r, t.Bytes())
	switch {
	case err == nil:
		return t, nil
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		short := fiesta.TextFromBytes(t.Bytes()[:got])
		t.Release()
		return short, err
	default:
		t.Release()
		return fiesta.Text{}, errors.Wrap(err, "read text")
	}
}

// Reader reads fiesta containers from a stream, decompressing it first when
// configured to.
type Reader struct {
	cfg    Config
	src    io.Reader
	zr     *zstd.Decoder
	logger log.Logger
}

func NewReader(r io.Reader, cfg Config) (*Reader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rd := &Reader{cfg: cfg, src: r, logger: cfg.logger()}
	if cfg.Compression == CompressionZstd {
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, errors.Wrap(err, "create zstd reader")
		}
		rd.zr = zr
		rd.src = zr
	}
	return rd, nil
}

func (r *Reader) ReadText(n int64) (fiesta.Text, error) {
	return ReadText(r.src, n)
}

// ReadLines reads until EOF and returns one element per line with the
// trailing '\n' removed. A final line without a newline is kept; empty input
// yields an empty Sequence.
func (r *Reader) ReadLines() (*fiesta.Sequence, error) {
	sc := bufio.NewScanner(r.src)
	sc.Buffer(make([]byte, 0, min(4096, r.cfg.MaxLineLength)), r.cfg.MaxLineLength)
	sc.Split(scanLines)

	lines := fiesta.NewSequence()
	for sc.Scan() {
		if err := lines.Append(fiesta.TextFromBytes(sc.Bytes())); err != nil {
			lines.Release()
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		lines.Release()
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, errors.Wrapf(ErrLineTooLong, "limit %d", r.cfg.MaxLineLength)
		}
		return nil, errors.Wrap(err, "read lines")
	}
	level.Debug(r.logger).Log("msg", "read lines", "lines", lines.Len())
	return lines, nil
}

// ReadFrame reads the rest of the stream as a single frame.
func (r *Reader) ReadFrame() (*fiesta.Sequence, error) {
	data, err := io.ReadAll(r.src)
	if err != nil {
		return nil, errors.Wrap(err, "read frame")
	}
	seq, err := DecodeFrame(data)
	if err != nil {
		if errors.Is(err, ErrCRCMismatch) {
			level.Warn(r.logger).Log("msg", "discarding corrupt frame", "bytes", len(data), "err", err)
		}
		return nil, err
	}
	level.Debug(r.logger).Log("msg", "decoded frame", "bytes", len(data), "elements", seq.Len())
	return seq, nil
}

// Close releases the decompressor. The underlying reader is not closed.
func (r *Reader) Close() {
	if r.zr != nil {
		r.zr.Close()
	}
}

// scanLines is bufio.ScanLines without the '\r' stripping.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
