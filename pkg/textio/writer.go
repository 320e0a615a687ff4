package textio

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/rawbytedev/fiesta"
)

// WriteText writes the content of t, without its terminator, to w.
func WriteText(w io.Writer, t fiesta.Text) (int, error) {
	n, err := w.Write(t.Bytes())
	if err != nil {
		return n, errors.Wrap(err, "write text")
	}
	return n, nil
}

// Writer writes fiesta containers to a stream, compressing it when
// configured to. Close must be called to flush compressed output.
type Writer struct {
	dst    io.Writer
	zw     *zstd.Encoder
	logger log.Logger
}

func NewWriter(w io.Writer, cfg Config) (*Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	wr := &Writer{dst: w, logger: cfg.logger()}
	if cfg.Compression == CompressionZstd {
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, errors.Wrap(err, "create zstd writer")
		}
		wr.zw = zw
		wr.dst = zw
	}
	return wr, nil
}

func (w *Writer) WriteText(t fiesta.Text) (int, error) {
	return WriteText(w.dst, t)
}

// WriteLines writes every element of seq followed by '\n'. seq is not
// consumed.
func (w *Writer) WriteLines(seq *fiesta.Sequence) (int, error) {
	total := 0
	for _, t := range seq.All() {
		n, err := WriteText(w.dst, t)
		total += n
		if err != nil {
			return total, err
		}
		n, err = w.dst.Write([]byte{'\n'})
		total += n
		if err != nil {
			return total, errors.Wrap(err, "write newline")
		}
	}
	level.Debug(w.logger).Log("msg", "wrote lines", "lines", seq.Len(), "bytes", total)
	return total, nil
}

func (w *Writer) WriteFrame(seq *fiesta.Sequence) (int, error) {
	frame := EncodeFrame(seq)
	n, err := w.dst.Write(frame)
	if err != nil {
		return n, errors.Wrap(err, "write frame")
	}
	level.Debug(w.logger).Log("msg", "wrote frame", "bytes", n, "elements", seq.Len())
	return n, nil
}

// Close flushes the compressor. The underlying writer is not closed.
func (w *Writer) Close() error {
	if w.zw == nil {
		return nil
	}
	return errors.Wrap(w.zw.Close(), "close zstd writer")
}
