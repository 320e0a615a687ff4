package textio

import (
	"flag"
	"fmt"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
)

type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"

	DefaultMaxLineLength = 64 * 1024
)

// Config controls how Reader and Writer treat the underlying stream.
type Config struct {
	// MaxLineLength bounds a single line returned by ReadLines, newline
	// included.
	MaxLineLength int         `yaml:"max_line_length"`
	Compression   Compression `yaml:"compression"`

	Logger log.Logger `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		MaxLineLength: DefaultMaxLineLength,
		Compression:   CompressionNone,
		Logger:        log.NewNopLogger(),
	}
}

func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("textio.", f)
}

func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.IntVar(&cfg.MaxLineLength, prefix+"max-line-length", DefaultMaxLineLength, "Longest line, in bytes, accepted when reading line-delimited text.")
	f.StringVar((*string)(&cfg.Compression), prefix+"compression", string(CompressionNone), fmt.Sprintf("Stream compression, one of %q or %q.", CompressionNone, CompressionZstd))
}

func (cfg *Config) Validate() error {
	if cfg.MaxLineLength <= 0 {
		return errors.Errorf("max line length must be positive, got %d", cfg.MaxLineLength)
	}
	switch cfg.Compression {
	case CompressionNone, CompressionZstd, "":
	default:
		return errors.Wrapf(ErrUnknownCompression, "%q", cfg.Compression)
	}
	return nil
}

func (cfg *Config) logger() log.Logger {
	if cfg.Logger == nil {
		return log.NewNopLogger()
	}
	return cfg.Logger
}
