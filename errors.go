package fiesta

import (
	"github.com/pkg/errors"

	"github.com/rawbytedev/fiesta/internal/common"
)

var (
	ErrOutOfRange       = errors.New("index out of range")
	ErrCapacityExceeded = errors.New("text longer than destination")
	ErrConsumed         = errors.New("container consumed or released")
	ErrNegativeLength   = errors.New("negative length")

	// ErrAllocation is returned when a container would need a backing
	// allocation larger than the engine allows. Content is left intact.
	ErrAllocation = common.ErrAllocation
)
