package Maps

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned when a map is configured with values it can't honor.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConcurrentChange means the map was structurally modified while it was being iterated, other than through the
	// iterator itself.
	ErrConcurrentChange = errors.New("concurrent change")
)
