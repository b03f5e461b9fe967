package staging

import (
	"fmt"
	"os"

	"github.com/lucass-carneiro/surge-stage/internal/stageerr"
)

// IsStale reports whether destination's modification time differs from
// source's. A destination newer than its source is stale too.
func IsStale(source, destination string) (bool, error) {
	dst, err := os.Stat(destination)
	if err != nil {
		if os.IsNotExist(err) {
			return false, stageerr.New("compare", stageerr.ErrDestinationMissing, destination)
		}
		return false, fmt.Errorf("stat %s: %w", destination, err)
	}

	src, err := os.Stat(source)
	if err != nil {
		return false, fmt.Errorf("stat source %s: %w", source, err)
	}

	return !src.ModTime().Equal(dst.ModTime()), nil
}
