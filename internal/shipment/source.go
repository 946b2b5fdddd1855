package shipment

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// ErrSourceUnavailable wraps every failure to obtain export text.
var ErrSourceUnavailable = errors.New("shipment source unavailable")

// LoadFile reads the export at path.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s does not exist", ErrSourceUnavailable, path)
		}
		return "", fmt.Errorf("%w: failed to read %s: %v", ErrSourceUnavailable, path, err)
	}

	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("Loaded shipment export")
	return string(data), nil
}
