package lifecycle

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// PlayerID distinguishes playthroughs.
type PlayerID uint64

// UnknownPlayer is the sentinel used when the identity cannot be derived
// from a save name.
const UnknownPlayer PlayerID = math.MaxUint64

// saveNameFields is the number of '_'-separated fields in a host-generated
// save name, e.g. Save3_0A3F1B2C_0_507269736F6E6572_Tamriel_000012_20240101123456_1_1.
const saveNameFields = 9

// ErrMalformedSaveName is returned when a save name is not host-generated.
var ErrMalformedSaveName = errors.New("malformed save name")

func (id PlayerID) String() string {
	if id == UnknownPlayer {
		return "unknown"
	}
	return fmt.Sprintf("%08X", uint64(id))
}

// TrimSaveExtension removes the last ".ess" from a save path.
func TrimSaveExtension(savePath string) string {
	i := strings.LastIndex(savePath, ".ess")
	if i < 0 {
		return savePath
	}
	return savePath[:i] + savePath[i+len(".ess"):]
}

// PlayerIDFromSave parses the hexadecimal player ID in field 1 of a
// host-generated save name. Any other name yields UnknownPlayer and
// ErrMalformedSaveName.
func PlayerIDFromSave(savePath string) (PlayerID, error) {
	name := filepath.Base(filepath.ToSlash(savePath))
	fields := strings.Split(name, "_")
	if len(fields) != saveNameFields {
		return UnknownPlayer, fmt.Errorf("%w: %q has %d fields", ErrMalformedSaveName, name, len(fields))
	}
	v, err := strconv.ParseUint(fields[1], 16, 64)
	if err != nil {
		return UnknownPlayer, fmt.Errorf("%w: %q: %v", ErrMalformedSaveName, name, err)
	}
	return PlayerID(v), nil
}

// LivePlayerID converts the host's live player identifier. Only the low 32
// bits are stable across the host's save/load round trip.
func LivePlayerID(raw uint64) PlayerID {
	return PlayerID(raw & 0xFFFFFFFF)
}
