package crypto

import (
	"errors"
	"fmt"
	"strings"
)

// HashMode selects the digest a ledger hashes its blocks with.
type HashMode int

const (
	SHA256Mode HashMode = iota
	CAHashMode
)

var ErrUnknownHashMode = errors.New("unknown hash mode")

// Modes lists every supported mode in report order.
var Modes = []HashMode{SHA256Mode, CAHashMode}

func (m HashMode) String() string {
	switch m {
	case SHA256Mode:
		return "sha256"
	case CAHashMode:
		return "cahash"
	default:
		return fmt.Sprintf("HashMode(%d)", int(m))
	}
}

// ParseHashMode accepts "sha256", "cahash" and the legacy "ac_hash" spelling.
func ParseHashMode(s string) (HashMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sha256", "sha-256":
		return SHA256Mode, nil
	case "cahash", "ca", "ac_hash", "achash":
		return CAHashMode, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownHashMode, s)
	}
}

// Hash returns the hex digest of data under the mode. The automaton digest
// always runs with CARule and CASteps. It panics on a mode outside Modes.
func (m HashMode) Hash(data []byte) string {
	switch m {
	case SHA256Mode:
		return Sum256Hex(data)
	case CAHashMode:
		return CAHashHex(data, CARule, CASteps)
	default:
		panic(fmt.Sprintf("crypto: %v: %s", ErrUnknownHashMode, m))
	}
}
