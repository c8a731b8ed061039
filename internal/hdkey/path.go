package hdkey

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Fantasim/hdkeygen/internal/config"
)

// PathElement is one derivation step. Index is the unhardened 31-bit value;
// the hardened offset is applied by ChildIndex.
type PathElement struct {
	Index    uint32
	Hardened bool
}

// Hardened returns a hardened path element for index.
func Hardened(index uint32) PathElement { return PathElement{Index: index, Hardened: true} }

// Normal returns a non-hardened path element for index.
func Normal(index uint32) PathElement { return PathElement{Index: index} }

// ChildIndex returns the serialized 32-bit child number (index | 0x80000000 when hardened).
func (e PathElement) ChildIndex() uint32 {
	if e.Hardened {
		return e.Index | config.HardenedKeyStart
	}
	return e.Index
}

// Valid reports whether the index fits in 31 bits.
func (e PathElement) Valid() bool {
	return e.Index < config.HardenedKeyStart
}

func (e PathElement) String() string {
	if e.Hardened {
		return strconv.FormatUint(uint64(e.Index), 10) + "'"
	}
	return strconv.FormatUint(uint64(e.Index), 10)
}

// Path is an ordered sequence of derivation steps from the master node.
type Path []PathElement

// String renders the path in BIP-32 notation, e.g. m/44'/0'/0'/0/0.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, e := range p {
		b.WriteByte('/')
		b.WriteString(e.String())
	}
	return b.String()
}

// BIP44 returns m/purpose'/coinType'/account'/change/index.
func BIP44(purpose, coinType, account, change, index uint32) Path {
	return Path{
		Hardened(purpose),
		Hardened(coinType),
		Hardened(account),
		Normal(change),
		Normal(index),
	}
}

// ParsePath parses BIP-32 notation. Hardened steps may be marked with ', h or H.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, fmt.Errorf("%w: %q must start with \"m\"", config.ErrInvalidPath, s)
	}

	path := make(Path, 0, len(parts)-1)
	for i, part := range parts[1:] {
		hardened := false
		if n := len(part); n > 0 && (part[n-1] == '\'' || part[n-1] == 'h' || part[n-1] == 'H') {
			hardened = true
			part = part[:n-1]
		}

		idx, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q level %d: %v", config.ErrInvalidPath, s, i+1, err)
		}

		e := PathElement{Index: uint32(idx), Hardened: hardened}
		if !e.Valid() {
			return nil, fmt.Errorf("%w: %q level %d: index %d exceeds 2^31-1", config.ErrInvalidPath, s, i+1, idx)
		}
		path = append(path, e)
	}

	return path, nil
}
