// Package slip10 implements SLIP-0010 derivation for Ed25519. Only hardened
// derivation is defined for this curve, so every step is hardened.
package slip10

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Fantasim/hdkeygen/internal/config"
)

// Node holds a SLIP-10 ed25519 node (32-byte private seed + chain code).
type Node struct {
	key       [32]byte
	chainCode [32]byte
}

// Path is a sequence of account-style indices, each applied hardened.
type Path []uint32

// String renders the path with every level hardened, e.g. m/44'/501'/0'/0'.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range p {
		b.WriteByte('/')
		b.WriteString(strconv.FormatUint(uint64(idx), 10))
		b.WriteByte('\'')
	}
	return b.String()
}

// NewMaster derives the master node: HMAC-SHA512(key="ed25519 seed", data=seed).
func NewMaster(seed []byte) (*Node, error) {
	if len(seed) < config.MinSeedBytes || len(seed) > config.MaxSeedBytes {
		return nil, fmt.Errorf("%w: got %d bytes, want %d-%d",
			config.ErrInvalidSeedLength, len(seed), config.MinSeedBytes, config.MaxSeedBytes)
	}

	mac := hmac.New(sha512.New, []byte(config.SLIP10SeedKey))
	mac.Write(seed)
	return nodeFromHMAC(mac.Sum(nil)), nil
}

// DeriveHardened derives child index' :
// HMAC-SHA512(c, 0x00 || key || ser32(index | 0x80000000)).
func (n *Node) DeriveHardened(index uint32) (*Node, error) {
	if index >= config.HardenedKeyStart {
		return nil, fmt.Errorf("%w: index %d exceeds 2^31-1", config.ErrInvalidPath, index)
	}

	data := make([]byte, 0, 37) // 1 + 32 + 4
	data = append(data, 0x00)
	data = append(data, n.key[:]...)
	data = binary.BigEndian.AppendUint32(data, index|config.HardenedKeyStart)
	defer clear(data)

	mac := hmac.New(sha512.New, n.chainCode[:])
	mac.Write(data)
	return nodeFromHMAC(mac.Sum(nil)), nil
}

// DerivePath applies DeriveHardened for each index. Intermediate nodes are zeroed.
func (n *Node) DerivePath(path Path) (*Node, error) {
	current := n.clone()
	for _, idx := range path {
		next, err := current.DeriveHardened(idx)
		current.Zero()
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", path, err)
		}
		current = next
	}

	slog.Debug("derived ed25519 node", "path", path.String())
	return current, nil
}

func nodeFromHMAC(I []byte) *Node {
	var node Node
	copy(node.key[:], I[:32])
	copy(node.chainCode[:], I[32:])
	clear(I)
	return &node
}

func (n *Node) clone() *Node {
	c := *n
	return &c
}

// Key returns a copy of the 32-byte private key seed.
func (n *Node) Key() []byte {
	out := make([]byte, 32)
	copy(out, n.key[:])
	return out
}

// ChainCode returns a copy of the chain code.
func (n *Node) ChainCode() []byte {
	out := make([]byte, 32)
	copy(out, n.chainCode[:])
	return out
}

// PrivateKey expands the node key into a 64-byte ed25519 private key (seed || public key).
// The caller must clear it after use.
func (n *Node) PrivateKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(n.key[:])
}

// Zero clears the key material.
func (n *Node) Zero() {
	clear(n.key[:])
	clear(n.chainCode[:])
}
