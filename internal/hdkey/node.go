// Package hdkey implements BIP-32 hierarchical deterministic derivation for
// secp256k1 keys. Hardened and non-hardened steps may be mixed.
package hdkey

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/Fantasim/hdkeygen/internal/config"
)

// Node is a private BIP-32 node: a secp256k1 scalar plus chain code.
type Node struct {
	key       btcec.ModNScalar
	chainCode [32]byte
	depth     uint8
}

// NewMaster derives the master node: HMAC-SHA512(key="Bitcoin seed", data=seed).
func NewMaster(seed []byte) (*Node, error) {
	if len(seed) < config.MinSeedBytes || len(seed) > config.MaxSeedBytes {
		return nil, fmt.Errorf("%w: got %d bytes, want %d-%d",
			config.ErrInvalidSeedLength, len(seed), config.MinSeedBytes, config.MaxSeedBytes)
	}

	mac := hmac.New(sha512.New, []byte(config.BIP32SeedKey))
	mac.Write(seed)
	I := mac.Sum(nil)
	defer clear(I)

	var node Node
	if overflow := node.key.SetByteSlice(I[:32]); overflow || node.key.IsZero() {
		return nil, fmt.Errorf("%w: master key is zero or >= curve order", config.ErrDerivation)
	}
	copy(node.chainCode[:], I[32:])

	slog.Debug("master key derived", "curve", "secp256k1")
	return &node, nil
}

// DeriveChild derives the child at index, hardened or not.
func (n *Node) DeriveChild(index uint32, hardened bool) (*Node, error) {
	return n.Child(PathElement{Index: index, Hardened: hardened})
}

// Child derives one step. Hardened: HMAC(c, 0x00||k||ser32(i')). Normal:
// HMAC(c, serP(K)||ser32(i)). The left half is added to k mod n.
func (n *Node) Child(e PathElement) (*Node, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: child index %d exceeds 2^31-1", config.ErrInvalidPath, e.Index)
	}

	data := make([]byte, 0, 37) // 33 + 4
	if e.Hardened {
		k := n.key.Bytes()
		data = append(data, 0x00)
		data = append(data, k[:]...)
		clear(k[:])
	} else {
		data = append(data, n.PublicKey()...)
	}
	data = binary.BigEndian.AppendUint32(data, e.ChildIndex())
	defer clear(data)

	mac := hmac.New(sha512.New, n.chainCode[:])
	mac.Write(data)
	I := mac.Sum(nil)
	defer clear(I)

	child, err := n.childFromHMAC(I)
	if err != nil {
		return nil, fmt.Errorf("derive child %s: %w", e, err)
	}
	return child, nil
}

// childFromHMAC applies the BIP-32 validity rules to I = IL||IR.
func (n *Node) childFromHMAC(I []byte) (*Node, error) {
	var il btcec.ModNScalar
	if overflow := il.SetByteSlice(I[:32]); overflow {
		il.Zero()
		return nil, fmt.Errorf("%w: IL >= curve order", config.ErrDerivation)
	}

	child := &Node{key: n.key, depth: n.depth + 1}
	child.key.Add(&il)
	il.Zero()
	if child.key.IsZero() {
		return nil, fmt.Errorf("%w: child key is zero", config.ErrDerivation)
	}
	copy(child.chainCode[:], I[32:])
	return child, nil
}

// DerivePath walks path from this node. Intermediate nodes are zeroed.
func (n *Node) DerivePath(path Path) (*Node, error) {
	current := n
	for _, e := range path {
		next, err := current.Child(e)
		if current != n {
			current.Zero()
		}
		if err != nil {
			return nil, err
		}
		current = next
	}
	if current == n {
		return n.clone(), nil
	}

	slog.Debug("derived secp256k1 node", "path", path.String())
	return current, nil
}

func (n *Node) clone() *Node {
	c := *n
	return &c
}

// PrivateKeyBytes returns a copy of the 32-byte big-endian private key.
func (n *Node) PrivateKeyBytes() []byte {
	k := n.key.Bytes()
	out := make([]byte, 32)
	copy(out, k[:])
	clear(k[:])
	return out
}

// PrivKey returns the node's key as a btcec private key. The caller should Zero it after use.
func (n *Node) PrivKey() *btcec.PrivateKey {
	k := n.key.Bytes()
	defer clear(k[:])
	priv, _ := btcec.PrivKeyFromBytes(k[:])
	return priv
}

// PublicKey returns the 33-byte compressed public key serP(K).
func (n *Node) PublicKey() []byte {
	priv := n.PrivKey()
	defer priv.Zero()
	return priv.PubKey().SerializeCompressed()
}

// ChainCode returns a copy of the chain code.
func (n *Node) ChainCode() []byte {
	out := make([]byte, 32)
	copy(out, n.chainCode[:])
	return out
}

// Depth returns the derivation depth (0 for master).
func (n *Node) Depth() uint8 {
	return n.depth
}

// Zero clears the key material.
func (n *Node) Zero() {
	n.key.Zero()
	clear(n.chainCode[:])
}
