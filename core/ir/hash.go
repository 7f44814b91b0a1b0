package ir

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// HashBytes computes the SHA-256 hash of bytes and returns it as a hex string.
func HashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Fingerprint computes a BLAKE3 hash over a canonical encoding of the tree.
// Structurally equal trees have equal fingerprints.
func Fingerprint(root Node) string {
	h := blake3.New()
	var buf []byte
	_ = Walk(root, func(ev Event, n Node, depth int) error {
		buf = buf[:0]
		if ev == LeaveEvent {
			if IsContainer(n) {
				buf = append(buf, ')')
				h.Write(buf)
			}
			return nil
		}
		buf = append(buf, byte('A'+n.Kind()))
		buf = binary.AppendVarint(buf, n.RepeatCount())
		if m, ok := n.(*Media); ok {
			buf = binary.AppendUvarint(buf, uint64(len(m.Locator)))
			buf = append(buf, m.Locator...)
			if d, ok := m.DurationMillis(); ok {
				buf = append(buf, 1)
				buf = binary.AppendUvarint(buf, d)
			} else {
				buf = append(buf, 0)
			}
		} else {
			buf = append(buf, '(')
		}
		h.Write(buf)
		return nil
	})
	return hex.EncodeToString(h.Sum(nil))
}
