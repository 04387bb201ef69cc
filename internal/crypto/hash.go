package crypto

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

const HashSize = 32

type Hash [HashSize]byte

func HashData(data []byte) Hash {
	hash := blake2b.Sum256(data)
	return hash
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

// DeriveID derives a practically-unique entity identifier from a random
// seed, the calling account and a strictly increasing nonce. The domain tag
// separates the ID space from any other use of the hash function.
func DeriveID(domain string, seed Hash, caller [32]byte, nonce uint64) Hash {
	buf := make([]byte, 0, len(domain)+HashSize+32+8)
	buf = append(buf, domain...)
	buf = append(buf, seed[:]...)
	buf = append(buf, caller[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, nonce)
	return HashData(buf)
}
