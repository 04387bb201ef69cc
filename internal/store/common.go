package store

// Prefix constants for all store keyspaces
const (
	prefixEvent byte = iota + 1
	prefixSnapshot
)

// makeKey creates a key from a prefix and a suffix
func makeKey(prefix byte, suffix []byte) []byte {
	key := make([]byte, 1+len(suffix))
	key[0] = prefix
	copy(key[1:], suffix)
	return key
}
