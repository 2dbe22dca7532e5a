package service

// CodeHasher defines the interface for hashing verification codes.
// The plaintext code leaves the process only through the notifier; the
// store keeps the hash.
type CodeHasher interface {
	// HashCode generates a hash from a plaintext code.
	HashCode(code string) (string, error)

	// CheckCode compares a plaintext code with a hash.
	CheckCode(code, hash string) error
}
