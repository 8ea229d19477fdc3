package session

import "context"

// Repo is the key-value persistence behind a Store. Keys are the fixed names
// declared in this package; values are opaque strings.
type Repo interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Clear removes every key
	Clear(ctx context.Context) error
}
