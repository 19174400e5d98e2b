package ports

import "context"

// DocumentStore persists named JSON documents. The catalog store treats the
// documents as a write-through mirror of its in-memory state.
type DocumentStore interface {
	// Load returns the raw contents of a named document.
	Load(ctx context.Context, name string) ([]byte, error)
	// Save replaces the contents of a named document.
	Save(ctx context.Context, name string, data []byte) error
}

// TokenIssuer mints session tokens for registered users.
type TokenIssuer interface {
	Issue(userName string) (string, error)
}
