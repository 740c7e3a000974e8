package bootstrap

import "context"

// IndexAdmin checks for and creates the target index.
type IndexAdmin interface {
	// Fetch returns domain.ErrIndexNotFound when the index is missing,
	// or another error on store failure.
	Fetch(ctx context.Context) error
	Create(ctx context.Context) error
}
