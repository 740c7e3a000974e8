package domain

import "errors"

var (
	// ErrNoDocuments signals an empty ingest batch.
	ErrNoDocuments = errors.New("no documents provided")
	// ErrIndexNotFound signals that the target index does not exist.
	ErrIndexNotFound = errors.New("index not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrVectorStoreError signals a vector store failure.
	ErrVectorStoreError = errors.New("vector store error")
)
