package domain

import "errors"

var (
	// ErrInvalidRequest signals a malformed or incomplete request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrClassification signals an intent classification failure.
	ErrClassification = errors.New("intent classification failed")
	// ErrExtraction signals a filter extraction failure.
	ErrExtraction = errors.New("filter extraction failed")
	// ErrRetrieval signals a similarity search failure.
	ErrRetrieval = errors.New("similarity retrieval failed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrNLPProviderError signals a classification/extraction provider failure.
	ErrNLPProviderError = errors.New("nlp provider error")
	// ErrProfileNotFound signals a missing profile.
	ErrProfileNotFound = errors.New("profile not found")
)
