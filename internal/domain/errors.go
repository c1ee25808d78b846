package domain

import "errors"

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedLanguage signals a language tag other than ru or en.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrMissingContent signals a record without a localized variant for the requested language.
	ErrMissingContent = errors.New("missing localized content")
	// ErrInvalidRecord signals a record that failed validation while loading the corpus.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrAnswerProviderError signals a chat completion provider failure.
	ErrAnswerProviderError = errors.New("answer provider error")
	// ErrSemanticSearchDisabled signals a semantic search request without a configured embedder.
	ErrSemanticSearchDisabled = errors.New("semantic search disabled")
)
