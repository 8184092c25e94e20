package romanize

import "errors"

var (
	// ErrTokenizerUnavailable means the morphological analyzer could
	// not be initialized. Fatal, not retried.
	ErrTokenizerUnavailable = errors.New("tokenizer unavailable")

	// ErrNoRomanizer means neither the local pipeline nor an AI
	// provider is configured. Surfaced to the caller as a
	// configuration error.
	ErrNoRomanizer = errors.New("no romanization method available")
)
