package services

import "errors"

// Error taxonomy of the generation pipeline. Extraction errors are fatal to
// the whole job; backend and parse errors are per-chunk and handled by the
// orchestrator.
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrCorruptDocument   = errors.New("document is corrupt or unreadable")

	// Retryable per-chunk backend failures.
	ErrBackendUnavailable = errors.New("model backend unavailable")
	ErrBackendTimeout     = errors.New("model backend timed out")

	// Non-retryable per-chunk failures.
	ErrBackendRejected = errors.New("model backend rejected the request")
	ErrNoCards         = errors.New("no flashcards parsed from model output")

	ErrAllChunksFailed = errors.New("all chunks failed to generate flashcards")
	ErrPersistence     = errors.New("failed to save flashcards")
)

// retryable reports whether the orchestrator should attempt the chunk again.
func retryable(err error) bool {
	return errors.Is(err, ErrBackendUnavailable) || errors.Is(err, ErrBackendTimeout)
}
