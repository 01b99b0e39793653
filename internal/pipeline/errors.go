package pipeline

import "errors"

// Sentinel errors for pipeline stages. Each stage wraps its underlying
// failure with the matching sentinel so callers can use errors.Is() to
// map a failed run to an HTTP status or a user-facing message.
var (
	// ErrRetrieval indicates the vector search against the knowledge
	// store failed (database unavailable, embedding failure).
	ErrRetrieval = errors.New("knowledge retrieval failed")

	// ErrNoRelevantKnowledge indicates retrieval succeeded but returned
	// zero chunks, so no query can be synthesized for the question.
	ErrNoRelevantKnowledge = errors.New("no relevant knowledge found")

	// ErrGeneration indicates a model call failed during query or
	// response synthesis (timeout, auth, rate limit).
	ErrGeneration = errors.New("generation failed")

	// ErrExecution indicates the synthesized query could not be
	// executed against the GraphQL endpoint (network error, non-2xx
	// status, malformed response body).
	ErrExecution = errors.New("query execution failed")
)
