// Package api provides the JSON REST API server for Kusari.
//
// # Architecture
//
// The server uses Go 1.22+ routing with a layered middleware stack:
//
//	Recovery → RequestID → Logging → RateLimit → Routes
//
// Health probes (/health, /ready) bypass the middleware stack via a
// top-level mux, ensuring they remain fast and unauthenticated.
//
// # Endpoints
//
// Health probes (no middleware):
//   - GET /health: liveness, always {"status":"ok"}
//   - GET /ready: readiness, 503 until the database answers a ping
//
// Question answering:
//   - POST /answer: run the full pipeline (retrieve schema chunks,
//     generate a GraphQL query, execute it, explain the result)
//
// Pipeline introspection:
//   - POST /search-chunks: vector search only, returns matching chunks
//   - POST /generate-query: retrieval plus query synthesis, no execution
//
// Service info:
//   - GET /: service banner
//   - GET /stats: chunk count, embedding provider, GraphQL endpoint
//
// # Request Format
//
// The three POST endpoints share one body shape:
//
//	{"query": "show recent transfers", "max_chunks": 5}
//
// max_chunks is optional. It defaults to 5 and is capped at 20; an explicit
// non-positive value is rejected with 400.
//
// # Error Handling
//
// Errors use a flat envelope with a machine-readable code:
//
//	{"error": "no_relevant_knowledge", "message": "..."}
//
// Pipeline stages map to statuses: a question matching no schema chunks is
// 404; retrieval, generation, and execution failures are 500. A 200 from the
// GraphQL endpoint whose body carries an errors field is not a failure. The
// payload flows into response synthesis so the model can explain it.
//
// # Rate Limiting
//
// A per-IP token bucket (1 token/sec refill, configurable burst) returns 429
// with Retry-After once exhausted. Behind a reverse proxy, set TrustProxy so
// the client IP is read from X-Real-IP or X-Forwarded-For.
package api
