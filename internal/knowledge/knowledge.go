// Package knowledge holds the Kusama GraphQL schema knowledge base: the
// static chunk catalog and the pgvector-backed store used for semantic
// retrieval.
//
// Chunks describe types, queries, filters, and usage patterns of the Kusama
// indexer schema. The store embeds each chunk's searchable text once at seed
// time and answers similarity searches with cosine distance.
package knowledge

import (
	"strings"
	"time"
)

// VectorDimension is the embedding dimensionality used for schema chunks.
// Must match the vector(768) column in db/migrations.
const VectorDimension int32 = 768

// EmbedTimeout bounds a single embedding call.
const EmbedTimeout = 15 * time.Second

// Metadata describes a chunk's place in the GraphQL schema.
type Metadata struct {
	// Category groups chunks: type, query, filter, relationship, concept, example.
	Category string `json:"category,omitempty"`

	// GraphQLType names the schema element the chunk documents, e.g.
	// "Account" or "Query.transfers".
	GraphQLType string `json:"graphqlType,omitempty"`

	// RelatedTypes lists schema types the chunk references.
	RelatedTypes []string `json:"relatedTypes,omitempty"`

	// Examples are ready-to-adapt GraphQL snippets.
	Examples []string `json:"examples,omitempty"`

	// Keywords aid retrieval for colloquial phrasings.
	Keywords []string `json:"keywords,omitempty"`
}

// Chunk is one unit of schema knowledge.
type Chunk struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// Retrieved is a chunk returned from a similarity search.
type Retrieved struct {
	Chunk

	// Distance is the cosine distance reported by pgvector (smaller is closer).
	Distance float64 `json:"distance"`

	// Rank is the 1-based position in the similarity ordering.
	Rank int `json:"rank"`
}

// searchableText builds the exact string that gets embedded for a chunk:
// the content, followed by space-joined examples and keywords when present.
// Deterministic and order-preserving.
func searchableText(c Chunk) string {
	var b strings.Builder
	b.WriteString(c.Content)
	if len(c.Metadata.Examples) > 0 {
		b.WriteString(" Examples: ")
		b.WriteString(strings.Join(c.Metadata.Examples, " "))
	}
	if len(c.Metadata.Keywords) > 0 {
		b.WriteString(" Keywords: ")
		b.WriteString(strings.Join(c.Metadata.Keywords, " "))
	}
	return b.String()
}
