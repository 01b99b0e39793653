package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/genai"
)

// querier is the common interface satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// chunkCols is the standard SELECT column list for scanRetrieved.
const chunkCols = `id, content, category, graphql_type, related_types, examples, keywords`

const insertChunkSQL = `INSERT INTO schema_chunks (id, content, category, graphql_type, related_types, examples, keywords, embedding)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// seedLockKey names the advisory lock that serializes seeding across
// processes. hashtext() maps it to a stable bigint key.
const seedLockKey = "kusari_schema_chunks"

// Store manages the schema knowledge base backed by PostgreSQL + pgvector.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	pool     *pgxpool.Pool
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewStore creates a knowledge Store.
func NewStore(pool *pgxpool.Pool, embedder ai.Embedder, logger *slog.Logger) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, embedder: embedder, logger: logger}, nil
}

// embed generates a vector embedding for the given text.
func (s *Store) embed(ctx context.Context, text string) (pgvector.Vector, error) {
	dim := VectorDimension
	resp, err := s.embedder.Embed(ctx, &ai.EmbedRequest{
		Input:   []*ai.Document{ai.DocumentFromText(text, nil)},
		Options: &genai.EmbedContentConfig{OutputDimensionality: &dim},
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("embedding text: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Embedding) == 0 {
		return pgvector.Vector{}, fmt.Errorf("empty embedding response")
	}
	if got := len(resp.Embeddings[0].Embedding); got != int(VectorDimension) {
		return pgvector.Vector{}, fmt.Errorf("embedding dimension %d, want %d", got, VectorDimension)
	}
	return pgvector.NewVector(resp.Embeddings[0].Embedding), nil
}

// SeedOnce populates the schema_chunks table from the catalog if it is empty.
// Idempotent at the collection level: when any rows exist nothing is embedded
// and nothing is written.
//
// The count check and the inserts run in one transaction holding an advisory
// lock, so concurrent startups cannot double-seed. A partial failure aborts
// the transaction and the next call re-seeds from zero.
//
// NOTE: The embedding calls happen inside the transaction. Seeding is a
// one-shot startup path behind a per-deployment lock, not a hot path, so
// holding the connection through the embed calls keeps the count check and
// the inserts atomic.
func (s *Store) SeedOnce(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.logger.Debug("seed transaction rollback", "error", rbErr)
		}
	}()

	// pg_advisory_xact_lock releases automatically at commit/rollback.
	if _, lockErr := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, seedLockKey); lockErr != nil {
		return fmt.Errorf("acquiring seed lock: %w", lockErr)
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM schema_chunks`).Scan(&count); err != nil {
		return fmt.Errorf("counting schema chunks: %w", err)
	}
	if count > 0 {
		s.logger.Debug("schema chunks already seeded", "count", count)
		return nil
	}

	inserted, err := s.insertCatalog(ctx, tx)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	s.logger.Info("seeded schema chunks", "count", inserted)
	return nil
}

// Reseed drops all rows and re-embeds the full catalog. Used by the seed
// command when the catalog or the embedder model changed.
func (s *Store) Reseed(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning reseed transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.logger.Debug("reseed transaction rollback", "error", rbErr)
		}
	}()

	if _, lockErr := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, seedLockKey); lockErr != nil {
		return fmt.Errorf("acquiring seed lock: %w", lockErr)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM schema_chunks`); err != nil {
		return fmt.Errorf("clearing schema chunks: %w", err)
	}

	inserted, err := s.insertCatalog(ctx, tx)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing reseed transaction: %w", err)
	}

	s.logger.Info("reseeded schema chunks", "count", inserted)
	return nil
}

// insertCatalog embeds and inserts every catalog chunk using the provided
// querier (pool or tx). Returns the number of chunks inserted.
func (s *Store) insertCatalog(ctx context.Context, q querier) (int, error) {
	chunks := Catalog()
	for _, c := range chunks {
		embedCtx, cancel := context.WithTimeout(ctx, EmbedTimeout)
		vec, err := s.embed(embedCtx, searchableText(c))
		cancel()
		if err != nil {
			return 0, fmt.Errorf("embedding chunk %s: %w", c.ID, err)
		}

		if _, err := q.Exec(ctx, insertChunkSQL,
			c.ID, c.Content, c.Metadata.Category, c.Metadata.GraphQLType,
			c.Metadata.RelatedTypes, c.Metadata.Examples, c.Metadata.Keywords, vec,
		); err != nil {
			return 0, fmt.Errorf("inserting chunk %s: %w", c.ID, err)
		}
	}
	return len(chunks), nil
}

// Search finds the chunks most similar to the query text.
// Returns up to k results ordered by ascending cosine distance, each carrying
// its distance and 1-based rank.
func (s *Store) Search(ctx context.Context, query string, k int) ([]Retrieved, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query text is required")
	}
	if k <= 0 {
		return nil, fmt.Errorf("chunk count must be positive, got %d", k)
	}

	embedCtx, cancel := context.WithTimeout(ctx, EmbedTimeout)
	defer cancel()

	vec, err := s.embed(embedCtx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+chunkCols+`, embedding <=> $1 AS distance
		 FROM schema_chunks
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		vec, k,
	)
	if err != nil {
		return nil, fmt.Errorf("searching schema chunks: %w", err)
	}
	defer rows.Close()

	return scanRetrieved(rows)
}

// Count returns the number of stored schema chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_chunks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting schema chunks: %w", err)
	}
	return count, nil
}

// scanRetrieved reads Retrieved chunks from pgx.Rows (chunkCols + distance),
// assigning 1-based ranks in row order.
func scanRetrieved(rows pgx.Rows) ([]Retrieved, error) {
	var results []Retrieved
	for rows.Next() {
		var r Retrieved
		if err := rows.Scan(
			&r.ID, &r.Content, &r.Metadata.Category, &r.Metadata.GraphQLType,
			&r.Metadata.RelatedTypes, &r.Metadata.Examples, &r.Metadata.Keywords,
			&r.Distance,
		); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		r.Rank = len(results) + 1
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return results, nil
}
