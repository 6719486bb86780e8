// Package pgvector stores chunk embeddings in PostgreSQL using the pgvector extension.
package pgvector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	_ "github.com/lib/pq"
	pgv "github.com/pgvector/pgvector-go"

	"ragchat/internal/domain"
)

var tableNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type Config struct {
	URL   string
	Table string
}

// Storage keeps one table per run: Init drops and recreates it.
type Storage struct {
	db        *sql.DB
	table     string
	dimension int
	count     int
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Storage, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	db.SetMaxOpenConns(5)
	s, err := New(db, cfg.Table)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing connection. table must be a plain lower-case identifier.
func New(db *sql.DB, table string) (*Storage, error) {
	if table == "" {
		table = "ragchat_chunks"
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Storage{db: db, table: table}, nil
}

func (s *Storage) Close() error { return s.db.Close() }

func (s *Storage) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension
	if _, err := s.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("create vector extension failed: %w", err)
	}
	if err := s.Clear(ctx); err != nil {
		return err
	}
	create := fmt.Sprintf(`CREATE TABLE %s (
		chunk_id    text PRIMARY KEY,
		document_id text NOT NULL,
		chunk_index integer NOT NULL,
		chunk_offset integer NOT NULL,
		chunk_text  text NOT NULL,
		embedding   vector(%d) NOT NULL
	)`, s.table, dimension)
	if _, err := s.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create table %s failed: %w", s.table, err)
	}
	return nil
}

func (s *Storage) Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction failed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (chunk_id, document_id, chunk_index, chunk_offset, chunk_text, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (chunk_id) DO UPDATE SET chunk_text = EXCLUDED.chunk_text, embedding = EXCLUDED.embedding
	`, s.table))
	if err != nil {
		return fmt.Errorf("prepare statement failed: %w", err)
	}
	defer stmt.Close()

	for i, ch := range chunks {
		if len(vectors[i]) != s.dimension {
			return fmt.Errorf("%w: chunk %d has %d, want %d", domain.ErrDimensionMismatch, i, len(vectors[i]), s.dimension)
		}
		if _, err := stmt.ExecContext(ctx, ch.ChunkID, ch.DocumentID, ch.Index, ch.Offset, ch.Text, pgv.NewVector(vectors[i])); err != nil {
			return fmt.Errorf("chunk insert failed: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	s.count += len(chunks)
	return nil
}

// Search orders by cosine distance; the score is 1 - distance.
func (s *Storage) Search(ctx context.Context, vector []float32, topK int) ([]domain.SearchResult, error) {
	if s.count == 0 {
		return nil, domain.ErrIndexEmpty
	}
	if topK <= 0 {
		return []domain.SearchResult{}, nil
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT chunk_id, document_id, chunk_index, chunk_offset, chunk_text,
		       1 - (embedding <=> $1) AS similarity
		FROM %s
		ORDER BY embedding <=> $1, chunk_index
		LIMIT $2
	`, s.table), pgv.NewVector(vector), topK)
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var r domain.SearchResult
		if err := rows.Scan(&r.Chunk.ChunkID, &r.Chunk.DocumentID, &r.Chunk.Index, &r.Chunk.Offset, &r.Chunk.Text, &r.Score); err != nil {
			return nil, fmt.Errorf("scan row failed: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *Storage) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, s.table)); err != nil {
		return fmt.Errorf("drop table %s failed: %w", s.table, err)
	}
	s.count = 0
	return nil
}
