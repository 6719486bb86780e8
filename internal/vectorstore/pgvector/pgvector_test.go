package pgvector

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"ragchat/internal/domain"
)

func TestNewValidatesTableName(t *testing.T) {
	tests := []struct {
		table   string
		wantErr bool
	}{
		{"", false},
		{"chunks", false},
		{"chunks_2", false},
		{"Chunks", true},
		{"chunks; DROP TABLE x", true},
		{"9chunks", true},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			_, err := New(nil, tt.table)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%q) error = %v, wantErr %v", tt.table, err, tt.wantErr)
			}
		})
	}
}

func TestSearchBeforeInit(t *testing.T) {
	s, _ := New(nil, "")
	if _, err := s.Search(context.Background(), []float32{1}, 1); !errors.Is(err, domain.ErrIndexEmpty) {
		t.Fatalf("err = %v, want ErrIndexEmpty", err)
	}
}

func TestOpenRequiresURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatal("expected error")
	}
}

// TestRoundTrip runs against a live database when PGVECTOR_TEST_URL is set.
func TestRoundTrip(t *testing.T) {
	url := os.Getenv("PGVECTOR_TEST_URL")
	if url == "" {
		t.Skip("PGVECTOR_TEST_URL not set")
	}
	ctx := context.Background()
	db, err := sql.Open("postgres", url)
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(db, "ragchat_test_chunks")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	defer s.Clear(ctx)

	if err := s.Init(ctx, 2); err != nil {
		t.Fatal(err)
	}
	chunks := []domain.Chunk{{ChunkID: "d:0", Text: "east"}, {ChunkID: "d:1", Index: 1, Text: "north"}}
	if err := s.Upsert(ctx, chunks, [][]float32{{1, 0}, {0, 1}}); err != nil {
		t.Fatal(err)
	}
	res, err := s.Search(ctx, []float32{0.1, 1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].Chunk.Text != "north" {
		t.Fatalf("got %+v", res)
	}
}
