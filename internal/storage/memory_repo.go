package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_memory_store.go -package=mocks recall-ai/internal/storage MemoryStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// MemoryStore defines the interface for memory storage operations.
type MemoryStore interface {
	// Insert inserts a single memory. The memory.ID must be set (UUID)
	// before calling this method.
	Insert(ctx context.Context, memory *Memory) error
	// GetByIDs returns the memories for the given IDs, preserving the input
	// order. IDs with no matching row are skipped, not an error.
	GetByIDs(ctx context.Context, ids []string) ([]*Memory, error)
	// SearchFTS runs a full-text query with OR semantics across the given
	// terms, best match first. Returns an error if the FTS index is absent.
	SearchFTS(ctx context.Context, terms []string, limit int) ([]*Memory, error)
	// SearchLike runs an OR-combined pattern match for every term across the
	// four text fields, ranked by field priority: named_entities above
	// summary_content above content_classification above content, ties
	// broken by most recently updated.
	SearchLike(ctx context.Context, terms []string, limit int) ([]*Memory, error)
	// Count returns the total number of stored memories.
	Count(ctx context.Context) (int, error)
}

// MemoryRepo provides methods for memory operations.
// It implements the MemoryStore interface.
type MemoryRepo struct {
	db *sql.DB
}

// NewMemoryRepo creates a new MemoryRepo.
func NewMemoryRepo(db *sql.DB) *MemoryRepo {
	return &MemoryRepo{db: db}
}

const memoryColumns = "id, namespace, source_id, content, metadata, summary_content, named_entities, content_classification, created_at, updated_at"

// Insert inserts a single memory into the database.
func (r *MemoryRepo) Insert(ctx context.Context, memory *Memory) error {
	meta := memory.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO memories ("+memoryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		memory.ID, memory.Namespace, memory.SourceID, memory.Content, string(metaJSON),
		memory.SummaryContent, memory.NamedEntities, memory.ContentClassification,
		memory.CreatedAt, memory.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert memory: %w", err)
	}
	return nil
}

// GetByIDs returns the memories for the given IDs, preserving input order.
func (r *MemoryRepo) GetByIDs(ctx context.Context, ids []string) ([]*Memory, error) {
	if len(ids) == 0 {
		return []*Memory{}, nil
	}

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+memoryColumns+" FROM memories WHERE id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories by ids: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	byID := make(map[string]*Memory, len(ids))
	for rows.Next() {
		memory, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		byID[memory.ID] = memory
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	ordered := make([]*Memory, 0, len(byID))
	for _, id := range ids {
		if memory, ok := byID[id]; ok {
			ordered = append(ordered, memory)
		}
	}
	return ordered, nil
}

// SearchFTS runs a full-text query over the FTS5 index, best match first.
func (r *MemoryRepo) SearchFTS(ctx context.Context, terms []string, limit int) ([]*Memory, error) {
	if len(terms) == 0 || limit <= 0 {
		return []*Memory{}, nil
	}

	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		// Quote each term so FTS5 query syntax characters are literal.
		quoted = append(quoted, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	if len(quoted) == 0 {
		return []*Memory{}, nil
	}
	match := strings.Join(quoted, " OR ")

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+qualifiedMemoryColumns("m")+`
		 FROM memories_fts f
		 JOIN memories m ON m.id = f.memory_id
		 WHERE memories_fts MATCH ?
		 ORDER BY f.rank
		 LIMIT ?`,
		match, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("full-text query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectMemories(rows)
}

// likeFields are the searchable text fields in fallback ranking order.
var likeFields = []string{"named_entities", "summary_content", "content_classification", "content"}

// SearchLike runs the pattern-match fallback across all four text fields.
func (r *MemoryRepo) SearchLike(ctx context.Context, terms []string, limit int) ([]*Memory, error) {
	if len(terms) == 0 || limit <= 0 {
		return []*Memory{}, nil
	}

	// One OR group per field over every term; the CASE ranks the best
	// matching field per row so entity hits sort above plain content hits.
	groups := make([]string, len(likeFields))
	for i, field := range likeFields {
		conds := make([]string, len(terms))
		for j := range terms {
			conds[j] = field + ` LIKE ? ESCAPE '\'`
		}
		groups[i] = "(" + strings.Join(conds, " OR ") + ")"
	}

	query := `SELECT ` + memoryColumns + `,
		CASE
			WHEN ` + groups[0] + ` THEN 0
			WHEN ` + groups[1] + ` THEN 1
			WHEN ` + groups[2] + ` THEN 2
			ELSE 3
		END AS field_rank
		FROM memories
		WHERE ` + strings.Join(groups, " OR ") + `
		ORDER BY field_rank, updated_at DESC
		LIMIT ?`

	patterns := make([]any, 0, len(terms))
	for _, term := range terms {
		patterns = append(patterns, "%"+escapeLike(term)+"%")
	}

	// Placeholder order: three CASE groups, then the four WHERE groups.
	args := make([]any, 0, 7*len(terms)+1)
	for i := 0; i < 7; i++ {
		args = append(args, patterns...)
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pattern search failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var memories []*Memory
	for rows.Next() {
		var fieldRank int
		memory := &Memory{}
		var metaJSON string
		if err := rows.Scan(
			&memory.ID, &memory.Namespace, &memory.SourceID, &memory.Content, &metaJSON,
			&memory.SummaryContent, &memory.NamedEntities, &memory.ContentClassification,
			&memory.CreatedAt, &memory.UpdatedAt, &fieldRank,
		); err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}
		if err := unmarshalMetadata(metaJSON, memory); err != nil {
			return nil, err
		}
		memories = append(memories, memory)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	if memories == nil {
		memories = []*Memory{}
	}
	return memories, nil
}

// Count returns the total number of stored memories.
func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM memories").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count memories: %w", err)
	}
	return count, nil
}

func qualifiedMemoryColumns(alias string) string {
	cols := strings.Split(memoryColumns, ", ")
	for i, col := range cols {
		cols[i] = alias + "." + col
	}
	return strings.Join(cols, ", ")
}

func collectMemories(rows *sql.Rows) ([]*Memory, error) {
	var memories []*Memory
	for rows.Next() {
		memory, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		memories = append(memories, memory)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	if memories == nil {
		memories = []*Memory{}
	}
	return memories, nil
}

func scanMemory(rows *sql.Rows) (*Memory, error) {
	memory := &Memory{}
	var metaJSON string
	if err := rows.Scan(
		&memory.ID, &memory.Namespace, &memory.SourceID, &memory.Content, &metaJSON,
		&memory.SummaryContent, &memory.NamedEntities, &memory.ContentClassification,
		&memory.CreatedAt, &memory.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan memory: %w", err)
	}
	if err := unmarshalMetadata(metaJSON, memory); err != nil {
		return nil, err
	}
	return memory, nil
}

func unmarshalMetadata(metaJSON string, memory *Memory) error {
	if metaJSON == "" {
		memory.Metadata = map[string]any{}
		return nil
	}
	if err := json.Unmarshal([]byte(metaJSON), &memory.Metadata); err != nil {
		return fmt.Errorf("failed to unmarshal metadata for %s: %w", memory.ID, err)
	}
	return nil
}

func escapeLike(s string) string {
	// SQLite LIKE treats % and _ as wildcards; literal matches are wanted.
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
