// Package semantic is the embedding-backed alternative to the keyword
// matcher. It indexes every dictionary term's trigger text in a
// sqlite-vec table and answers priority queries by KNN search,
// returning candidates in the same shape the rule-based matcher
// produces so the engine can swap between the two.
package semantic

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"

	"github.com/karaleary/civimap/internal/dictionary"
	"github.com/karaleary/civimap/internal/matcher"
)

func init() {
	sqlite_vec.Auto()
}

// Embedder is the vector source for both indexing and queries.
// *embedding.Client satisfies it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Available() bool
}

// Index is a sqlite-vec backed term index. A metadata table (term_meta)
// carries term id and display name; the vec0 virtual table
// (vec_terms) holds the embeddings for KNN search.
type Index struct {
	db         *sql.DB
	dimensions int
}

// Open creates or opens the index database at path. dimensions must
// match the embedder's output width.
func Open(path string, dimensions int) (*Index, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("semantic: open: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("semantic: ping: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS term_meta (
		term_id       TEXT PRIMARY KEY,
		standard_term TEXT NOT NULL,
		trigger_text  TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("semantic: create meta table: %w", err)
	}

	createVec := fmt.Sprintf(
		`CREATE VIRTUAL TABLE IF NOT EXISTS vec_terms USING vec0(embedding float[%d])`,
		dimensions,
	)
	if _, err := db.Exec(createVec); err != nil {
		db.Close()
		return nil, fmt.Errorf("semantic: create vec table: %w", err)
	}

	return &Index{db: db, dimensions: dimensions}, nil
}

// Close closes the underlying database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

// IndexDictionary embeds and stores every term in the dictionary,
// replacing any previous entries. The fallback term is skipped: it
// matches nothing by construction. All terms are embedded in one batch
// call.
func (x *Index) IndexDictionary(ctx context.Context, dict *dictionary.Dictionary, emb Embedder) error {
	terms := dict.Terms()
	texts := make([]string, len(terms))
	for i, term := range terms {
		texts[i] = triggerText(term)
	}

	vecs, err := emb.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("semantic: embed terms: %w", err)
	}

	for i, term := range terms {
		if err := x.upsert(ctx, term, texts[i], vecs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Match embeds the input and returns up to topK candidates ordered by
// decreasing confidence, where confidence is 1/(1+distance). The
// result shape matches the rule-based matcher so the engine can use
// either interchangeably.
func (x *Index) Match(ctx context.Context, emb Embedder, input string, topK int) ([]matcher.Candidate, error) {
	query, err := emb.Embed(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("semantic: embed query: %w", err)
	}

	serialized, err := sqlite_vec.SerializeFloat32(query)
	if err != nil {
		return nil, fmt.Errorf("semantic: serialize query: %w", err)
	}

	rows, err := x.db.QueryContext(ctx,
		`SELECT v.distance, m.term_id, m.standard_term
		 FROM (
		   SELECT rowid, distance
		   FROM vec_terms
		   WHERE embedding MATCH ?
		   AND k = ?
		 ) v
		 JOIN term_meta m ON m.rowid = v.rowid
		 ORDER BY v.distance`,
		serialized, topK,
	)
	if err != nil {
		return nil, fmt.Errorf("semantic: search: %w", err)
	}
	defer rows.Close()

	var candidates []matcher.Candidate
	for rows.Next() {
		var distance float64
		var c matcher.Candidate
		if err := rows.Scan(&distance, &c.TermID, &c.StandardTerm); err != nil {
			return nil, fmt.Errorf("semantic: scan row: %w", err)
		}
		c.Confidence = 1 / (1 + distance)
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// Count returns the number of indexed terms.
func (x *Index) Count() (int, error) {
	var count int
	err := x.db.QueryRow(`SELECT COUNT(*) FROM term_meta`).Scan(&count)
	return count, err
}

func (x *Index) upsert(ctx context.Context, term dictionary.PolicyTerm, text string, embedding []float32) error {
	if err := x.delete(term.ID); err != nil {
		return err
	}

	_, err := x.db.ExecContext(ctx,
		`INSERT INTO term_meta (term_id, standard_term, trigger_text) VALUES (?, ?, ?)`,
		term.ID, term.StandardTerm, text,
	)
	if err != nil {
		return fmt.Errorf("semantic: insert meta: %w", err)
	}

	var rowID int64
	err = x.db.QueryRowContext(ctx,
		`SELECT rowid FROM term_meta WHERE term_id = ?`, term.ID,
	).Scan(&rowID)
	if err != nil {
		return fmt.Errorf("semantic: get rowid: %w", err)
	}

	serialized, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return fmt.Errorf("semantic: serialize embedding: %w", err)
	}

	_, err = x.db.ExecContext(ctx,
		`INSERT INTO vec_terms (rowid, embedding) VALUES (?, ?)`,
		rowID, serialized,
	)
	if err != nil {
		return fmt.Errorf("semantic: insert vector: %w", err)
	}
	return nil
}

func (x *Index) delete(termID string) error {
	var rowID int64
	err := x.db.QueryRow(`SELECT rowid FROM term_meta WHERE term_id = ?`, termID).Scan(&rowID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("semantic: get rowid for delete: %w", err)
	}

	if _, err := x.db.Exec(`DELETE FROM vec_terms WHERE rowid = ?`, rowID); err != nil {
		return fmt.Errorf("semantic: delete vector: %w", err)
	}
	if _, err := x.db.Exec(`DELETE FROM term_meta WHERE term_id = ?`, termID); err != nil {
		return fmt.Errorf("semantic: delete meta: %w", err)
	}
	return nil
}

// triggerText flattens a term's matchable surface into one embedding
// input: display name, plain description, and every trigger phrase and
// keyword.
func triggerText(term dictionary.PolicyTerm) string {
	parts := []string{term.StandardTerm, term.PlainEnglish}
	parts = append(parts, term.PlainLanguage...)
	parts = append(parts, term.Keywords...)
	return strings.Join(parts, ". ")
}
