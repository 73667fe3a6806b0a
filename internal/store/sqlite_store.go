package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"

	"github.com/kittclouds/postag/pkg/lexicon"
)

// SQLiteStore is the SQLite-backed lexicon store.
// Thread-safe for concurrent callers.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema defines the lexicon tables.
const schema = `
-- Exact lexicon: word -> type
CREATE TABLE IF NOT EXISTS lexicon_types (
    word TEXT PRIMARY KEY,
    type TEXT NOT NULL
);

-- Exact lexicon: word -> genus (only attached to nouns at lookup time)
CREATE TABLE IF NOT EXISTS lexicon_genus (
    word TEXT PRIMARY KEY,
    genus TEXT NOT NULL
);

-- Regex lexicon: ordered rules, seq is the evaluation order
CREATE TABLE IF NOT EXISTS regex_rules (
    seq INTEGER PRIMARY KEY,
    pattern TEXT NOT NULL,
    type TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_regex_rules_pattern ON regex_rules(pattern);

-- Regex lexicon: pattern -> genus
CREATE TABLE IF NOT EXISTS regex_genus (
    pattern TEXT PRIMARY KEY,
    genus TEXT NOT NULL
);
`

var tables = []string{"lexicon_types", "lexicon_genus", "regex_rules", "regex_genus"}

// NewSQLiteStore creates a new in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// an in-memory database lives and dies with its connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// Exact lexicon
// =============================================================================

// SaveLexicon upserts every entry of lex. Existing words are overwritten,
// other rows are left alone.
func (s *SQLiteStore) SaveLexicon(lex *lexicon.Lexicon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(func(tx *sql.Tx) error {
		return saveLexicon(tx, lex)
	})
}

// LoadLexicon replays the stored entries into b.
func (s *SQLiteStore) LoadLexicon(b *lexicon.Builder) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT word, type FROM lexicon_types ORDER BY word`)
	if err != nil {
		return fmt.Errorf("load lexicon types: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var word, typ string
		if err := rows.Scan(&word, &typ); err != nil {
			return fmt.Errorf("scan lexicon type: %w", err)
		}
		b.SetType(word, typ)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	genusRows, err := s.db.Query(`SELECT word, genus FROM lexicon_genus ORDER BY word`)
	if err != nil {
		return fmt.Errorf("load lexicon genus: %w", err)
	}
	defer genusRows.Close()
	for genusRows.Next() {
		var word, genus string
		if err := genusRows.Scan(&word, &genus); err != nil {
			return fmt.Errorf("scan lexicon genus: %w", err)
		}
		b.SetGenus(word, genus)
	}
	return genusRows.Err()
}

// GetEntry returns the stored entry for word, or nil if nothing is stored.
func (s *SQLiteStore) GetEntry(word string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e Entry
	var typ, genus sql.NullString
	err := s.db.QueryRow(`
		SELECT w.word, t.type, g.genus
		FROM (SELECT ? AS word) w
		LEFT JOIN lexicon_types t ON t.word = w.word
		LEFT JOIN lexicon_genus g ON g.word = w.word
	`, word).Scan(&e.Word, &typ, &genus)
	if err != nil {
		return nil, err
	}
	if !typ.Valid && !genus.Valid {
		return nil, nil
	}
	e.Type = typ.String
	e.Genus = genus.String
	return &e, nil
}

// =============================================================================
// Regex lexicon
// =============================================================================

// SaveRegexLexicon appends the rules of x after the stored ones, so a
// later save ranks below an earlier one.
func (s *SQLiteStore) SaveRegexLexicon(x *lexicon.RegexLexicon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(func(tx *sql.Tx) error {
		return saveRegexLexicon(tx, x)
	})
}

// LoadRegexLexicon replays the stored rules into b in sequence order.
func (s *SQLiteStore) LoadRegexLexicon(b *lexicon.RegexBuilder) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, err := s.listRules()
	if err != nil {
		return err
	}
	for _, r := range rules {
		b.AddRule(r.Pattern, r.Type)
	}

	genus, err := s.listRegexGenus()
	if err != nil {
		return err
	}
	for _, g := range genus {
		b.SetGenus(g.Pattern, g.Genus)
	}
	return nil
}

// ListRules returns the stored rules in evaluation order.
func (s *SQLiteStore) ListRules() ([]RuleRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listRules()
}

func (s *SQLiteStore) listRules() ([]RuleRow, error) {
	rows, err := s.db.Query(`SELECT seq, pattern, type FROM regex_rules ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load regex rules: %w", err)
	}
	defer rows.Close()

	var out []RuleRow
	for rows.Next() {
		var r RuleRow
		if err := rows.Scan(&r.Seq, &r.Pattern, &r.Type); err != nil {
			return nil, fmt.Errorf("scan regex rule: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) listRegexGenus() ([]PatternGenus, error) {
	rows, err := s.db.Query(`SELECT pattern, genus FROM regex_genus ORDER BY pattern`)
	if err != nil {
		return nil, fmt.Errorf("load regex genus: %w", err)
	}
	defer rows.Close()

	var out []PatternGenus
	for rows.Next() {
		var g PatternGenus
		if err := rows.Scan(&g.Pattern, &g.Genus); err != nil {
			return nil, fmt.Errorf("scan regex genus: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// =============================================================================
// Maintenance
// =============================================================================

// Counts returns the number of stored words, genus entries and rules.
func (s *SQLiteStore) Counts() (Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Counts
	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM lexicon_types),
			(SELECT COUNT(*) FROM lexicon_genus),
			(SELECT COUNT(*) FROM regex_rules)
	`).Scan(&c.Words, &c.Genus, &c.Rules)
	return c, err
}

// Clear removes every stored row.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inTx(clearTables)
}

// Replace swaps the stored contents for lex and x in one transaction. On
// error the previous contents are kept.
func (s *SQLiteStore) Replace(lex *lexicon.Lexicon, x *lexicon.RegexLexicon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(func(tx *sql.Tx) error {
		if err := clearTables(tx); err != nil {
			return err
		}
		if err := saveLexicon(tx, lex); err != nil {
			return err
		}
		return saveRegexLexicon(tx, x)
	})
}

// Export serializes all tables to JSON bytes.
// This is a portable export that doesn't depend on sqlite3 serialization APIs.
func (s *SQLiteStore) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data ExportData

	rows, err := s.db.Query(`
		SELECT word, MAX(type), MAX(genus) FROM (
			SELECT word, type, NULL AS genus FROM lexicon_types
			UNION ALL
			SELECT word, NULL, genus FROM lexicon_genus
		) GROUP BY word ORDER BY word
	`)
	if err != nil {
		return nil, fmt.Errorf("export entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e Entry
		var typ, genus sql.NullString
		if err := rows.Scan(&e.Word, &typ, &genus); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Type = typ.String
		e.Genus = genus.String
		data.Entries = append(data.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if data.Rules, err = s.listRules(); err != nil {
		return nil, err
	}
	if data.RegexGenus, err = s.listRegexGenus(); err != nil {
		return nil, err
	}

	return json.Marshal(data)
}

// Import restores the store from an exported JSON byte slice.
// Clears all existing data and re-inserts from the export.
func (s *SQLiteStore) Import(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(data) == 0 {
		return nil
	}

	var importData ExportData
	if err := json.Unmarshal(data, &importData); err != nil {
		return fmt.Errorf("import unmarshal: %w", err)
	}

	return s.inTx(func(tx *sql.Tx) error {
		if err := clearTables(tx); err != nil {
			return err
		}
		for _, e := range importData.Entries {
			if e.Type != "" {
				if err := upsertType(tx, e.Word, e.Type); err != nil {
					return fmt.Errorf("import entry %s: %w", e.Word, err)
				}
			}
			if e.Genus != "" {
				if err := upsertGenus(tx, e.Word, e.Genus); err != nil {
					return fmt.Errorf("import entry %s: %w", e.Word, err)
				}
			}
		}
		for _, r := range importData.Rules {
			if err := insertRule(tx, r); err != nil {
				return fmt.Errorf("import rule %d: %w", r.Seq, err)
			}
		}
		for _, g := range importData.RegexGenus {
			if err := upsertRegexGenus(tx, g.Pattern, g.Genus); err != nil {
				return fmt.Errorf("import regex genus %s: %w", g.Pattern, err)
			}
		}
		return nil
	})
}

// =============================================================================
// Helpers
// =============================================================================

// inTx runs fn in a transaction. Callers hold mu.
func (s *SQLiteStore) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func clearTables(tx *sql.Tx) error {
	for _, table := range tables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func saveLexicon(tx *sql.Tx, lex *lexicon.Lexicon) error {
	var err error
	lex.Range(func(word, typ string) bool {
		err = upsertType(tx, word, typ)
		return err == nil
	})
	if err != nil {
		return err
	}
	lex.RangeGenus(func(word, genus string) bool {
		err = upsertGenus(tx, word, genus)
		return err == nil
	})
	return err
}

// saveRegexLexicon appends the rules of x after the highest stored seq.
func saveRegexLexicon(tx *sql.Tx, x *lexicon.RegexLexicon) error {
	var next int64
	if err := tx.QueryRow(`SELECT COALESCE(MAX(seq), 0) + 1 FROM regex_rules`).Scan(&next); err != nil {
		return fmt.Errorf("next rule seq: %w", err)
	}
	for _, r := range x.Rules() {
		if err := insertRule(tx, RuleRow{Seq: next, Pattern: r.Pattern, Type: r.Type}); err != nil {
			return err
		}
		next++
	}
	var err error
	x.RangeGenus(func(pattern, genus string) bool {
		err = upsertRegexGenus(tx, pattern, genus)
		return err == nil
	})
	return err
}

func upsertType(tx *sql.Tx, word, typ string) error {
	_, err := tx.Exec(`
		INSERT INTO lexicon_types (word, type) VALUES (?, ?)
		ON CONFLICT(word) DO UPDATE SET type = excluded.type
	`, word, typ)
	if err != nil {
		return fmt.Errorf("save type of %s: %w", word, err)
	}
	return nil
}

func upsertGenus(tx *sql.Tx, word, genus string) error {
	_, err := tx.Exec(`
		INSERT INTO lexicon_genus (word, genus) VALUES (?, ?)
		ON CONFLICT(word) DO UPDATE SET genus = excluded.genus
	`, word, genus)
	if err != nil {
		return fmt.Errorf("save genus of %s: %w", word, err)
	}
	return nil
}

func insertRule(tx *sql.Tx, r RuleRow) error {
	_, err := tx.Exec(`INSERT INTO regex_rules (seq, pattern, type) VALUES (?, ?, ?)`,
		r.Seq, r.Pattern, r.Type)
	if err != nil {
		return fmt.Errorf("save rule %s: %w", r.Pattern, err)
	}
	return nil
}

func upsertRegexGenus(tx *sql.Tx, pattern, genus string) error {
	_, err := tx.Exec(`
		INSERT INTO regex_genus (pattern, genus) VALUES (?, ?)
		ON CONFLICT(pattern) DO UPDATE SET genus = excluded.genus
	`, pattern, genus)
	if err != nil {
		return fmt.Errorf("save genus of %s: %w", pattern, err)
	}
	return nil
}

// Compile-time interface check
var _ Storer = (*SQLiteStore)(nil)
