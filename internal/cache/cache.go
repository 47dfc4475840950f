// Package cache memoizes compiled AMI output keyed by source hash, so a
// repeated `decafc --cache DIR` invocation over unchanged source skips
// type-checking, layout, and code generation entirely. Backed by
// modernc.org/sqlite, a cgo-free driver, through plain database/sql.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed store mapping a source hash to its last
// compiled AMI text.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) a cache database at dir/cache.db.
func Open(dir string) (*Cache, error) {
	db, err := sql.Open("sqlite", filepath.Join(dir, "cache.db"))
	if err != nil {
		return nil, err
	}
	const schema = `
CREATE TABLE IF NOT EXISTS compiled (
	hash TEXT PRIMARY KEY,
	ami  TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

// Key hashes source into the cache lookup key. The source text alone
// determines the key: it already contains every class declaration the
// compile would see, so two invocations over identical source always
// produce identical AMI (spec.md §8's determinism property).
func Key(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached AMI text for key, if present.
func (c *Cache) Lookup(key string) (ami string, hit bool, err error) {
	row := c.db.QueryRow(`SELECT ami FROM compiled WHERE hash = ?`, key)
	err = row.Scan(&ami)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return ami, true, nil
}

// Store saves ami under key, overwriting any prior entry for the same
// source hash.
func (c *Cache) Store(key, ami string) error {
	_, err := c.db.Exec(`INSERT OR REPLACE INTO compiled (hash, ami) VALUES (?, ?)`, key, ami)
	return err
}

// Stats reports entry count and total stored AMI bytes.
func (c *Cache) Stats() (entries int, totalBytes int64, err error) {
	row := c.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(LENGTH(ami)), 0) FROM compiled`)
	if err := row.Scan(&entries, &totalBytes); err != nil {
		return 0, 0, err
	}
	return entries, totalBytes, nil
}

// FormatStats renders Stats as a human-readable summary for the CLI's
// --cache-stats flag.
func (c *Cache) FormatStats() (string, error) {
	entries, totalBytes, err := c.Stats()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d entries, %s", entries, humanize.Bytes(uint64(totalBytes))), nil
}
