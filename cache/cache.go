// Package cache provides a persistent TTL cache for LLM results.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// DefaultTTL is how long entries stay valid.
const DefaultTTL = 30 * 24 * time.Hour

// Usage holds the token counts recorded with a cached result.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Entry is one cached result.
type Entry struct {
	Text      string    `json:"text"`
	Usage     Usage     `json:"usage"`
	CreatedAt time.Time `json:"createdAt"`
}

// Cache is a badger-backed key-value store with per-entry TTL.
type Cache struct {
	db *badger.DB
}

// New opens (or creates) a cache at path. An empty path opens an in-memory
// cache, useful for tests.
func New(path string) (*Cache, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	return &Cache{db: db}, nil
}

// Get returns the entry for key, if present and not expired.
func (c *Cache) Get(key string) (*Entry, bool) {
	var entry Entry
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return nil, false
	}
	return &entry, true
}

// Set stores entry under key with the given TTL.
func (c *Cache) Set(key string, entry *Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data).WithTTL(ttl)
		return txn.SetEntry(e)
	})
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// GenerateKey builds a stable cache key from its parts.
func GenerateKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}
