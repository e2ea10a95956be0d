package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultDir is the fallback cache directory when none is configured.
const DefaultDir = ".cache"

// Cache is a two-tier TTL cache: an in-memory map backed by per-key JSON
// records on disk. The memory tier is guarded by a single mutex; durable
// file I/O deliberately happens outside the lock, so concurrent writers to
// the same key resolve last-write-wins and a torn read parses as a miss.
//
// All operations absorb internal faults: they log and degrade rather than
// return errors.
type Cache struct {
	dir string
	log zerolog.Logger

	mu  sync.Mutex
	mem map[string]*Entry

	now func() time.Time // for testing
}

// New creates a cache rooted at dir, creating the directory if needed.
// An empty dir falls back to DefaultDir. The logger is retained for the
// lifetime of the cache; callers own its configuration.
func New(dir string, logger zerolog.Logger) (*Cache, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Cache{
		dir: dir,
		log: logger.With().Str("component", "cache").Logger(),
		mem: make(map[string]*Entry),
		now: time.Now,
	}, nil
}

// Get retrieves the payload for key, or reports a miss. The memory tier is
// consulted first; a stale or absent memory entry falls through to the
// durable tier, and a valid durable record is promoted back into memory.
//
// maxAge bounds the acceptable age of entries that carry no TTL of their
// own; zero means no bound. An entry's own TTL always wins over maxAge.
func (c *Cache) Get(key string, maxAge time.Duration) (any, bool) {
	c.mu.Lock()
	if entry, ok := c.mem[key]; ok && entry.ValidFor(maxAge, c.now()) {
		c.mu.Unlock()
		c.log.Debug().Str("key", key).Msg("memory cache hit")
		return entry.Payload, true
	}
	c.mu.Unlock()

	entry, err := c.readRecord(key)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.log.Warn().Err(err).Str("operation", "get").Str("key", key).
				Msg("cache record unreadable, treating as miss")
		}
		return nil, false
	}
	if !entry.ValidFor(maxAge, c.now()) {
		return nil, false
	}

	c.mu.Lock()
	c.mem[key] = entry
	c.mu.Unlock()

	c.log.Debug().Str("key", key).Msg("disk cache hit")
	return entry.Payload, true
}

// Set stores value under key in both tiers. The memory tier always takes
// the write; a failure to persist the durable record is logged and does not
// roll the memory entry back. A zero ttl stores the entry without a TTL.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	entry := &Entry{
		CreatedAt: c.now(),
		TTL:       ttl,
		Payload:   value,
	}

	c.mu.Lock()
	c.mem[key] = entry
	c.mu.Unlock()

	if err := c.writeRecord(key, entry); err != nil {
		c.log.Warn().Err(err).Str("operation", "set").Str("key", key).
			Msg("cache record not persisted, entry is memory-only")
	}
}

// Invalidate removes key from both tiers. Absence in either tier is not an
// error.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.mem, key)
	c.mu.Unlock()

	if err := os.Remove(c.recordPath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		c.log.Warn().Err(err).Str("operation", "invalidate").Str("key", key).
			Msg("cache record not removed")
	}
}

// Clear empties the memory tier and deletes every durable record in the
// cache directory, regardless of expiry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.mem = make(map[string]*Entry)
	c.mu.Unlock()

	paths, err := filepath.Glob(filepath.Join(c.dir, "*"+recordExtension))
	if err != nil {
		c.log.Warn().Err(err).Str("operation", "clear").Msg("cache directory scan failed")
		return
	}
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			c.log.Warn().Err(err).Str("operation", "clear").Str("path", path).
				Msg("cache record not removed")
		}
	}
}

// Cleanup removes entries that are no longer valid under maxAge from both
// tiers. The two passes are independent: the memory pass runs under the
// lock, the durable pass scans record files outside it. Records that cannot
// be read or parsed are skipped, not deleted.
func (c *Cache) Cleanup(maxAge time.Duration) {
	now := c.now()

	c.mu.Lock()
	for key, entry := range c.mem {
		if !entry.ValidFor(maxAge, now) {
			delete(c.mem, key)
		}
	}
	c.mu.Unlock()

	paths, err := filepath.Glob(filepath.Join(c.dir, "*"+recordExtension))
	if err != nil {
		c.log.Warn().Err(err).Str("operation", "cleanup").Msg("cache directory scan failed")
		return
	}

	removed := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		entry, err := unmarshalRecord(data)
		if err != nil {
			continue
		}
		if !entry.ValidFor(maxAge, now) {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				c.log.Warn().Err(err).Str("operation", "cleanup").Str("path", path).
					Msg("expired cache record not removed")
				continue
			}
			removed++
		}
	}
	if removed > 0 {
		c.log.Debug().Int("removed", removed).Msg("cleanup removed expired records")
	}
}

// Len returns the number of entries in the memory tier.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.mem)
}

// DiskCount returns the number of durable records, including expired ones.
// Faults degrade to zero.
func (c *Cache) DiskCount() int {
	paths, err := filepath.Glob(filepath.Join(c.dir, "*"+recordExtension))
	if err != nil {
		c.log.Warn().Err(err).Str("operation", "count").Msg("cache directory scan failed")
		return 0
	}
	return len(paths)
}

// DiskSize returns the total size of all durable records in bytes.
// Faults degrade to zero.
func (c *Cache) DiskSize() int64 {
	paths, err := filepath.Glob(filepath.Join(c.dir, "*"+recordExtension))
	if err != nil {
		c.log.Warn().Err(err).Str("operation", "size").Msg("cache directory scan failed")
		return 0
	}

	var total int64
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string {
	return c.dir
}

// recordPath returns the durable record path for a logical key.
func (c *Cache) recordPath(key string) string {
	return filepath.Join(c.dir, recordName(key))
}

// readRecord loads and decodes the durable record for key.
func (c *Cache) readRecord(key string) (*Entry, error) {
	data, err := os.ReadFile(c.recordPath(key))
	if err != nil {
		return nil, err
	}
	return unmarshalRecord(data)
}

// writeRecord persists an entry as a durable record. The record is written
// to a temp file and renamed into place so readers never observe a partial
// write.
func (c *Cache) writeRecord(key string, entry *Entry) error {
	data, err := marshalRecord(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache record: %w", err)
	}

	path := c.recordPath(key)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache record: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache record: %w", err)
	}
	return nil
}
