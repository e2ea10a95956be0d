package cache

import (
	"encoding/json"
	"errors"
	"time"
)

// Entry represents a single cached value with TTL metadata.
// Entries are immutable after creation; replacing a key stores a new Entry.
type Entry struct {
	// CreatedAt is the timestamp when the entry was written.
	CreatedAt time.Time

	// TTL is the entry's own time-to-live. Zero means the entry carries no
	// TTL and freshness is judged against the reader's max age instead.
	TTL time.Duration

	// Payload is the cached value. Anything encoding/json can encode is
	// accepted; values served from the durable tier have round-tripped
	// through JSON (structs come back as map[string]any).
	Payload any
}

// ValidFor reports whether the entry is fresh at the given instant under the
// asymmetric freshness rule:
//
//  1. maxAge <= 0 means no age bound: the entry is valid regardless of age,
//     even if it carries its own TTL.
//  2. With a max age given, an entry that carries a TTL is judged against
//     that TTL alone; the caller's max age is ignored.
//  3. Only an entry without a TTL is judged against the caller's max age.
func (e *Entry) ValidFor(maxAge time.Duration, now time.Time) bool {
	if maxAge <= 0 {
		return true
	}
	age := now.Sub(e.CreatedAt)
	if e.TTL > 0 {
		return age < e.TTL
	}
	return age < maxAge
}

// record is the durable form of an Entry, one JSON file per key.
// TTL is stored as fractional seconds or null so records remain readable
// and diffable by hand.
type record struct {
	Timestamp string          `json:"timestamp"`
	TTL       *float64        `json:"ttl"`
	Data      json.RawMessage `json:"data"`
}

// marshalRecord encodes an entry into its durable JSON form.
// Timestamps keep sub-second precision so freshness math survives a reload.
func marshalRecord(e *Entry) ([]byte, error) {
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, err
	}
	rec := record{
		Timestamp: e.CreatedAt.Format(time.RFC3339Nano),
		Data:      data,
	}
	if e.TTL > 0 {
		secs := e.TTL.Seconds()
		rec.TTL = &secs
	}
	return json.MarshalIndent(rec, "", "  ")
}

// unmarshalRecord decodes a durable record back into an Entry.
func unmarshalRecord(data []byte) (*Entry, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, rec.Timestamp)
	if err != nil {
		return nil, err
	}
	if len(rec.Data) == 0 {
		return nil, errors.New("record has no data field")
	}

	var payload any
	if err := json.Unmarshal(rec.Data, &payload); err != nil {
		return nil, err
	}

	entry := &Entry{
		CreatedAt: createdAt,
		Payload:   payload,
	}
	if rec.TTL != nil {
		entry.TTL = time.Duration(*rec.TTL * float64(time.Second))
	}
	return entry, nil
}
