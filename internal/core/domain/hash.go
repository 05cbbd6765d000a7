package domain

import (
	"encoding/json"
	"sort"

	"go.trai.ch/zerr"
)

// FileHashPayload records the observation made for one fingerprinted file.
// Exactly one variant is populated: a content hash together with the stat
// metadata that produced it, a missing marker, or an unreadable marker.
type FileHashPayload struct {
	Hash       string
	Mtime      int64 // modification time in nanoseconds
	Size       int64
	Missing    bool
	Unreadable bool
}

// ContentHash returns the normal variant for a file that was hashed.
func ContentHash(hash string, mtime, size int64) FileHashPayload {
	return FileHashPayload{Hash: hash, Mtime: mtime, Size: size}
}

// MissingFile returns the variant for a file that vanished between listing
// and stat/read.
func MissingFile() FileHashPayload {
	return FileHashPayload{Missing: true}
}

// UnreadableFile returns the variant for a file that could not be opened or
// read.
func UnreadableFile() FileHashPayload {
	return FileHashPayload{Unreadable: true}
}

type hashPayloadJSON struct {
	Hash       *string `json:"hash,omitempty"`
	Mtime      int64   `json:"mtime,omitempty"`
	Size       int64   `json:"size,omitempty"`
	Missing    bool    `json:"missing,omitempty"`
	Unreadable bool    `json:"unreadable,omitempty"`
}

// MarshalJSON serializes only the populated variant.
func (p FileHashPayload) MarshalJSON() ([]byte, error) {
	switch {
	case p.Missing:
		return []byte(`{"missing":true}`), nil
	case p.Unreadable:
		return []byte(`{"unreadable":true}`), nil
	default:
		hash := p.Hash
		return json.Marshal(hashPayloadJSON{Hash: &hash, Mtime: p.Mtime, Size: p.Size})
	}
}

// UnmarshalJSON restores the tagged variant, rejecting payloads that carry
// no variant at all.
func (p *FileHashPayload) UnmarshalJSON(data []byte) error {
	var raw hashPayloadJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return zerr.Wrap(err, "failed to decode file hash payload")
	}

	*p = FileHashPayload{}
	switch {
	case raw.Missing:
		p.Missing = true
	case raw.Unreadable:
		p.Unreadable = true
	case raw.Hash != nil:
		p.Hash = *raw.Hash
		p.Mtime = raw.Mtime
		p.Size = raw.Size
	default:
		return zerr.New("file hash payload has no variant")
	}
	return nil
}

// HashMap maps repository-relative path keys to their observed payloads.
type HashMap map[string]FileHashPayload

// Equal reports whether both maps contain exactly the same paths with
// exactly the same payloads. A single added, removed, or changed path makes
// the maps unequal.
func (m HashMap) Equal(other HashMap) bool {
	if len(m) != len(other) {
		return false
	}
	for path, payload := range m {
		got, ok := other[path]
		if !ok || got != payload {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the map.
func (m HashMap) Clone() HashMap {
	if m == nil {
		return nil
	}
	cloned := make(HashMap, len(m))
	for path, payload := range m {
		cloned[path] = payload
	}
	return cloned
}

// Paths returns the path keys in sorted order.
func (m HashMap) Paths() []string {
	paths := make([]string, 0, len(m))
	for path := range m {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
