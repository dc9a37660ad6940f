package engine

import (
	"encoding/binary"
	"encoding/json"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

var fallback atomic.Uint64

// fingerprint hashes the JSON encoding of v. Values that fail to encode get
// a unique fingerprint, so they are never served from cache.
func fingerprint(v any) uint64 {
	d := xxhash.New()
	if err := json.NewEncoder(d).Encode(v); err != nil {
		return ^fallback.Add(1)
	}
	return d.Sum64()
}

// combine folds part fingerprints and report parameters into one key.
func combine(parts ...uint64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf[:], p)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// param fingerprints a report parameter.
func param(s string) uint64 {
	return xxhash.Sum64String(s)
}
