// Package dirhash implements the directory-structure hash described in
// spec §4.7: a stable content hash over an unordered path→hash/timestamp
// map, used to pin a Google Drive folder listing into an
// ImmutableGoogleDriveFolder.
package dirhash

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"sort"
)

// Hash canonicalizes entries (an unordered path → best-available
// content-hash-or-mtime map) by sorting keys, serializes as JSON with
// that stable key order, and returns the URL-safe base64 encoding of the
// SHA-256 digest.
//
// The encoding keeps standard padding: Python's urlsafe_b64encode only
// swaps the alphabet to be URL-safe, it does not strip the trailing `=`
// padding, so base64.URLEncoding (not RawURLEncoding) is the faithful
// equivalent.
func Hash(entries map[string]string) string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]keyValue, len(keys))
	for i, k := range keys {
		ordered[i] = keyValue{Key: k, Value: entries[k]}
	}

	canonical, err := marshalOrdered(ordered)
	if err != nil {
		// Only possible if a value contains something json.Marshal
		// cannot encode, which cannot happen for map[string]string.
		panic(err)
	}

	sum := sha256.Sum256(canonical)
	return base64.URLEncoding.EncodeToString(sum[:])
}

type keyValue struct {
	Key   string
	Value string
}

// marshalOrdered renders ordered as a JSON object, preserving the given
// key order (encoding/json on a map would re-sort keys identically since
// Go map encoding already sorts string keys — this makes the ordering
// requirement explicit and independent of that implementation detail).
//
// The separators match Python's json.dumps default (", " between entries,
// ": " between key and value), not encoding/json's compact form, since
// the hash must match byte-for-byte what the same directory listing
// produces there.
func marshalOrdered(ordered []keyValue) ([]byte, error) {
	buf := make([]byte, 0, 64*len(ordered))
	buf = append(buf, '{')
	for i, kv := range ordered {
		if i > 0 {
			buf = append(buf, ',', ' ')
		}
		k, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':', ' ')
		buf = append(buf, v...)
	}
	buf = append(buf, '}')
	return buf, nil
}
