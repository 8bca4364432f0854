// package secure implements the tamper-evident storage codec used for
// locally persisted session and favorites data.
//
// Values are serialized to JSON and wrapped into an opaque blob of the form
//
//	<digest>.<payload>
//
// where digest is a base-36 fingerprint of the JSON text and payload is the
// base64 encoding of a fixed salt prefix plus the JSON text. Decoding
// recomputes the digest over the recovered JSON and rejects the blob on any
// mismatch.
//
// The digest is a fast rolling hash, not a cryptographic primitive. It
// detects accidental corruption and casual editing of the stored value; it
// does not protect against an adversary who can recompute the hash. Nothing
// here is encryption.
package secure

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
)

// salt is a namespacing prefix mixed into every payload before encoding. It
// guards against unrelated strings decoding as valid blobs; it is not a
// secret.
const salt = "TELAFLIX_STORE_V1_"

// Encode serializes v to JSON and wraps it into a digest-tagged blob.
func Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	payload := base64.StdEncoding.EncodeToString(append([]byte(salt), data...))
	return digest(string(data)) + "." + payload, nil
}

// Decode unwraps a blob produced by [Encode] into out.
//
// Returns false when the blob is empty, malformed, fails the digest check,
// or does not parse as JSON. On failure out is left untouched; corrupted or
// tampered data is treated as absent, never partially trusted.
func Decode(blob string, out any) bool {
	if blob == "" {
		return false
	}

	sum, payload, found := strings.Cut(blob, ".")
	if !found {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return false
	}
	text, hadSalt := strings.CutPrefix(string(decoded), salt)
	if !hadSalt {
		return false
	}

	if digest(text) != sum {
		return false
	}

	return json.Unmarshal([]byte(text), out) == nil
}

// digest computes a 32-bit rolling hash of s (h = h*31 + ch, wrapping each
// step) and renders its absolute value in base 36.
func digest(s string) string {
	var h int32
	for _, ch := range s {
		h = h*31 + int32(ch)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}

// Sanitize strips angle brackets and surrounding whitespace from free-text
// user input (search queries, registration emails) before it is stored or
// rendered.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return strings.TrimSpace(s)
}
