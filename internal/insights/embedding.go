package insights

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/json"
	"math"
)

// EmbeddingSize is the fixed vector length shared by both generation paths
// (all-MiniLM-L6-v2 produces 384-dimensional vectors; the fallback pads to
// the same length so stored embeddings stay comparable per method).
const EmbeddingSize = 384

// Embedding is a fixed-length transcript fingerprint.
type Embedding []float64

// Embedder produces an embedding for a transcript. Implementations must be
// safe for concurrent use.
type Embedder interface {
	Embed(transcript string) Embedding
}

// Serialize renders an embedding in its canonical transport form, a JSON
// array of numbers. This is the format persisted in the calls table.
func Serialize(e Embedding) (string, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Deserialize parses a stored transport string. Malformed input fails with a
// *DecodeError; it is never silently replaced with a default vector.
func Deserialize(s string) (Embedding, error) {
	var e Embedding
	if err := json.Unmarshal([]byte(s), &e); err != nil {
		return nil, &DecodeError{Reason: "not a JSON number array", Err: err}
	}
	if e == nil {
		return nil, &DecodeError{Reason: "null or empty embedding"}
	}
	return e, nil
}

// FallbackEmbedder is the deterministic, dependency-free embedding path.
type FallbackEmbedder struct{}

// Embed hashes the transcript with MD5, maps the digest's four big-endian
// uint32 chunks into [-1,1] and zero-pads to EmbeddingSize. Only the first
// four positions carry signal; the layout is an accepted artifact of the
// original fallback and must stay byte-for-byte stable, since persisted
// embeddings depend on it. Changing it means versioning the stored format.
func (FallbackEmbedder) Embed(transcript string) Embedding {
	digest := md5.Sum([]byte(transcript))
	e := make(Embedding, 0, EmbeddingSize)
	for i := 0; i < len(digest); i += 4 {
		v := binary.BigEndian.Uint32(digest[i : i+4])
		e = append(e, (float64(v)/float64(math.MaxUint32))*2-1)
	}
	for len(e) < EmbeddingSize {
		e = append(e, 0.0)
	}
	return e[:EmbeddingSize]
}
