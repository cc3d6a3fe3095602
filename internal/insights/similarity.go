package insights

import (
	"math"
	"sort"
)

// SimilarityResult is one ranked candidate.
type SimilarityResult struct {
	CandidateID string  `json:"candidate_id"`
	Score       float64 `json:"score"`
}

// Candidate pairs a call id with its stored embedding.
type Candidate struct {
	ID        string
	Embedding Embedding
}

// CosineSimilarity returns the normalized dot product of two embeddings in
// [-1,1]. By contract it returns exactly 0.0 when either vector has zero
// norm, where true cosine similarity is undefined. Vectors of differing
// lengths are dotted over the shorter prefix; cross-method embeddings carry
// no comparability guarantee anyway.
func CosineSimilarity(a, b Embedding) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	var normA, normB float64
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// TopSimilar ranks candidates against a target embedding and returns the top
// k, sorted by descending score. The target's own id is excluded. Ties keep
// the candidates' original iteration order (stable sort). k <= 0 or a
// missing target yields an empty list.
//
// The scan is O(N) over the candidate set with no index structure; fine for
// hundreds to low thousands of calls. Any future ANN index must live behind
// this same contract without changing tie-break or ordering semantics.
func TopSimilar(targetID string, target Embedding, candidates []Candidate, k int) []SimilarityResult {
	results := []SimilarityResult{}
	if k <= 0 || len(target) == 0 {
		return results
	}
	for _, c := range candidates {
		if c.ID == targetID {
			continue
		}
		results = append(results, SimilarityResult{
			CandidateID: c.ID,
			Score:       CosineSimilarity(target, c.Embedding),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results
}
