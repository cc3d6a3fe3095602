package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unit(dim, index int) Embedding {
	e := make(Embedding, dim)
	e[index] = 1.0
	return e
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical non-zero vector scores one", func(t *testing.T) {
		e := FallbackEmbedder{}.Embed("self similarity")
		assert.InDelta(t, 1.0, CosineSimilarity(e, e), 1e-12)
	})

	t.Run("orthogonal vectors score zero", func(t *testing.T) {
		assert.InDelta(t, 0.0, CosineSimilarity(unit(4, 0), unit(4, 1)), 1e-12)
	})

	t.Run("opposite vectors score minus one", func(t *testing.T) {
		assert.InDelta(t, -1.0, CosineSimilarity(Embedding{1, 0}, Embedding{-1, 0}), 1e-12)
	})

	t.Run("zero norm scores exactly zero", func(t *testing.T) {
		zero := make(Embedding, 8)
		assert.Equal(t, 0.0, CosineSimilarity(zero, zero))
		assert.Equal(t, 0.0, CosineSimilarity(zero, unit(8, 2)))
		assert.Equal(t, 0.0, CosineSimilarity(unit(8, 2), zero))
	})

	t.Run("scale invariant", func(t *testing.T) {
		assert.InDelta(t, 1.0, CosineSimilarity(Embedding{1, 2, 3}, Embedding{2, 4, 6}), 1e-12)
	})
}

func TestTopSimilar(t *testing.T) {
	target := unit(4, 0)

	t.Run("pinned ranking scenario", func(t *testing.T) {
		results := TopSimilar("T", target, []Candidate{
			{ID: "A", Embedding: unit(4, 0)},
			{ID: "B", Embedding: unit(4, 1)},
		}, 1)
		require.Len(t, results, 1)
		assert.Equal(t, "A", results[0].CandidateID)
		assert.InDelta(t, 1.0, results[0].Score, 1e-12)
	})

	t.Run("excludes the target id", func(t *testing.T) {
		results := TopSimilar("T", target, []Candidate{
			{ID: "T", Embedding: target},
			{ID: "A", Embedding: unit(4, 1)},
		}, 10)
		require.Len(t, results, 1)
		assert.Equal(t, "A", results[0].CandidateID)
	})

	t.Run("sorted descending and capped at k", func(t *testing.T) {
		results := TopSimilar("T", target, []Candidate{
			{ID: "far", Embedding: unit(4, 1)},
			{ID: "near", Embedding: Embedding{0.9, 0.1, 0, 0}},
			{ID: "mid", Embedding: Embedding{0.5, 0.5, 0, 0}},
		}, 2)
		require.Len(t, results, 2)
		assert.Equal(t, "near", results[0].CandidateID)
		assert.Equal(t, "mid", results[1].CandidateID)
		assert.Greater(t, results[0].Score, results[1].Score)
	})

	t.Run("ties keep candidate order", func(t *testing.T) {
		tied := Embedding{0, 1, 0, 0}
		results := TopSimilar("T", target, []Candidate{
			{ID: "first", Embedding: tied},
			{ID: "second", Embedding: tied},
			{ID: "third", Embedding: tied},
		}, 3)
		require.Len(t, results, 3)
		assert.Equal(t, "first", results[0].CandidateID)
		assert.Equal(t, "second", results[1].CandidateID)
		assert.Equal(t, "third", results[2].CandidateID)
	})

	t.Run("non-positive k yields empty", func(t *testing.T) {
		candidates := []Candidate{{ID: "A", Embedding: target}}
		assert.Empty(t, TopSimilar("T", target, candidates, 0))
		assert.Empty(t, TopSimilar("T", target, candidates, -1))
	})

	t.Run("missing target embedding yields empty", func(t *testing.T) {
		assert.Empty(t, TopSimilar("T", nil, []Candidate{{ID: "A", Embedding: target}}, 5))
	})
}
