package insights

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// modelScorer delegates to the gateway classifier and maps its label to a
// signed confidence. Every failure degrades silently to the lexicon scorer;
// callers see the same response shape either way.
type modelScorer struct {
	client   *gatewayClient
	fallback LexiconScorer
	log      *logrus.Entry
}

func (s *modelScorer) Score(text string) float64 {
	label, confidence, err := s.client.Classify(text)
	if err != nil {
		s.log.WithField("error", err.Error()).Debug("sentiment inference failed, using lexicon fallback")
		return s.fallback.Score(text)
	}
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "pos"):
		return confidence
	case strings.Contains(lower, "neg"):
		return -confidence
	default:
		return 0.0
	}
}

// modelEmbedder delegates to the gateway embedding model, degrading silently
// to the deterministic hash fallback on any failure.
type modelEmbedder struct {
	client   *gatewayClient
	fallback FallbackEmbedder
	log      *logrus.Entry
}

func (e *modelEmbedder) Embed(transcript string) Embedding {
	vec, err := e.client.EmbedText(transcript)
	if err != nil {
		e.log.WithField("error", err.Error()).Debug("embedding inference failed, using hash fallback")
		return e.fallback.Embed(transcript)
	}
	return Embedding(vec)
}
