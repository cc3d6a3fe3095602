package insights

import "github.com/sirupsen/logrus"

// Processor composes feature extraction and embedding generation into the
// single per-call processing step run at ingestion and by batch recompute.
// It holds no mutable state and is safe for concurrent use across calls.
type Processor struct {
	extractor *Extractor
	embedder  Embedder
}

// NewProcessor selects the scorer and embedder strategies once, based on
// whether the holder's gateway loaded. No call site branches on model
// availability after this point.
func NewProcessor(holder *ModelHolder, log *logrus.Entry) *Processor {
	scorer := SentimentScorer(LexiconScorer{})
	embedder := Embedder(FallbackEmbedder{})
	if client, err := holder.Client(); err == nil {
		scorer = &modelScorer{client: client, log: log}
		embedder = &modelEmbedder{client: client, log: log}
	}
	return &Processor{
		extractor: NewExtractor(scorer),
		embedder:  embedder,
	}
}

// NewFallbackProcessor builds a processor wired entirely to the
// deterministic paths, independent of any gateway.
func NewFallbackProcessor() *Processor {
	return &Processor{
		extractor: NewExtractor(LexiconScorer{}),
		embedder:  FallbackEmbedder{},
	}
}

// Process derives the persisted analytics for one transcript: talk ratio,
// customer sentiment and the serialized embedding.
func (p *Processor) Process(transcript string) (talkRatio, sentiment float64, embedding string, err error) {
	features := p.extractor.Extract(transcript)
	embedded := p.embedder.Embed(transcript)
	serialized, err := Serialize(embedded)
	if err != nil {
		return 0, 0, "", err
	}
	return features.TalkRatio, features.Sentiment, serialized, nil
}
