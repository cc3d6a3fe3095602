package insights

import "strings"

const (
	agentPrefix    = "Agent:"
	customerPrefix = "Customer:"
)

// FeatureSet holds the per-call derived metrics.
// TalkRatio is in [0,1], Sentiment in [-1,1].
type FeatureSet struct {
	TalkRatio float64 `json:"talk_ratio"`
	Sentiment float64 `json:"sentiment"`
}

// SentimentScorer scores a block of customer text in [-1,1]. The two
// implementations (lexicon, model-backed) are selected once at construction;
// call sites never branch on which one they hold.
type SentimentScorer interface {
	Score(text string) float64
}

// Extractor derives a FeatureSet from a raw transcript.
type Extractor struct {
	scorer SentimentScorer
}

func NewExtractor(scorer SentimentScorer) *Extractor {
	return &Extractor{scorer: scorer}
}

// Extract computes the talk ratio and customer sentiment for a transcript.
func (e *Extractor) Extract(transcript string) FeatureSet {
	return FeatureSet{
		TalkRatio: AgentTalkRatio(transcript),
		Sentiment: e.customerSentiment(transcript),
	}
}

// AgentTalkRatio is the fraction of transcript words spoken by the agent.
// Agent words are counted after stripping the "Agent:" prefix; the total is
// the raw whitespace token count of every non-blank line, prefix included.
// That asymmetry is part of the persisted-metric contract and is kept as is.
func AgentTalkRatio(transcript string) float64 {
	agentWords := 0
	totalWords := 0
	for _, line := range strings.Split(strings.TrimSpace(transcript), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), agentPrefix) {
			content := strings.TrimSpace(strings.ReplaceAll(line, agentPrefix, ""))
			agentWords += len(strings.Fields(content))
		}
		totalWords += len(strings.Fields(line))
	}
	if totalWords == 0 {
		return 0.0
	}
	return float64(agentWords) / float64(totalWords)
}

// customerText joins all customer-attributed lines, prefix stripped.
func customerText(transcript string) string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(transcript), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), customerPrefix) {
			lines = append(lines, strings.TrimSpace(strings.ReplaceAll(line, customerPrefix, "")))
		}
	}
	return strings.Join(lines, " ")
}

func (e *Extractor) customerSentiment(transcript string) float64 {
	text := customerText(transcript)
	if text == "" {
		return 0.0
	}
	return e.scorer.Score(text)
}

var positiveWords = []string{
	"good", "great", "excellent", "amazing", "love", "like", "happy", "satisfied", "perfect",
}

var negativeWords = []string{
	"bad", "terrible", "hate", "dislike", "unhappy", "dissatisfied", "awful", "horrible",
}

// LexiconScorer is the deterministic fallback scorer. Each lexicon word
// counts once if it appears as a substring of the lower-cased text.
type LexiconScorer struct{}

func (LexiconScorer) Score(text string) float64 {
	lower := strings.ToLower(text)
	positive := 0
	negative := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negative++
		}
	}
	total := positive + negative
	if total == 0 {
		return 0.0
	}
	score := float64(positive-negative) / float64(total)
	if score > 1.0 {
		score = 1.0
	}
	if score < -1.0 {
		score = -1.0
	}
	return score
}
