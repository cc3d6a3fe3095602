package ingest

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"sales-insights-go/internal/types"
)

var salesAgentPhrases = []string{
	"Thank you for your time today. How can I help you?",
	"I understand your concern. Let me address that for you.",
	"That's a great question. Here's what I can offer...",
	"Based on your needs, I think our solution would be perfect.",
	"Would you like me to send you more information?",
	"I'm confident we can find the right solution for you.",
	"Let me walk you through the benefits of our product.",
	"I appreciate you sharing that with me.",
	"How does that sound to you?",
	"Is there anything else you'd like to know?",
}

var salesCustomerPhrases = []string{
	"I'm interested in learning more about your product.",
	"What are your pricing options?",
	"I'm not sure this is the right fit for us.",
	"Can you tell me more about the features?",
	"I'm concerned about the implementation timeline.",
	"How does this compare to your competitors?",
	"I need to think about this before making a decision.",
	"This sounds promising. What's the next step?",
	"I have some questions about the contract terms.",
	"I'm looking for something more cost-effective.",
}

// Generator produces synthetic sales calls for seeding and load tests.
type Generator struct {
	rng  *rand.Rand
	used map[string]bool
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		used: make(map[string]bool),
	}
}

// Transcript builds an alternating agent/customer dialogue of 8-15 turns.
func (g *Generator) Transcript() string {
	turns := 8 + g.rng.Intn(8)
	lines := make([]string, 0, turns)
	for i := 0; i < turns; i++ {
		if i%2 == 0 {
			lines = append(lines, "Agent: "+salesAgentPhrases[g.rng.Intn(len(salesAgentPhrases))])
		} else {
			lines = append(lines, "Customer: "+salesCustomerPhrases[g.rng.Intn(len(salesCustomerPhrases))])
		}
	}
	return strings.Join(lines, "\n")
}

// Call builds one complete synthetic call payload.
func (g *Generator) Call() types.CallCreate {
	return types.CallCreate{
		CallID:          g.uniqueID("CALL_", 8),
		AgentID:         fmt.Sprintf("AGENT_%04d", g.rng.Intn(10000)),
		CustomerID:      fmt.Sprintf("CUST_%06d", g.rng.Intn(1000000)),
		Language:        "en",
		StartTime:       time.Now().UTC().Add(-time.Duration(g.rng.Intn(30*24*60)) * time.Minute),
		DurationSeconds: 180 + g.rng.Intn(721),
		Transcript:      g.Transcript(),
	}
}

func (g *Generator) uniqueID(prefix string, digits int) string {
	for {
		id := fmt.Sprintf("%s%0*d", prefix, digits, g.rng.Intn(pow10(digits)))
		if !g.used[id] {
			g.used[id] = true
			return id
		}
	}
}

func pow10(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
