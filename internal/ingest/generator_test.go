package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorTranscriptShape(t *testing.T) {
	gen := NewGenerator(42)
	for i := 0; i < 20; i++ {
		lines := strings.Split(gen.Transcript(), "\n")
		require.GreaterOrEqual(t, len(lines), 8)
		require.LessOrEqual(t, len(lines), 15)
		for j, line := range lines {
			if j%2 == 0 {
				assert.True(t, strings.HasPrefix(line, "Agent: "), line)
			} else {
				assert.True(t, strings.HasPrefix(line, "Customer: "), line)
			}
		}
	}
}

func TestGeneratorCallRanges(t *testing.T) {
	gen := NewGenerator(7)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		call := gen.Call()
		assert.True(t, strings.HasPrefix(call.CallID, "CALL_"))
		assert.True(t, strings.HasPrefix(call.AgentID, "AGENT_"))
		assert.True(t, strings.HasPrefix(call.CustomerID, "CUST_"))
		assert.False(t, seen[call.CallID], "duplicate call id %s", call.CallID)
		seen[call.CallID] = true
		assert.GreaterOrEqual(t, call.DurationSeconds, 180)
		assert.LessOrEqual(t, call.DurationSeconds, 900)
		assert.Equal(t, "en", call.Language)
		assert.NotEmpty(t, call.Transcript)
	}
}

func TestGeneratorDeterministicWithSeed(t *testing.T) {
	a := NewGenerator(99)
	b := NewGenerator(99)
	assert.Equal(t, a.Transcript(), b.Transcript())
}
