package insights

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func TestProcessFallback(t *testing.T) {
	proc := NewFallbackProcessor()
	transcript := "Agent: Hello, how can I help you?\nCustomer: I'm interested in your product."

	talkRatio, sentiment, embedding, err := proc.Process(transcript)
	require.NoError(t, err)

	assert.InDelta(t, 6.0/13.0, talkRatio, 1e-12)
	assert.Equal(t, 0.0, sentiment)

	decoded, err := Deserialize(embedding)
	require.NoError(t, err)
	assert.Equal(t, FallbackEmbedder{}.Embed(transcript), decoded)
}

func TestProcessConcurrent(t *testing.T) {
	proc := NewFallbackProcessor()
	transcripts := []string{
		"Agent: Hi\nCustomer: I am happy",
		"Agent: Hello\nCustomer: This is terrible",
		"Customer: Just a question",
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		for _, tr := range transcripts {
			wg.Add(1)
			go func(tr string) {
				defer wg.Done()
				_, _, embedding, err := proc.Process(tr)
				assert.NoError(t, err)
				want, _ := Serialize(FallbackEmbedder{}.Embed(tr))
				assert.Equal(t, want, embedding)
			}(tr)
		}
	}
	wg.Wait()
}

func TestProcessorUsesFallbackWhenGatewayMissing(t *testing.T) {
	holder := NewModelHolder(GatewayConfig{}, testLog())
	proc := NewProcessor(holder, testLog())

	_, sentiment, embedding, err := proc.Process("Customer: I am very happy with the service.")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sentiment, 1e-12)

	decoded, err := Deserialize(embedding)
	require.NoError(t, err)
	assert.Equal(t, FallbackEmbedder{}.Embed("Customer: I am very happy with the service."), decoded)
}

func TestProcessorUsesGatewayWhenAvailable(t *testing.T) {
	vector := make([]float64, EmbeddingSize)
	vector[0] = 0.25

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/healthz":
			w.WriteHeader(http.StatusOK)
		case "/v1/sentiment":
			_ = json.NewEncoder(w).Encode(map[string]any{"label": "NEGATIVE", "score": 0.93})
		case "/v1/embeddings":
			_ = json.NewEncoder(w).Encode(map[string]any{"embedding": vector})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	holder := NewModelHolder(GatewayConfig{BaseURL: srv.URL}, testLog())
	proc := NewProcessor(holder, testLog())

	_, sentiment, embedding, err := proc.Process("Customer: I am very happy with the service.")
	require.NoError(t, err)
	// Model verdict wins over the lexicon when the gateway is up.
	assert.InDelta(t, -0.93, sentiment, 1e-12)

	decoded, err := Deserialize(embedding)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, decoded[0], 1e-12)
}

func TestModelStrategiesFallBackSilently(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" && healthy {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	holder := NewModelHolder(GatewayConfig{BaseURL: srv.URL}, testLog())
	proc := NewProcessor(holder, testLog())
	healthy = false // gateway loaded, inference now failing

	talkRatio, sentiment, embedding, err := proc.Process("Customer: I am very happy with the service.")
	require.NoError(t, err)

	// Same response shape as the fallback path, no surfaced error.
	assert.Equal(t, 0.0, talkRatio)
	assert.InDelta(t, 1.0, sentiment, 1e-12)
	decoded, err := Deserialize(embedding)
	require.NoError(t, err)
	assert.Equal(t, FallbackEmbedder{}.Embed("Customer: I am very happy with the service."), decoded)
}
