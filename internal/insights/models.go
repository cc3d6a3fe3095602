package insights

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// ModelHolder owns the shared inference gateway handle. Loading is done once
// on first use and the success/failure outcome is kept explicit, so every
// Processor constructed from the same holder agrees on which strategy set it
// gets. It is injected where needed, never reached through a global.
type ModelHolder struct {
	cfg GatewayConfig
	log *logrus.Entry

	once    sync.Once
	client  *gatewayClient
	loadErr error
}

func NewModelHolder(cfg GatewayConfig, log *logrus.Entry) *ModelHolder {
	return &ModelHolder{cfg: cfg, log: log}
}

func (h *ModelHolder) load() {
	h.once.Do(func() {
		if h.cfg.BaseURL == "" {
			h.loadErr = ErrModelUnavailable
			return
		}
		client := newGatewayClient(h.cfg)
		if err := client.ping(); err != nil {
			h.log.WithField("error", err.Error()).Warn("model gateway probe failed, falling back to deterministic paths")
			h.loadErr = ErrModelUnavailable
			return
		}
		h.log.WithFields(logrus.Fields{
			"sentiment_model": h.cfg.SentimentModel,
			"embedding_model": h.cfg.EmbeddingModel,
		}).Info("model gateway loaded")
		h.client = client
	})
}

// Client returns the loaded gateway handle or ErrModelUnavailable.
func (h *ModelHolder) Client() (*gatewayClient, error) {
	h.load()
	if h.loadErr != nil {
		return nil, h.loadErr
	}
	return h.client, nil
}
