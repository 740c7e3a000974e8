// Package bootstrap runs the one-shot startup phase: warm up the embedding
// provider and make sure the target index exists before serving traffic.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/RajputKashish/endee-rag-search/internal/domain"
)

// warmupText is the fixed string embedded at startup so the provider is
// fully initialized before the first real request.
const warmupText = "warmup"

// Service performs the startup bootstrap. It runs once; there is no
// reconciliation loop.
type Service struct {
	embed  domain.Embedder
	index  IndexAdmin
	logger *zap.Logger
}

// New creates a bootstrap service.
func New(embed domain.Embedder, index IndexAdmin, logger *zap.Logger) *Service {
	return &Service{embed: embed, index: index, logger: logger}
}

// Run warms up the embedding provider and ensures the index exists.
// Only a missing index triggers creation; any other fetch failure
// (connectivity, auth) aborts startup instead of masking as absence.
func (s *Service) Run(ctx context.Context) error {
	if _, err := s.embed.Embed(ctx, warmupText); err != nil {
		return fmt.Errorf("warm up embedding provider: %w", err)
	}
	s.logger.Info("Embedding provider warmed up")

	err := s.index.Fetch(ctx)
	switch {
	case err == nil:
		s.logger.Info("Index already exists")
		return nil
	case errors.Is(err, domain.ErrIndexNotFound):
		if err := s.index.Create(ctx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
		s.logger.Info("Index created")
		return nil
	default:
		return fmt.Errorf("check index: %w", err)
	}
}
