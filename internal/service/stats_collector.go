package service

import (
	"context"
	"time"
)

// StartStatsCollector refreshes the list gauges every interval. It blocks
// until the context is cancelled, so it should be launched in a separate
// goroutine.
func (s *Service) StartStatsCollector(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Stats collector started")
	s.collectStats(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stats collector stopped")
			return
		case <-ticker.C:
			s.collectStats(ctx)
		}
	}
}

func (s *Service) collectStats(ctx context.Context) {
	counts, err := s.lists.CountByType(ctx)
	if err != nil {
		s.logger.Errorf("Failed to count lists: %v", err)
		return
	}
	s.metrics.setListCounts(counts)
}
