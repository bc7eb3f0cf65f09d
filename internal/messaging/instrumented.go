package messaging

import (
	"context"
	"time"

	"relay/internal/domain/models"
	"relay/internal/metrics"
)

type instrumented struct {
	next     Sender
	provider string
	m        *metrics.Metrics
}

// Instrument records count and latency of every send made through next.
func Instrument(next Sender, provider string, m *metrics.Metrics) Sender {
	if m == nil {
		return next
	}
	return &instrumented{next: next, provider: provider, m: m}
}

func (s *instrumented) Send(ctx context.Context, msg models.OutboundMessage) (string, error) {
	started := time.Now()
	id, err := s.next.Send(ctx, msg)
	s.m.ObserveSend(s.provider, started, err)
	return id, err
}
