package services

import (
	"context"
	"errors"
	"sync"

	"relay/internal/domain/models"
)

var errProvider = errors.New("provider unavailable")

// recordingSender remembers every message and fails sends to addresses in failTo.
type recordingSender struct {
	mu     sync.Mutex
	sent   []models.OutboundMessage
	failTo map[string]bool
}

func newRecordingSender(failTo ...string) *recordingSender {
	s := &recordingSender{failTo: map[string]bool{}}
	for _, to := range failTo {
		s.failTo[to] = true
	}
	return s
}

func (s *recordingSender) Send(_ context.Context, msg models.OutboundMessage) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	if s.failTo[msg.To] {
		return "", errProvider
	}
	return "SM" + msg.To, nil
}

func (s *recordingSender) messages() []models.OutboundMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.OutboundMessage, len(s.sent))
	copy(out, s.sent)
	return out
}

func (s *recordingSender) sentTo(to string) []models.OutboundMessage {
	var out []models.OutboundMessage
	for _, m := range s.messages() {
		if m.To == to {
			out = append(out, m)
		}
	}
	return out
}

type failingStore struct{}

func (failingStore) Save(context.Context, models.ActiveRide) error { return errProvider }

func (failingStore) CustomerFor(context.Context, string) (string, bool, error) {
	return "", false, errProvider
}

func floatPtr(v float64) *float64 { return &v }
