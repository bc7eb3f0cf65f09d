package repositories

import (
	"context"
	"sync"

	"relay/internal/domain/models"
)

// RideStore remembers which customer a driver's replies belong to.
// Save overwrites; there is no delete.
type RideStore interface {
	Save(ctx context.Context, ride models.ActiveRide) error
	// CustomerFor returns the customer recorded for driverIdentity and
	// whether there was a match.
	CustomerFor(ctx context.Context, driverIdentity string) (string, bool, error)
}

// MemoryRideStore holds exactly one active ride for the whole process.
// Every Save replaces the previous ride, whatever its driver.
type MemoryRideStore struct {
	mu   sync.RWMutex
	ride *models.ActiveRide
}

func NewMemoryRideStore() *MemoryRideStore {
	return &MemoryRideStore{}
}

func (s *MemoryRideStore) Save(_ context.Context, ride models.ActiveRide) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ride = &ride
	return nil
}

func (s *MemoryRideStore) CustomerFor(_ context.Context, driverIdentity string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ride == nil || s.ride.DriverIdentity != driverIdentity {
		return "", false, nil
	}
	return s.ride.CustomerIdentity, true, nil
}

// Current returns the recorded ride, if any.
func (s *MemoryRideStore) Current() (models.ActiveRide, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ride == nil {
		return models.ActiveRide{}, false
	}
	return *s.ride, true
}
